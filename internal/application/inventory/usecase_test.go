package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/jhoicas/pos-bom/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	companyID = "company-1"
	productID = "prod-pan"
	locA      = "loc-a"
	locB      = "loc-b"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	s := memory.NewStore()
	s.PutCompany(entity.Company{ID: companyID, Name: "Panadería"})
	s.PutProduct(entity.Product{ID: productID, CompanyID: companyID, Name: "Pan"})
	s.PutLocation(entity.Location{ID: locA, CompanyID: companyID, Name: "A", Usage: entity.LocationUsageInternal})
	s.PutLocation(entity.Location{ID: locB, CompanyID: companyID, Name: "B", Usage: entity.LocationUsageInternal})
	return s, inventory.NewRegisterMovementUseCase(s, s.Products(), s.Locations())
}

func onHand(t *testing.T, s *memory.Store, loc string) decimal.Decimal {
	t.Helper()
	st, err := s.Stock().Get(context.Background(), productID, loc)
	require.NoError(t, err)
	return st.Quantity
}

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	s, uc := newUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeIN, Quantity: dec("10"),
	}))
	require.NoError(t, uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeOUT, Quantity: dec("4"),
	}))

	assert.True(t, onHand(t, s, locA).Equal(dec("6")))
	assert.Equal(t, 2, s.CountMovements())

	virtual, err := s.Locations().FindByUsage(ctx, companyID, entity.LocationUsageInventory)
	require.NoError(t, err)
	require.NotNil(t, virtual)
	assert.Equal(t, entity.InventoryLocationName, virtual.Name)
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	s, uc := newUseCase(t)

	err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeOUT, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Zero(t, s.CountMovements())
}

func TestRegisterMovement_AjusteNegativo(t *testing.T) {
	s, uc := newUseCase(t)
	s.SetStock(productID, locA, dec("5"))

	require.NoError(t, uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-2"),
	}))
	assert.True(t, onHand(t, s, locA).Equal(dec("3")))
}

func TestRegisterMovement_Traslado(t *testing.T) {
	s, uc := newUseCase(t)
	s.SetStock(productID, locA, dec("5"))

	require.NoError(t, uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyID, ProductID: productID, FromLocationID: locA, ToLocationID: locB,
		Type: entity.MovementTypeTRANSFER, Quantity: dec("2"),
	}))
	assert.True(t, onHand(t, s, locA).Equal(dec("3")))
	assert.True(t, onHand(t, s, locB).Equal(dec("2")))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	_, uc := newUseCase(t)
	ctx := context.Background()

	cases := map[string]struct {
		in  inventory.MovementInputDTO
		err error
	}{
		"tipo desconocido": {inventory.MovementInputDTO{CompanyID: companyID, ProductID: productID, LocationID: locA, Type: "X", Quantity: dec("1")}, domain.ErrInvalidInput},
		"cantidad cero":    {inventory.MovementInputDTO{CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeIN}, domain.ErrInvalidInput},
		"salida negativa":  {inventory.MovementInputDTO{CompanyID: companyID, ProductID: productID, LocationID: locA, Type: entity.MovementTypeOUT, Quantity: dec("-1")}, domain.ErrInvalidInput},
		"traslado mismo":   {inventory.MovementInputDTO{CompanyID: companyID, ProductID: productID, FromLocationID: locA, ToLocationID: locA, Type: entity.MovementTypeTRANSFER, Quantity: dec("1")}, domain.ErrInvalidInput},
		"producto ajeno":   {inventory.MovementInputDTO{CompanyID: "otra", ProductID: productID, LocationID: locA, Type: entity.MovementTypeIN, Quantity: dec("1")}, domain.ErrForbidden},
		"ubicación":        {inventory.MovementInputDTO{CompanyID: companyID, ProductID: productID, LocationID: "no-existe", Type: entity.MovementTypeIN, Quantity: dec("1")}, domain.ErrNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, uc.RegisterMovement(ctx, tc.in), tc.err)
		})
	}
}

func TestRegisterOUTInTx_SalidaDeVenta(t *testing.T) {
	s, uc := newUseCase(t)
	s.SetStock(productID, locA, dec("3"))
	now := time.Now()

	err := s.Run(context.Background(), func(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository, locationRepo repository.LocationRepository) error {
		return uc.RegisterOUTInTx(context.Background(), movRepo, stockRepo, locationRepo, inventory.SaleOutInput{
			CompanyID: companyID, ProductID: productID, LocationID: locA, Quantity: dec("3"),
			OrderID: "order-1", OrderLineID: "line-1", Origin: "Caja 1/0001", Now: now,
		})
	})
	require.NoError(t, err)
	assert.True(t, onHand(t, s, locA).IsZero())

	moves, err := s.Movements().ListByOrder(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.MovementTypeOUT, moves[0].Type)
	assert.Equal(t, entity.MovementStateDone, moves[0].State)

	customer, err := s.Locations().FindByUsage(context.Background(), companyID, entity.LocationUsageCustomer)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, customer.ID, moves[0].DestLocationID)
}

func TestEnsureLocation_CreaUnaSolaVez(t *testing.T) {
	s, _ := newUseCase(t)
	ctx := context.Background()
	var first, second *entity.Location

	err := s.Run(ctx, func(_ repository.StockMovementRepository, _ repository.StockRepository, locationRepo repository.LocationRepository) error {
		var err error
		first, err = inventory.EnsureLocation(ctx, locationRepo, companyID, entity.LocationUsageProduction, "Producción", time.Now())
		if err != nil {
			return err
		}
		second, err = inventory.EnsureLocation(ctx, locationRepo, companyID, entity.LocationUsageProduction, "Otra", time.Now())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Producción", second.Name)
}

// lateLocations oculta la ubicación en la primera búsqueda, como una transacción que
// no ve todavía la fila que otra acaba de confirmar.
type lateLocations struct {
	repository.LocationRepository
	searches int
}

func (l *lateLocations) FindByUsage(ctx context.Context, companyID, usage string) (*entity.Location, error) {
	l.searches++
	if l.searches == 1 {
		return nil, nil
	}
	return l.LocationRepository.FindByUsage(ctx, companyID, usage)
}

func TestEnsureLocation_PerdedorDeLaCarreraUsaLaGuardada(t *testing.T) {
	s, _ := newUseCase(t)
	ctx := context.Background()
	s.PutLocation(entity.Location{ID: "loc-prod-ganadora", CompanyID: companyID, Name: "Producción", Usage: entity.LocationUsageProduction})
	repo := &lateLocations{LocationRepository: s.Locations()}

	loc, err := inventory.EnsureLocation(ctx, repo, companyID, entity.LocationUsageProduction, "Otra", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "loc-prod-ganadora", loc.ID)
	assert.Equal(t, 2, repo.searches)

	again, err := s.Locations().FindByUsage(ctx, companyID, entity.LocationUsageProduction)
	require.NoError(t, err)
	assert.Equal(t, "loc-prod-ganadora", again.ID)
}
