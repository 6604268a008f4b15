package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RollbackDescartaEscrituras(t *testing.T) {
	s := NewStore()
	s.SetStock("p1", "l1", decimal.NewFromInt(5))
	boom := errors.New("fallo")

	err := s.RunPOS(context.Background(), func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		_ repository.PickingRepository,
		_ repository.LocationRepository,
		_ repository.OrderRepository,
	) error {
		require.NoError(t, stockRepo.Upsert(context.Background(), &entity.Stock{ProductID: "p1", LocationID: "l1", Quantity: decimal.Zero}))
		require.NoError(t, movRepo.Create(context.Background(), &entity.StockMovement{ID: "m1", ProductID: "p1"}))

		// Dentro de la tx se ve la escritura; fuera todavía no.
		inTx, _ := stockRepo.Get(context.Background(), "p1", "l1")
		assert.True(t, inTx.Quantity.IsZero())
		outside, _ := s.Stock().Get(context.Background(), "p1", "l1")
		assert.True(t, outside.Quantity.Equal(decimal.NewFromInt(5)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	st, err := s.Stock().Get(context.Background(), "p1", "l1")
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Zero(t, s.CountMovements())
}

func TestStore_ContextoCanceladoNoConfirma(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, _ repository.StockRepository, _ repository.LocationRepository) error {
		cancel()
		return movRepo.Create(ctx, &entity.StockMovement{ID: "m1"})
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.CountMovements())
}

func TestProductRepo_HasBOMDerivado(t *testing.T) {
	s := NewStore()
	s.PutProduct(entity.Product{ID: "kit", CompanyID: "c1", Name: "Kit", UseBOMInPOS: true, HasBOM: false})
	s.PutProduct(entity.Product{ID: "suelto", CompanyID: "c1", Name: "Suelto", UseBOMInPOS: true, HasBOM: true})
	s.PutBOM(entity.BillOfMaterials{ID: "b1", ProductID: "kit", Active: false})

	kit, err := s.Products().GetByID(context.Background(), "kit")
	require.NoError(t, err)
	assert.True(t, kit.HasBOM, "cualquier lista, activa o no, cuenta")
	assert.True(t, kit.SellsByBOM())

	suelto, err := s.Products().GetByID(context.Background(), "suelto")
	require.NoError(t, err)
	assert.False(t, suelto.HasBOM)
	assert.False(t, suelto.SellsByBOM())

	missing, err := s.Products().GetByID(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_ListByCompanyPaginaPorNombre(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"Cebolla", "Arepa", "Buñuelo"} {
		s.PutProduct(entity.Product{ID: n, CompanyID: "c1", Name: n})
	}
	s.PutProduct(entity.Product{ID: "x", CompanyID: "c2", Name: "Ajeno"})

	list, err := s.Products().ListByCompany(context.Background(), "c1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arepa", list[0].Name)
	assert.Equal(t, "Buñuelo", list[1].Name)

	list, err = s.Products().ListByCompany(context.Background(), "c1", 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cebolla", list[0].Name)
}

func TestBOMRepo_OrdenYNombres(t *testing.T) {
	s := NewStore()
	s.PutProduct(entity.Product{ID: "pan", Name: "Pan"})
	s.PutBOM(entity.BillOfMaterials{ID: "b2", ProductID: "kit", Active: true, Sequence: 1})
	s.PutBOM(entity.BillOfMaterials{ID: "b1", ProductID: "kit", Active: true, Sequence: 1},
		entity.BOMLine{ID: "l1", ComponentID: "pan", Quantity: decimal.NewFromInt(1)},
	)

	boms, err := s.BOMs().ListByProduct(context.Background(), "kit")
	require.NoError(t, err)
	require.Len(t, boms, 2)
	assert.Equal(t, "b1", boms[0].ID)

	lines, err := s.BOMs().ListLines(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "b1", lines[0].BOMID)
	assert.Equal(t, "Pan", lines[0].ComponentName)
}

func TestRepos_EstadosYMarcas(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.ErrorIs(t, s.Movements().UpdateState(ctx, "nada", entity.MovementStateDone), domain.ErrNotFound)
	assert.ErrorIs(t, s.Orders().MarkBOMDeducted(ctx, "nada", time.Now()), domain.ErrNotFound)
	assert.ErrorIs(t, s.Pickings().MarkDone(ctx, "nada", time.Now()), domain.ErrNotFound)

	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o1"}))
	assert.ErrorIs(t, s.Orders().Create(ctx, &entity.Order{ID: "o1"}), domain.ErrDuplicate)
	assert.ErrorIs(t, s.Orders().CreateLine(ctx, &entity.OrderLine{ID: "l1", OrderID: "o2"}), domain.ErrNotFound)
}

func TestSeedDemo(t *testing.T) {
	s := NewStore()
	require.NoError(t, SeedDemo(s))

	u, err := s.Users().FindByEmail(context.Background(), demoCashierEmail)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleCajero, u.Role)

	burger, err := s.Products().GetByID(context.Background(), DemoBurgerID)
	require.NoError(t, err)
	assert.True(t, burger.SellsByBOM())

	outlet, err := s.Outlets().GetByID(context.Background(), DemoOutletNoCheckID)
	require.NoError(t, err)
	assert.False(t, outlet.BOMValidationEnabled())
}

func TestStockRepo_AddAcumulaYCreaLaFila(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Stock().Add(ctx, "p1", "prod", decimal.NewFromInt(2)))
	require.NoError(t, s.Stock().Add(ctx, "p1", "prod", decimal.RequireFromString("1.5")))

	st, err := s.Stock().Get(ctx, "p1", "prod")
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(decimal.RequireFromString("3.5")))
}

func TestLocationRepo_UnaUbicacionVirtualPorUso(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "l1", CompanyID: "c1", Usage: entity.LocationUsageProduction}))

	err := s.Locations().Create(ctx, &entity.Location{ID: "l2", CompanyID: "c1", Usage: entity.LocationUsageProduction})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "l3", CompanyID: "c2", Usage: entity.LocationUsageProduction}))
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "l4", CompanyID: "c1", Usage: entity.LocationUsageInternal}))
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "l5", CompanyID: "c1", Usage: entity.LocationUsageInternal}))
}

func TestRepos_NombresUnicosPorEmpresa(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o1", CompanyID: "c1", Name: "Caja 1/20260101-120000-ABCD1234"}))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{ID: "o2", CompanyID: "c2", Name: "Caja 1/20260101-120000-ABCD1234"}))
	assert.ErrorIs(t, s.Orders().Create(ctx, &entity.Order{ID: "o3", CompanyID: "c1", Name: "Caja 1/20260101-120000-ABCD1234"}), domain.ErrDuplicate)

	require.NoError(t, s.Pickings().Create(ctx, &entity.Picking{ID: "p1", CompanyID: "c1", Name: "Caja 1/X/BOM/001"}))
	require.NoError(t, s.Pickings().Create(ctx, &entity.Picking{ID: "p2", CompanyID: "c2", Name: "Caja 1/X/BOM/001"}))
	assert.ErrorIs(t, s.Pickings().Create(ctx, &entity.Picking{ID: "p3", CompanyID: "c1", Name: "Caja 1/X/BOM/001"}), domain.ErrDuplicate)
}
