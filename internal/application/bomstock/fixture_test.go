package bomstock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/jhoicas/pos-bom/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa con una hamburguesa vendida por BOM (pan, carne, queso x2)
// y una gaseosa estándar.
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID    = "company-1"
	otherCompany = "company-2"
	locationID   = "loc-caja-1"
	outletOnID   = "outlet-on"
	outletOffID  = "outlet-off"
	outletNilID  = "outlet-nil"
	burgerID     = "prod-burger"
	sodaID       = "prod-soda"
	bunID        = "prod-bun"
	pattyID      = "prod-patty"
	cheeseID     = "prod-cheese"
	burgerBOMID  = "bom-burger"
	userID       = "user-cajero"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func boolPtr(b bool) *bool { return &b }

type recordingSink struct {
	events []bomstock.DiagnosticEvent
}

func (s *recordingSink) Publish(_ context.Context, e bomstock.DiagnosticEvent) error {
	s.events = append(s.events, e)
	return nil
}

type failingValidator struct{}

func (failingValidator) Validate(context.Context, string) error {
	return errors.New("documento bloqueado por otro proceso")
}

type fixture struct {
	t        *testing.T
	store    *memory.Store
	resolver *bomstock.Resolver
	sink     *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	now := time.Now()

	s.PutCompany(entity.Company{ID: companyID, Name: "Comidas Rápidas", Status: "active"})
	s.PutLocation(entity.Location{ID: locationID, CompanyID: companyID, Name: "Caja 1/Stock", Usage: entity.LocationUsageInternal, CreatedAt: now})
	s.PutOutlet(entity.Outlet{ID: outletOnID, CompanyID: companyID, Name: "Caja 1", StockLocationID: locationID, BOMValidation: boolPtr(true)})
	s.PutOutlet(entity.Outlet{ID: outletOffID, CompanyID: companyID, Name: "Caja 2", StockLocationID: locationID, BOMValidation: boolPtr(false)})
	s.PutOutlet(entity.Outlet{ID: outletNilID, CompanyID: companyID, Name: "Caja 3", StockLocationID: locationID})

	s.PutProduct(entity.Product{ID: burgerID, CompanyID: companyID, SKU: "HB-01", Name: "Hamburguesa", Price: dec("18000"), UnitMeasure: "Unidad", UseBOMInPOS: true})
	s.PutProduct(entity.Product{ID: sodaID, CompanyID: companyID, SKU: "GS-01", Name: "Gaseosa", Price: dec("4000"), UnitMeasure: "Unidad"})
	s.PutProduct(entity.Product{ID: bunID, CompanyID: companyID, SKU: "PN-01", Name: "Pan", UnitMeasure: "Unidad"})
	s.PutProduct(entity.Product{ID: pattyID, CompanyID: companyID, SKU: "CR-01", Name: "Carne", UnitMeasure: "Unidad"})
	s.PutProduct(entity.Product{ID: cheeseID, CompanyID: companyID, SKU: "QS-01", Name: "Queso", UnitMeasure: "Tajada"})

	s.PutBOM(entity.BillOfMaterials{ID: burgerBOMID, CompanyID: companyID, ProductID: burgerID, Code: "HB", Active: true, Sequence: 1},
		entity.BOMLine{ID: "bl-1", ComponentID: bunID, Quantity: dec("1"), UOMName: "Unidad", Sequence: 1},
		entity.BOMLine{ID: "bl-2", ComponentID: pattyID, Quantity: dec("1"), UOMName: "Unidad", Sequence: 2},
		entity.BOMLine{ID: "bl-3", ComponentID: cheeseID, Quantity: dec("2"), UOMName: "Tajada", Sequence: 3},
	)

	return &fixture{
		t:        t,
		store:    s,
		resolver: bomstock.NewResolver(s.Products(), s.BOMs()),
		sink:     &recordingSink{},
	}
}

func (f *fixture) stock(bun, patty, cheese string) {
	f.store.SetStock(bunID, locationID, dec(bun))
	f.store.SetStock(pattyID, locationID, dec(patty))
	f.store.SetStock(cheeseID, locationID, dec(cheese))
}

func (f *fixture) onHand(productID string) decimal.Decimal {
	f.t.Helper()
	s, err := f.store.Stock().Get(context.Background(), productID, locationID)
	require.NoError(f.t, err)
	return s.Quantity
}

func (f *fixture) gate(defaultEnabled bool) *bomstock.ValidationGate {
	return f.gateWithStock(f.store.Stock(), defaultEnabled)
}

func (f *fixture) gateWithStock(stock repository.StockRepository, defaultEnabled bool) *bomstock.ValidationGate {
	return bomstock.NewValidationGate(f.resolver, f.store.Products(), f.store.Outlets(), stock, defaultEnabled, zerolog.Nop())
}

func (f *fixture) executor(runner bomstock.TxRunner, validator bomstock.PickingValidator) *bomstock.DeductionExecutor {
	return bomstock.NewDeductionExecutor(runner, f.resolver, f.store.Products(), f.store.Outlets(), f.store.Orders(),
		validator, f.sink, bomstock.ExecutorConfig{}, zerolog.Nop())
}

func (f *fixture) defaultExecutor() *bomstock.DeductionExecutor {
	return f.executor(f.store, bomstock.NewRepoPickingValidator(f.store.Pickings(), f.store.Movements()))
}

// placeOrder registra un pedido pagado de una línea, sin descontar stock.
func (f *fixture) placeOrder(outletID, productID, qty string) (*entity.Order, *entity.OrderLine) {
	f.t.Helper()
	ctx := context.Background()
	order := &entity.Order{
		ID:        "order-" + productID + "-" + qty + "-" + outletID,
		CompanyID: companyID,
		OutletID:  outletID,
		Name:      "Caja/" + productID + "-" + qty + "-" + outletID,
		State:     entity.OrderStatePaid,
		CreatedAt: time.Now(),
	}
	line := &entity.OrderLine{
		ID:        order.ID + "-l1",
		OrderID:   order.ID,
		ProductID: productID,
		Sequence:  1,
		Quantity:  dec(qty),
	}
	require.NoError(f.t, f.store.Orders().Create(ctx, order))
	require.NoError(f.t, f.store.Orders().CreateLine(ctx, line))
	return order, line
}
