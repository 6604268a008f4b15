package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/jhoicas/pos-bom/internal/infrastructure/memory"
	"github.com/jhoicas/pos-bom/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-bom/pkg/config"
)

// txRunner transacciones de inventario manual y de pedidos POS.
type txRunner interface {
	inventory.TxRunner
	bomstock.TxRunner
}

// stores repositorios fuera de transacción más el runner transaccional del driver elegido.
type stores struct {
	tx        txRunner
	companies repository.CompanyRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	boms      repository.BOMRepository
	locations repository.LocationRepository
	outlets   repository.OutletRepository
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	pickings  repository.PickingRepository
	orders    repository.OrderRepository
	close     func()
}

// openStores abre el almacenamiento según STORE_DRIVER. "memory" carga el set de demostración.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewStore()
		if err := memory.SeedDemo(s); err != nil {
			return nil, fmt.Errorf("cargar datos de demostración: %w", err)
		}
		return &stores{
			tx:        s,
			companies: s.Companies(),
			users:     s.Users(),
			products:  s.Products(),
			boms:      s.BOMs(),
			locations: s.Locations(),
			outlets:   s.Outlets(),
			stock:     s.Stock(),
			movements: s.Movements(),
			pickings:  s.Pickings(),
			orders:    s.Orders(),
			close:     func() {},
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &stores{
			tx:        postgres.NewTxRunner(pool),
			companies: postgres.NewCompanyRepository(pool),
			users:     postgres.NewUserRepository(pool),
			products:  postgres.NewProductRepository(pool),
			boms:      postgres.NewBOMRepository(pool),
			locations: postgres.NewLocationRepository(pool),
			outlets:   postgres.NewOutletRepository(pool),
			stock:     postgres.NewStockRepository(pool),
			movements: postgres.NewStockMovementRepository(pool),
			pickings:  postgres.NewPickingRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			close:     pool.Close,
		}, nil
	}
}
