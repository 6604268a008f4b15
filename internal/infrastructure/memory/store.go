// Package memory implementa los repositorios sobre un almacén transaccional en memoria.
// Se usa en modo demo (STORE_DRIVER=memory) y en las pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ bomstock.TxRunner  = (*Store)(nil)
)

type stockKey struct {
	productID  string
	locationID string
}

type state struct {
	companies map[string]entity.Company
	users     map[string]entity.User
	products  map[string]entity.Product
	boms      map[string]entity.BillOfMaterials
	bomLines  map[string][]entity.BOMLine // por bomID
	locations map[string]entity.Location
	outlets   map[string]entity.Outlet
	stock     map[stockKey]entity.Stock
	movements []entity.StockMovement
	pickings  map[string]entity.Picking
	orders    map[string]entity.Order
	lines     []entity.OrderLine
}

func newState() *state {
	return &state{
		companies: map[string]entity.Company{},
		users:     map[string]entity.User{},
		products:  map[string]entity.Product{},
		boms:      map[string]entity.BillOfMaterials{},
		bomLines:  map[string][]entity.BOMLine{},
		locations: map[string]entity.Location{},
		outlets:   map[string]entity.Outlet{},
		stock:     map[stockKey]entity.Stock{},
		pickings:  map[string]entity.Picking{},
		orders:    map[string]entity.Order{},
	}
}

// clone copia superficial: los punteros de las entidades nunca se mutan en sitio.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.boms {
		c.boms[k] = v
	}
	for k, v := range s.bomLines {
		c.bomLines[k] = append([]entity.BOMLine(nil), v...)
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.outlets {
		c.outlets[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.pickings {
		c.pickings[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	c.lines = append([]entity.OrderLine(nil), s.lines...)
	return c
}

// Store almacén en memoria con transacciones serializadas. Cada transacción trabaja sobre
// una copia del estado y la publica al confirmar; un error descarta la copia (Rollback).
type Store struct {
	txMu  sync.Mutex   // serializa escrituras, equivalente al bloqueo de fila
	mu    sync.RWMutex // protege state
	state *state
	nowFn func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState(), nowFn: time.Now}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
) error) error {
	return s.transact(ctx, func(b binding) error {
		return fn(&StockMovementRepo{b}, &StockRepo{b}, &LocationRepo{b})
	})
}

// RunPOS implementa bomstock.TxRunner.
func (s *Store) RunPOS(ctx context.Context, fn bomstock.TxFunc) error {
	return s.transact(ctx, func(b binding) error {
		return fn(&StockRepo{b}, &StockMovementRepo{b}, &PickingRepo{b}, &LocationRepo{b}, &OrderRepo{b})
	})
}

func (s *Store) transact(ctx context.Context, fn func(b binding) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	if err := fn(binding{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

// Repositorios fuera de transacción (lecturas sobre el estado confirmado, escrituras en autocommit).

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{binding{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{binding{store: s}} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{binding{store: s}} }

// BOMs repositorio de listas de materiales.
func (s *Store) BOMs() *BOMRepo { return &BOMRepo{binding{store: s}} }

// Locations repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{binding{store: s}} }

// Outlets repositorio de puntos de venta.
func (s *Store) Outlets() *OutletRepo { return &OutletRepo{binding{store: s}} }

// Stock repositorio de stock.
func (s *Store) Stock() *StockRepo { return &StockRepo{binding{store: s}} }

// Movements repositorio de movimientos.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{binding{store: s}} }

// Pickings repositorio de documentos de transferencia.
func (s *Store) Pickings() *PickingRepo { return &PickingRepo{binding{store: s}} }

// Orders repositorio de pedidos POS.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{binding{store: s}} }

// binding ata un repositorio al estado de una transacción (tx != nil) o al estado confirmado.
type binding struct {
	store *Store
	tx    *state
}

func (b binding) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	fn(b.store.state)
}

// write no debe llamarse fuera de transacción desde dentro de un callback de Run/RunPOS.
func (b binding) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	return b.store.transact(context.Background(), func(inner binding) error {
		return fn(inner.tx)
	})
}
