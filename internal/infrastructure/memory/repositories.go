package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CompanyRepository       = (*CompanyRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.BOMRepository           = (*BOMRepo)(nil)
	_ repository.LocationRepository      = (*LocationRepo)(nil)
	_ repository.OutletRepository        = (*OutletRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.PickingRepository       = (*PickingRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ b binding }

// GetByID devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	r.b.read(func(st *state) {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ b binding }

// Create persiste un usuario; el email es único por empresa.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.b.write(func(st *state) error {
		for _, x := range st.users {
			if x.CompanyID == u.CompanyID && strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

// GetByEmailAndCompany busca por email dentro de una empresa.
func (r *UserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	var out *entity.User
	r.b.read(func(st *state) {
		for _, x := range st.users {
			if x.CompanyID == companyID && strings.EqualFold(x.Email, email) {
				u := x
				out = &u
				return
			}
		}
	})
	return out, nil
}

// FindByEmail busca por email en cualquier empresa.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.b.read(func(st *state) {
		for _, x := range st.users {
			if strings.EqualFold(x.Email, email) {
				u := x
				out = &u
				return
			}
		}
	})
	return out, nil
}

// ProductRepo catálogo en memoria. HasBOM se deriva de las listas registradas.
type ProductRepo struct{ b binding }

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.b.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			p.HasBOM = st.hasBOM(id)
			out = &p
		}
	})
	return out, nil
}

// ListByCompany lista productos de la empresa ordenados por nombre.
func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	r.b.read(func(st *state) {
		for _, p := range st.products {
			if p.CompanyID != companyID {
				continue
			}
			p := p
			p.HasBOM = st.hasBOM(p.ID)
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return page(all, limit, offset), nil
}

func (st *state) hasBOM(productID string) bool {
	for _, b := range st.boms {
		if b.ProductID == productID {
			return true
		}
	}
	return false
}

// BOMRepo listas de materiales en memoria.
type BOMRepo struct{ b binding }

// ListByProduct devuelve todas las listas del producto ordenadas por secuencia.
func (r *BOMRepo) ListByProduct(_ context.Context, productID string) ([]entity.BillOfMaterials, error) {
	var out []entity.BillOfMaterials
	r.b.read(func(st *state) {
		for _, b := range st.boms {
			if b.ProductID == productID {
				out = append(out, b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListLines devuelve las líneas de una lista en el orden de registro.
func (r *BOMRepo) ListLines(_ context.Context, bomID string) ([]entity.BOMLine, error) {
	var out []entity.BOMLine
	r.b.read(func(st *state) {
		for _, l := range st.bomLines[bomID] {
			if p, ok := st.products[l.ComponentID]; ok && l.ComponentName == "" {
				l.ComponentName = p.Name
			}
			out = append(out, l)
		}
	})
	return out, nil
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ b binding }

// GetByID devuelve (nil, nil) si no existe.
func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.b.read(func(st *state) {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

// FindByUsage devuelve la ubicación más antigua de la empresa con ese uso.
func (r *LocationRepo) FindByUsage(_ context.Context, companyID, usage string) (*entity.Location, error) {
	var out *entity.Location
	r.b.read(func(st *state) {
		for _, l := range st.locations {
			if l.CompanyID != companyID || l.Usage != usage {
				continue
			}
			if out == nil || l.CreatedAt.Before(out.CreatedAt) || (l.CreatedAt.Equal(out.CreatedAt) && l.ID < out.ID) {
				l := l
				out = &l
			}
		}
	})
	return out, nil
}

// Create persiste una ubicación; rechaza una segunda ubicación virtual con el mismo uso.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.locations[l.ID]; ok {
			return domain.ErrDuplicate
		}
		if entity.IsVirtualUsage(l.Usage) {
			for _, other := range st.locations {
				if other.CompanyID == l.CompanyID && other.Usage == l.Usage {
					return domain.ErrDuplicate
				}
			}
		}
		st.locations[l.ID] = *l
		return nil
	})
}

// OutletRepo puntos de venta en memoria.
type OutletRepo struct{ b binding }

// GetByID devuelve (nil, nil) si no existe.
func (r *OutletRepo) GetByID(_ context.Context, id string) (*entity.Outlet, error) {
	var out *entity.Outlet
	r.b.read(func(st *state) {
		if o, ok := st.outlets[id]; ok {
			out = &o
		}
	})
	return out, nil
}

// StockRepo stock por producto y ubicación en memoria.
type StockRepo struct{ b binding }

// Get devuelve cantidad cero si no hay fila.
func (r *StockRepo) Get(_ context.Context, productID, locationID string) (*entity.Stock, error) {
	out := &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
	r.b.read(func(st *state) {
		if s, ok := st.stock[stockKey{productID, locationID}]; ok {
			out = &s
		}
	})
	return out, nil
}

// GetForUpdate igual que Get: dentro de una transacción la fila ya está aislada.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, locationID)
}

// Upsert inserta o reemplaza la cantidad.
func (r *StockRepo) Upsert(_ context.Context, s *entity.Stock) error {
	return r.b.write(func(st *state) error {
		st.stock[stockKey{s.ProductID, s.LocationID}] = *s
		return nil
	})
}

// Add suma delta sobre la cantidad actual; sin fila parte de cero.
func (r *StockRepo) Add(_ context.Context, productID, locationID string, delta decimal.Decimal) error {
	return r.b.write(func(st *state) error {
		key := stockKey{productID, locationID}
		cur, ok := st.stock[key]
		if !ok {
			cur = entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
		}
		cur.Quantity = cur.Quantity.Add(delta)
		cur.UpdatedAt = r.b.store.nowFn()
		st.stock[key] = cur
		return nil
	})
}

// StockMovementRepo movimientos en memoria.
type StockMovementRepo struct{ b binding }

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.b.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// UpdateState cambia el estado de un movimiento existente.
func (r *StockMovementRepo) UpdateState(_ context.Context, movementID, stateName string) error {
	return r.b.write(func(st *state) error {
		for i := range st.movements {
			if st.movements[i].ID == movementID {
				st.movements[i].State = stateName
				return nil
			}
		}
		return fmt.Errorf("movimiento %s: %w", movementID, domain.ErrNotFound)
	})
}

// ListByOrder movimientos de un pedido en orden de creación.
func (r *StockMovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool { return m.OrderID == orderID }), nil
}

// ListByPicking movimientos de un documento en orden de creación.
func (r *StockMovementRepo) ListByPicking(_ context.Context, pickingID string) ([]*entity.StockMovement, error) {
	return r.filter(func(m entity.StockMovement) bool { return m.PickingID == pickingID }), nil
}

func (r *StockMovementRepo) filter(keep func(entity.StockMovement) bool) []*entity.StockMovement {
	var out []*entity.StockMovement
	r.b.read(func(st *state) {
		for _, m := range st.movements {
			if keep(m) {
				m := m
				out = append(out, &m)
			}
		}
	})
	return out
}

// PickingRepo documentos de transferencia en memoria.
type PickingRepo struct{ b binding }

// Create persiste un documento; el nombre es único por empresa.
func (r *PickingRepo) Create(_ context.Context, p *entity.Picking) error {
	return r.b.write(func(st *state) error {
		for _, other := range st.pickings {
			if other.CompanyID == p.CompanyID && other.Name == p.Name {
				return domain.ErrDuplicate
			}
		}
		st.pickings[p.ID] = *p
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *PickingRepo) GetByID(_ context.Context, id string) (*entity.Picking, error) {
	var out *entity.Picking
	r.b.read(func(st *state) {
		if p, ok := st.pickings[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// MarkDone cierra el documento.
func (r *PickingRepo) MarkDone(_ context.Context, id string, doneAt time.Time) error {
	return r.b.write(func(st *state) error {
		p, ok := st.pickings[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.State = entity.PickingStateDone
		p.DoneAt = &doneAt
		st.pickings[id] = p
		return nil
	})
}

// OrderRepo pedidos POS en memoria.
type OrderRepo struct{ b binding }

// Create persiste la cabecera del pedido; el nombre es único por empresa.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.orders {
			if other.CompanyID == o.CompanyID && other.Name == o.Name {
				return domain.ErrDuplicate
			}
		}
		st.orders[o.ID] = *o
		return nil
	})
}

// CreateLine persiste una línea del pedido.
func (r *OrderRepo) CreateLine(_ context.Context, l *entity.OrderLine) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.orders[l.OrderID]; !ok {
			return fmt.Errorf("pedido %s: %w", l.OrderID, domain.ErrNotFound)
		}
		st.lines = append(st.lines, *l)
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.b.read(func(st *state) {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
	})
	return out, nil
}

// ListLines líneas del pedido por secuencia.
func (r *OrderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	r.b.read(func(st *state) {
		for _, l := range st.lines {
			if l.OrderID == orderID {
				l := l
				out = append(out, &l)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

// GetLineForUpdate devuelve (nil, nil) si la línea no existe.
func (r *OrderRepo) GetLineForUpdate(_ context.Context, lineID string) (*entity.OrderLine, error) {
	var out *entity.OrderLine
	r.b.read(func(st *state) {
		for _, l := range st.lines {
			if l.ID == lineID {
				l := l
				out = &l
				return
			}
		}
	})
	return out, nil
}

// MarkBOMDeducted registra el descuento de componentes de la línea.
func (r *OrderRepo) MarkBOMDeducted(_ context.Context, lineID string, at time.Time) error {
	return r.b.write(func(st *state) error {
		for i := range st.lines {
			if st.lines[i].ID == lineID {
				st.lines[i].BOMDeductedAt = &at
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
