package memory

import (
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Carga directa de datos maestros (sin transacción), para demo y pruebas.

// PutCompany registra o reemplaza una empresa.
func (s *Store) PutCompany(c entity.Company) {
	s.mutate(func(st *state) { st.companies[c.ID] = c })
}

// PutUser registra o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mutate(func(st *state) { st.users[u.ID] = u })
}

// PutProduct registra o reemplaza un producto. HasBOM se ignora: se deriva de las listas.
func (s *Store) PutProduct(p entity.Product) {
	s.mutate(func(st *state) { st.products[p.ID] = p })
}

// PutBOM registra una lista de materiales con sus líneas (BOMID se completa).
func (s *Store) PutBOM(b entity.BillOfMaterials, lines ...entity.BOMLine) {
	s.mutate(func(st *state) {
		st.boms[b.ID] = b
		out := make([]entity.BOMLine, 0, len(lines))
		for _, l := range lines {
			l.BOMID = b.ID
			out = append(out, l)
		}
		st.bomLines[b.ID] = out
	})
}

// PutLocation registra o reemplaza una ubicación.
func (s *Store) PutLocation(l entity.Location) {
	s.mutate(func(st *state) { st.locations[l.ID] = l })
}

// PutOutlet registra o reemplaza un punto de venta.
func (s *Store) PutOutlet(o entity.Outlet) {
	s.mutate(func(st *state) { st.outlets[o.ID] = o })
}

// SetStock fija la cantidad disponible de un producto en una ubicación.
func (s *Store) SetStock(productID, locationID string, qty decimal.Decimal) {
	s.mutate(func(st *state) {
		st.stock[stockKey{productID, locationID}] = entity.Stock{
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   qty,
			UpdatedAt:  s.nowFn(),
		}
	})
}

// CountPickings número de documentos de transferencia confirmados.
func (s *Store) CountPickings() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.pickings)
}

// CountMovements número de movimientos confirmados.
func (s *Store) CountMovements() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.movements)
}

func (s *Store) mutate(fn func(st *state)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}
