// Package bom contiene la lógica pura de listas de materiales para el POS:
// selección de la lista activa, verificación de disponibilidad y veredictos.
package bom

import (
	"sort"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Component componente requerido por unidad vendida del producto padre.
type Component struct {
	ComponentID   string          `json:"product_id"`
	ComponentName string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UOMID         string          `json:"uom_id"`
	UOMName       string          `json:"uom_name"`
}

// SelectActive elige la lista de materiales a usar: la primera activa.
// Con varias activas gana la de menor Sequence y, a igualdad, la de menor ID.
// Devuelve nil si ninguna está activa.
func SelectActive(boms []entity.BillOfMaterials) *entity.BillOfMaterials {
	var picked *entity.BillOfMaterials
	for i := range boms {
		b := &boms[i]
		if !b.Active {
			continue
		}
		if picked == nil || b.Sequence < picked.Sequence ||
			(b.Sequence == picked.Sequence && b.ID < picked.ID) {
			picked = b
		}
	}
	return picked
}

// ComponentsFromLines convierte las líneas de la lista en componentes respetando su orden definido.
func ComponentsFromLines(lines []entity.BOMLine) []Component {
	ordered := make([]entity.BOMLine, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })

	out := make([]Component, 0, len(ordered))
	for _, l := range ordered {
		out = append(out, Component{
			ComponentID:   l.ComponentID,
			ComponentName: l.ComponentName,
			Quantity:      l.Quantity,
			UOMID:         l.UOMID,
			UOMName:       l.UOMName,
		})
	}
	return out
}
