package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible en el POS (catálogo externo, solo lectura para el núcleo BOM).
// HasBOM es derivado: verdadero si existe al menos una lista de materiales asociada.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Price       decimal.Decimal // precio de venta
	UnitMeasure string
	UseBOMInPOS bool // al venderse descuenta componentes en lugar del producto
	HasBOM      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SellsByBOM indica si la venta del producto debe mover los componentes y nunca el stock propio.
func (p *Product) SellsByBOM() bool {
	return p != nil && p.UseBOMInPOS && p.HasBOM
}
