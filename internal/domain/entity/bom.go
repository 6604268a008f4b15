package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillOfMaterials lista de materiales de un producto. Solo se usa la primera activa.
type BillOfMaterials struct {
	ID        string
	CompanyID string
	ProductID string
	Code      string
	Active    bool
	Sequence  int // desempate entre listas activas: menor secuencia primero
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BOMLine componente de una lista de materiales. Quantity es por unidad vendida del producto padre.
// La unidad de medida se transporta sin conversión.
type BOMLine struct {
	ID            string
	BOMID         string
	ComponentID   string
	ComponentName string
	Quantity      decimal.Decimal
	UOMID         string
	UOMName       string
	Sequence      int
}
