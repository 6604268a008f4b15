package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido POS.
const (
	OrderStatePaid = "paid"
)

// Order pedido POS confirmado (pagado).
type Order struct {
	ID        string
	CompanyID string
	OutletID  string
	Name      string // referencia visible, p. ej. "Caja 1/20240101-0001"
	State     string
	Total     decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
}

// OrderLine línea de un pedido POS. BOMDeductedAt marca que los componentes ya se descontaron.
type OrderLine struct {
	ID            string
	OrderID       string
	ProductID     string
	Sequence      int
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	BOMDeductedAt *time.Time
}
