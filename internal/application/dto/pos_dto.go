package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AvailabilityRequest body para POST /api/pos/availability (verificación al agregar al carrito).
type AvailabilityRequest struct {
	OutletID  string          `json:"outlet_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// VerdictResponse resultado de una verificación de disponibilidad.
type VerdictResponse struct {
	Valid         bool             `json:"valid"`
	Bypassed      bool             `json:"bypassed,omitempty"`
	ComponentID   string           `json:"component_id,omitempty"`
	ComponentName string           `json:"component_name,omitempty"`
	Available     *decimal.Decimal `json:"available,omitempty"`
	Required      *decimal.Decimal `json:"required,omitempty"`
	Message       string           `json:"message,omitempty"`
}

// OrderLineRequest línea de un pedido POS.
type OrderLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // si va vacío se usa el precio del producto
}

// OrderRequest body para POST /api/pos/orders y POST /api/pos/orders/validate.
type OrderRequest struct {
	OutletID string             `json:"outlet_id"`
	Lines    []OrderLineRequest `json:"lines"`
}

// LineErrorResponse línea rechazada por la validación BOM.
type LineErrorResponse struct {
	Index       int             `json:"index"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Verdict     VerdictResponse `json:"verdict"`
}

// OrderValidationResponse resultado agregado de la validación previa al pago.
type OrderValidationResponse struct {
	Valid    bool                `json:"valid"`
	Bypassed bool                `json:"bypassed,omitempty"`
	Message  string              `json:"message,omitempty"`
	Errors   []LineErrorResponse `json:"errors,omitempty"`
}

// OrderLineResponse línea de pedido en respuestas.
type OrderLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	BOMDeductedAt *time.Time      `json:"bom_deducted_at,omitempty"`
}

// OrderResponse pedido POS confirmado.
type OrderResponse struct {
	ID        string              `json:"id"`
	OutletID  string              `json:"outlet_id"`
	Name      string              `json:"name"`
	State     string              `json:"state"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Lines     []OrderLineResponse `json:"lines"`
	Pickings  []string            `json:"pickings,omitempty"`
}
