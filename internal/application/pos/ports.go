// Package pos agrupa los casos de uso de la sesión de caja: carga de productos,
// verificación de disponibilidad, envío de pedidos y recibos.
package pos

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReceiptComponent componente consumido por una línea vendida por lista de materiales.
type ReceiptComponent struct {
	Name     string
	Quantity decimal.Decimal
	UOMName  string
}

// ReceiptLine línea del recibo; Components vacío para productos estándar.
type ReceiptLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Components  []ReceiptComponent
}

// Receipt datos para la representación gráfica del pedido.
type Receipt struct {
	Company   *entity.Company
	Outlet    *entity.Outlet
	Order     *entity.Order
	Cashier   string
	Lines     []ReceiptLine
	PrintedAt time.Time
}

// ReceiptPDFGenerator genera el PDF del recibo (implementación en infrastructure/pdf).
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *Receipt) ([]byte, error)
}

// OrderRejectedError el pedido no pasó la validación BOM previa al pago.
type OrderRejectedError struct {
	Verdict bomstock.OrderVerdict
}

func (e *OrderRejectedError) Error() string { return e.Verdict.Message() }

func (e *OrderRejectedError) Unwrap() error { return domain.ErrOrderRejected }
