package entity

import (
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/shopspring/decimal"
)

// Estados de un movimiento de stock. Solo avanzan en este orden.
const (
	MovementStateDraft     = "draft"
	MovementStateConfirmed = "confirmed"
	MovementStateAssigned  = "assigned"
	MovementStateDone      = "done"
)

// Tipos de movimiento registrados por el motor de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida estándar (venta de producto sin BOM)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones internas
	MovementTypeBOM        = "BOM"        // consumo de componente por venta de producto con BOM
)

// StockMovement transferencia de cantidad de un producto entre dos ubicaciones.
// Persiste como traza de auditoría; OrderID/OrderLineID quedan vacíos para movimientos manuales.
type StockMovement struct {
	ID               string
	CompanyID        string
	Name             string
	Type             string
	ProductID        string
	UOMID            string
	Quantity         decimal.Decimal // siempre positiva; el sentido lo dan origen y destino
	SourceLocationID string
	DestLocationID   string
	State            string
	Origin           string // referencia del pedido POS
	OrderID          string
	OrderLineID      string
	PickingID        string
	Date             time.Time
	CreatedAt        time.Time
	CreatedBy        string
}

var nextMovementState = map[string]string{
	MovementStateDraft:     MovementStateConfirmed,
	MovementStateConfirmed: MovementStateAssigned,
	MovementStateAssigned:  MovementStateDone,
}

// Advance mueve el estado al siguiente paso del flujo draft → confirmed → assigned → done.
func (m *StockMovement) Advance(to string) error {
	if nextMovementState[m.State] != to {
		return domain.ErrInvalidTransition
	}
	m.State = to
	return nil
}
