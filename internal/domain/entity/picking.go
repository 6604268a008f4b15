package entity

import "time"

// Estados de un documento de transferencia.
const (
	PickingStateDraft = "draft"
	PickingStateDone  = "done"
)

// Tipos de operación del documento.
const (
	PickingTypeInternal = "internal"
	PickingTypeOutgoing = "outgoing"
)

// Picking agrupa los movimientos de componentes generados por una línea de pedido.
// Su validación es un paso posterior de mejor esfuerzo: si falla, la venta sigue en pie.
type Picking struct {
	ID               string
	CompanyID        string
	Name             string
	Type             string
	Origin           string
	SourceLocationID string
	DestLocationID   string
	State            string
	CreatedAt        time.Time
	DoneAt           *time.Time
}
