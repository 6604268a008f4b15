// Package bomstock implementa el motor de validación y descuento de stock por lista de
// materiales para el POS: resolución de componentes, compuerta de validación y ejecutor
// de descuentos.
package bomstock

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

// TxFunc recibe los repositorios atados a una transacción de BD.
type TxFunc func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	pickingRepo repository.PickingRepository,
	locationRepo repository.LocationRepository,
	orderRepo repository.OrderRepository,
) error

// TxRunner ejecuta fn dentro de una transacción: Commit si devuelve nil, Rollback si no.
// Garantiza que un descuento fallido no deje movimientos parciales.
type TxRunner interface {
	RunPOS(ctx context.Context, fn TxFunc) error
}

// PickingValidator paso de flujo posterior al descuento que cierra el documento de transferencia.
type PickingValidator interface {
	Validate(ctx context.Context, pickingID string) error
}

// Tipos de evento de diagnóstico.
const (
	EventDownstreamWorkflowFailure = "bom.downstream_workflow_failure"
)

// DiagnosticEvent evento lateral para fallos que no bloquean la venta.
type DiagnosticEvent struct {
	Type        string    `json:"type"`
	CompanyID   string    `json:"company_id"`
	OrderID     string    `json:"order_id"`
	OrderName   string    `json:"order_name"`
	PickingID   string    `json:"picking_id,omitempty"`
	PickingName string    `json:"picking_name,omitempty"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// DiagnosticSink publica eventos de diagnóstico (log, broker, etc.).
type DiagnosticSink interface {
	Publish(ctx context.Context, event DiagnosticEvent) error
}
