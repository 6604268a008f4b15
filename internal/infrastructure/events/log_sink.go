// Package events publica eventos de diagnóstico del motor BOM fuera de la transacción de venta.
package events

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/rs/zerolog"
)

var _ bomstock.DiagnosticSink = (*LogSink)(nil)

// LogSink registra los eventos en el log estructurado. Es el destino por defecto sin broker.
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink construye el sink.
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Publish nunca falla.
func (s *LogSink) Publish(_ context.Context, e bomstock.DiagnosticEvent) error {
	s.log.Warn().
		Str("event", e.Type).
		Str("company_id", e.CompanyID).
		Str("order_id", e.OrderID).
		Str("order", e.OrderName).
		Str("picking", e.PickingName).
		Time("occurred_at", e.OccurredAt).
		Msg(e.Message)
	return nil
}
