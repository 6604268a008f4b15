package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (p *fakeProducer) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func (p *fakeProducer) Close() error {
	p.closed = true
	return nil
}

type recordingSink struct{ events []bomstock.DiagnosticEvent }

func (s *recordingSink) Publish(_ context.Context, e bomstock.DiagnosticEvent) error {
	s.events = append(s.events, e)
	return nil
}

func sampleEvent() bomstock.DiagnosticEvent {
	return bomstock.DiagnosticEvent{
		Type:        bomstock.EventDownstreamWorkflowFailure,
		CompanyID:   "company-1",
		OrderID:     "order-1",
		OrderName:   "Caja 1/0001",
		PickingID:   "pick-1",
		PickingName: "Caja 1/0001/BOM/001",
		Message:     "transición de estado inválida",
		OccurredAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestKafkaSink_PublicaConClaveDeEmpresa(t *testing.T) {
	p := &fakeProducer{}
	sink := NewKafkaSink(p, nil)

	require.NoError(t, sink.Publish(context.Background(), sampleEvent()))
	require.Len(t, p.msgs, 1)

	msg := p.msgs[0]
	assert.Equal(t, "company-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, bomstock.EventDownstreamWorkflowFailure, string(msg.Headers[0].Value))

	var decoded bomstock.DiagnosticEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "pick-1", decoded.PickingID)

	require.NoError(t, sink.Close())
	assert.True(t, p.closed)
}

func TestKafkaSink_ErrorDelBrokerUsaFallback(t *testing.T) {
	p := &fakeProducer{err: errors.New("broker caído")}
	fallback := &recordingSink{}
	sink := NewKafkaSink(p, fallback)

	err := sink.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
	require.Len(t, fallback.events, 1)
	assert.Equal(t, "order-1", fallback.events[0].OrderID)
}

func TestLogSink_RegistraAdvertencia(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	require.NoError(t, sink.Publish(context.Background(), sampleEvent()))
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, bomstock.EventDownstreamWorkflowFailure)
	assert.Contains(t, out, "Caja 1/0001/BOM/001")
}
