package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/segmentio/kafka-go"
)

var _ bomstock.DiagnosticSink = (*KafkaSink)(nil)

// Producer subconjunto de *kafka.Writer que usa el sink.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publica eventos de diagnóstico en un tópico, con la empresa como clave de partición.
type KafkaSink struct {
	producer Producer
	fallback bomstock.DiagnosticSink
	timeout  time.Duration
}

// NewKafkaWriter construye el writer para el tópico de diagnóstico.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// NewKafkaSink construye el sink. fallback (opcional) recibe los eventos que no se pudieron publicar.
func NewKafkaSink(producer Producer, fallback bomstock.DiagnosticSink) *KafkaSink {
	return &KafkaSink{producer: producer, fallback: fallback, timeout: 5 * time.Second}
}

// Publish serializa el evento en JSON y lo escribe en el tópico.
func (s *KafkaSink) Publish(ctx context.Context, e bomstock.DiagnosticEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	err = s.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.CompanyID),
		Value: payload,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		if s.fallback != nil {
			_ = s.fallback.Publish(context.WithoutCancel(ctx), e)
		}
		return fmt.Errorf("publicar evento %s: %w", e.Type, err)
	}
	return nil
}

// Close cierra el productor.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
