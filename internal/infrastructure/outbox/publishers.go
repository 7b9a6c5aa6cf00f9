package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// KafkaPublisher publica cada evento con clave = id del pedido, así un consumidor ve los eventos del pedido en orden.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher crea el writer sobre los brokers dados.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e *entity.OutboxEvent) error {
	msg := kafkaMessage(e)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func kafkaMessage(e *entity.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(e.AggregateID),
		Value: e.Payload,
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.ID)},
			{Key: "event_type", Value: []byte(e.EventType)},
		},
	}
}

// LogPublisher escribe la notificación en el log estructurado (sin broker configurado).
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.Component("notifications")}
}

func (p *LogPublisher) Publish(_ context.Context, e *entity.OutboxEvent) error {
	p.log.Info().
		Str("event_id", e.ID).
		Str("event_type", e.EventType).
		Str("order_id", e.AggregateID).
		RawJSON("payload", e.Payload).
		Msg("notificación de pedido")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
