package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

// DefaultTopic tópico de alertas si ALERTS_KAFKA_TOPIC está vacío.
const DefaultTopic = "inventory.low-stock"

var _ ports.AlertNotifier = (*KafkaPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica cada alerta como JSON, con la tienda como clave de partición.
type KafkaPublisher struct {
	writer messageWriter
	log    *logger.Logger
}

// NewKafkaPublisher crea un writer asíncrono; los errores de entrega se registran en Completion.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no hay brokers configurados")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	if log == nil {
		log = logger.NewNop()
	}
	log = log.Named("kafka-alerts")
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("messages", len(msgs)).Msg("no se pudieron publicar alertas")
			}
		},
	}
	return newKafkaPublisher(w, log), nil
}

func newKafkaPublisher(w messageWriter, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log}
}

func (p *KafkaPublisher) Notify(ctx context.Context, a ports.LowStockAlert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("kafka: serializar alerta: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(a.ShopID),
		Value: payload,
		Time:  a.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("low_stock_alert")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar alerta: %w", err)
	}
	return nil
}

// Close vacía el buffer del writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
