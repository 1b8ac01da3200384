package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"stockkeeper/internal/domain"
	"stockkeeper/internal/pkg/logger"
)

// Publisher publica eventos de estoque. Falhas nunca alteram o resultado do ajuste.
type Publisher interface {
	PublishStockAdjusted(ctx context.Context, event domain.StockAdjustedEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher escreve eventos JSON num tópico Kafka, chaveados por item.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  logger.Logger
}

// NewKafkaPublisher cria um writer assíncrono para os brokers e tópico informados.
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration, log logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				log.Error(fmt.Sprintf("Falha ao entregar %d evento(s) de estoque.", len(msgs)), err)
			}
		},
	}
	return &KafkaPublisher{writer: w, timeout: timeout, logger: log}
}

// PublishStockAdjusted serializa o evento e o envia, propagando o contexto de trace nos headers.
func (p *KafkaPublisher) PublishStockAdjusted(ctx context.Context, event domain.StockAdjustedEvent) error {
	msg, err := newMessage(ctx, event)
	if err != nil {
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctxTimeout, msg); err != nil {
		return fmt.Errorf("publish stock event: %w", err)
	}
	p.logger.Debug("Evento de estoque publicado.", map[string]interface{}{"event_id": event.EventID, "item_name": event.ItemName, "company_name": event.CompanyName})
	return nil
}

// Close descarrega mensagens pendentes.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(ctx context.Context, event domain.StockAdjustedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode stock event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(domain.ItemKey{ItemName: event.ItemName, CompanyName: event.CompanyName}.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("inventory.adjusted")},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(&msg.Headers))
	return msg, nil
}

// NopPublisher descarta eventos (KAFKA_BROKERS vazio).
type NopPublisher struct{}

func (NopPublisher) PublishStockAdjusted(context.Context, domain.StockAdjustedEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
