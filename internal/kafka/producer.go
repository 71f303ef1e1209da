package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"samad-backend/internal/config"
	"samad-backend/internal/logger"
	"samad-backend/internal/models"
)

// Publisher streams lifecycle events for downstream consumers (analytics,
// fulfilment). Publishing is fire-and-forget from the caller's point of
// view: a failed publish is logged, never surfaced to the buyer.
type Publisher interface {
	PublishTicketIssued(ticket *models.Ticket) error
	PublishMerchOrderPlaced(order *models.MerchOrder) error
	PublishPaymentVerified(kind, id, reference, status string) error
	Close() error
}

// PaymentVerifiedEvent is the payload on the payment-verified topic. Kind
// is "ticket" or "merch_order".
type PaymentVerifiedEvent struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type Producer struct {
	writer *kafka.Writer
	topics config.TopicConfig
	logger *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, topics: cfg.Topics, logger: log}
}

func (p *Producer) publish(topic, key string, payload interface{}) error {
	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.logger.Debug("KAFKA", fmt.Sprintf("Publishing to [%s]: %s", topic, string(msgBytes)))

	return p.writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
}

// PublishTicketIssued streams the freshly created ticket.
func (p *Producer) PublishTicketIssued(ticket *models.Ticket) error {
	return p.publish(p.topics.TicketIssued, ticket.ID, ticket)
}

// PublishMerchOrderPlaced streams the freshly placed merch order.
func (p *Producer) PublishMerchOrderPlaced(order *models.MerchOrder) error {
	return p.publish(p.topics.MerchOrderPlaced, order.ID, order)
}

// PublishPaymentVerified streams a payment status transition.
func (p *Producer) PublishPaymentVerified(kind, id, reference, status string) error {
	return p.publish(p.topics.PaymentVerified, id, PaymentVerifiedEvent{
		Kind:      kind,
		ID:        id,
		Reference: reference,
		Status:    status,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when Kafka is disabled, so callers never branch.
type NoopPublisher struct{}

func (NoopPublisher) PublishTicketIssued(*models.Ticket) error         { return nil }
func (NoopPublisher) PublishMerchOrderPlaced(*models.MerchOrder) error { return nil }
func (NoopPublisher) PublishPaymentVerified(_, _, _, _ string) error   { return nil }
func (NoopPublisher) Close() error                                     { return nil }
