package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"deskhive/internal/shared/config"
	"deskhive/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MessageType identifies the email template the mailer should render
type MessageType string

const (
	TypeBookingConfirmed MessageType = "booking-confirmed"
	TypeRefundApproved   MessageType = "refund-approved"
)

// Message is the event published for the mailer service
type Message struct {
	Type       MessageType `json:"type"`
	UserID     string      `json:"user_id"`
	BookingRef string      `json:"booking_ref"`
	Amount     string      `json:"amount,omitempty"`
	SentAt     time.Time   `json:"sent_at"`
}

// Producer publishes notification events. Delivery is fire and forget:
// a lost email never fails a booking or a refund.
type Producer interface {
	BookingConfirmed(ctx context.Context, userID uuid.UUID, bookingRef string)
	RefundApproved(ctx context.Context, userID uuid.UUID, bookingRef string, amount decimal.Decimal)
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewProducer creates a Kafka producer, or a noop one when Kafka is disabled
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (Producer, error) {
	if !cfg.Enabled {
		return &noopProducer{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.Topic,
		logger:   log,
	}, nil
}

func (p *kafkaProducer) BookingConfirmed(ctx context.Context, userID uuid.UUID, bookingRef string) {
	p.publish(ctx, Message{
		Type:       TypeBookingConfirmed,
		UserID:     userID.String(),
		BookingRef: bookingRef,
	})
}

func (p *kafkaProducer) RefundApproved(ctx context.Context, userID uuid.UUID, bookingRef string, amount decimal.Decimal) {
	p.publish(ctx, Message{
		Type:       TypeRefundApproved,
		UserID:     userID.String(),
		BookingRef: bookingRef,
		Amount:     amount.StringFixed(2),
	})
}

func (p *kafkaProducer) publish(ctx context.Context, msg Message) {
	msg.SentAt = time.Now().UTC()

	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.ErrorWithContext(ctx, "failed to marshal notification", err, map[string]interface{}{
			"type": string(msg.Type),
		})
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.UserID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		p.logger.ErrorWithContext(ctx, "failed to publish notification", err, map[string]interface{}{
			"type":        string(msg.Type),
			"booking_ref": msg.BookingRef,
		})
	}
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

type noopProducer struct{}

func (*noopProducer) BookingConfirmed(context.Context, uuid.UUID, string) {}

func (*noopProducer) RefundApproved(context.Context, uuid.UUID, string, decimal.Decimal) {}

func (*noopProducer) Close() error { return nil }
