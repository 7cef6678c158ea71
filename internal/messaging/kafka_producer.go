package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventOfferConfirmed = "offer.confirmed"

// ConfirmationEvent is published whenever the demo service records a confirmed offer.
type ConfirmationEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	OfferID      string    `json:"offerId"`
	SupplierName string    `json:"supplierName"`
	PricePerUnit *float64  `json:"pricePerUnit"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewConfirmationEvent(productID, productName, offerID, supplierName string, price *float64, now time.Time) *ConfirmationEvent {
	return &ConfirmationEvent{
		ID:           uuid.NewString(),
		Type:         EventOfferConfirmed,
		ProductID:    productID,
		ProductName:  productName,
		OfferID:      offerID,
		SupplierName: supplierName,
		PricePerUnit: price,
		Timestamp:    now.UTC(),
	}
}

type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, event *ConfirmationEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaProducer struct {
	writer messageWriter
}

func NewKafkaProducer(brokers []string, topic string) ConfirmationPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) PublishConfirmation(ctx context.Context, event *ConfirmationEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation event: %w", err)
	}

	// Keyed by product so confirmations of one product stay ordered.
	message := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: eventJSON,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write confirmation event to kafka: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// Noop drops events. It is used when no brokers are configured.
type Noop struct{}

func (Noop) PublishConfirmation(context.Context, *ConfirmationEvent) error { return nil }
func (Noop) Close() error                                                  { return nil }
