package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/finance-service/internal/models/events"
	"github.com/segmentio/kafka-go"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return NewWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: time.Second,
		MaxAttempts:  2,
	})
}

func NewWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes the event keyed by transaction id, so events for one
// transaction always land on the same partition.
func (p *Publisher) Publish(ctx context.Context, event events.TransactionCreated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.TransactionID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("transaction.created")},
		},
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
