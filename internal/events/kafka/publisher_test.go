package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/finance-service/internal/models/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisherPublish(t *testing.T) {
	w := &fakeWriter{}
	p := NewWithWriter(w)

	event := events.TransactionCreated{
		TransactionID: 42,
		Description:   "coffee",
		Amount:        decimal.RequireFromString("3.5"),
		Type:          "debit",
		OccurredAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "transaction.created", string(msg.Headers[0].Value))

	var decoded events.TransactionCreated
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.TransactionID, decoded.TransactionID)
	assert.Equal(t, event.Description, decoded.Description)
	assert.True(t, event.Amount.Equal(decoded.Amount))
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
}

func TestPublisherPublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := NewWithWriter(w)

	err := p.Publish(context.Background(), events.TransactionCreated{TransactionID: 1})
	assert.EqualError(t, err, "broker unavailable")
}

func TestPublisherClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewWithWriter(w).Close())
	assert.True(t, w.closed)
}
