package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionCreated struct {
	TransactionID int64           `json:"transaction_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
