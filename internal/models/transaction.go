package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
)

// Transaction represents a single ledger line item
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewTransaction returns a transaction carrying the column defaults, so a
// partial JSON body decoded on top of it keeps them for absent fields.
func NewTransaction() *Transaction {
	return &Transaction{
		Description: "",
		Amount:      decimal.Zero,
		Type:        TypeDebit,
	}
}
