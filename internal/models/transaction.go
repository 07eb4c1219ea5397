package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a committed trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// Transaction is an immutable record of a committed buy or sell.
type Transaction struct {
	ID        string          `json:"id" db:"id"`               // ULID, sorts by creation time
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`     // Owner
	Currency  string          `json:"currency" db:"currency"`   // Traded currency
	Amount    decimal.Decimal `json:"amount" db:"amount"`       // Quantity of Currency traded
	Type      TransactionType `json:"type" db:"type"`           // buy or sell
	Rate      decimal.Decimal `json:"rate" db:"rate"`           // Mid rate applied
	Value     decimal.Decimal `json:"value" db:"value"`         // Cost debited or proceeds credited, base currency
	Timestamp time.Time       `json:"timestamp" db:"timestamp"` // Commit time
}
