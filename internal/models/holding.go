package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding represents a user's position in one foreign currency.
// Rows exist only while Amount is positive.
type Holding struct {
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Owner of the position
	Currency  string          `json:"currency" db:"currency"`     // ISO currency code, upper-case
	Amount    decimal.Decimal `json:"amount" db:"amount"`         // Quantity held
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Last change
}
