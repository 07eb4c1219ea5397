package models

import "github.com/shopspring/decimal"

// Ledger event types published after commit.
const (
	EventFund = "fund"
	EventBuy  = "buy"
	EventSell = "sell"
)

// LedgerEvent is the message published for every committed ledger mutation.
type LedgerEvent struct {
	EventID   string          `json:"event_id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Value     decimal.Decimal `json:"value"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp int64           `json:"timestamp"` // Unix seconds
}
