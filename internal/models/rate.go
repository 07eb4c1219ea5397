package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one row of a rate table: units of base currency per unit of Code.
type Rate struct {
	Code     string          `json:"code"`
	Currency string          `json:"currency"`
	Mid      decimal.Decimal `json:"mid"`
}

// RateTable is a snapshot of the rate feed.
type RateTable struct {
	Base          string    `json:"base"`
	Table         string    `json:"table,omitempty"`
	EffectiveDate string    `json:"effective_date,omitempty"`
	Rates         []Rate    `json:"rates"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Lookup returns the rate for code. Rates that are not strictly positive
// are reported as absent.
func (t *RateTable) Lookup(code string) (Rate, bool) {
	if t == nil {
		return Rate{}, false
	}
	code = NormalizeCurrency(code)
	for _, r := range t.Rates {
		if strings.EqualFold(r.Code, code) {
			if !r.Mid.IsPositive() {
				return Rate{}, false
			}
			return r, true
		}
	}
	return Rate{}, false
}
