package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=rates.go -destination=rates_mock.go -package=handlers

// RatesReader defines the interface that the service must implement.
type RatesReader interface {
	GetRates(ctx context.Context) (*models.RateTable, error)
}

// RateItem is the mid rate of one currency
// swagger:model RateItem
type RateItem struct {
	// Currency code
	// default: EUR
	Code string `json:"code"`

	// Currency name as published by the source
	// default: euro
	Currency string `json:"currency,omitempty"`

	// Units of base currency per unit of the currency
	// default: 4.3012
	Mid string `json:"mid"`
}

// RatesResponse is the current rate table
// swagger:model RatesResponse
type RatesResponse struct {
	Base          string     `json:"base"`
	Table         string     `json:"table,omitempty"`
	EffectiveDate string     `json:"effective_date,omitempty"`
	FetchedAt     string     `json:"fetched_at,omitempty"`
	Rates         []RateItem `json:"rates"`
}

// NewGetRatesHandler returns an HTTP handler for the current rate table.
// @Summary Get exchange rates
// @Description Returns the current mid rates against the base currency
// @Tags rates
// @Produce json
// @Success 200 {object} handlers.RatesResponse "Rate table"
// @Failure 502 {object} handlers.ErrorResponse "Rate source unavailable"
// @Router /rates [get]
func NewGetRatesHandler(svc RatesReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := svc.GetRates(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		resp := RatesResponse{
			Base:          table.Base,
			Table:         table.Table,
			EffectiveDate: table.EffectiveDate,
			Rates:         make([]RateItem, 0, len(table.Rates)),
		}
		if !table.FetchedAt.IsZero() {
			resp.FetchedAt = table.FetchedAt.UTC().Format(time.RFC3339)
		}
		for _, rate := range table.Rates {
			resp.Rates = append(resp.Rates, RateItem{
				Code:     rate.Code,
				Currency: rate.Currency,
				Mid:      rate.Mid.String(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
