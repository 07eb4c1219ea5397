package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=balance.go -destination=balance_mock.go -package=handlers

// BalanceReader defines the interface that the service must implement.
type BalanceReader interface {
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// BalanceResponse represents a successful response with the user balance
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Balance in the base currency
	// default: 100.00
	Balance string `json:"balance"`

	// Base currency code
	// default: PLN
	Currency string `json:"currency"`
}

// NewGetBalanceHandler returns an HTTP handler for fetching the user balance.
// @Summary Get user balance
// @Description Returns the base-currency balance of the authenticated user
// @Tags ledger
// @Produce json
// @Success 200 {object} handlers.BalanceResponse "User balance"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /balance [get]
// @Security BearerAuth
func NewGetBalanceHandler(svc BalanceReader, baseCurrency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, BalanceResponse{
			Balance:  models.Format(balance, baseCurrency),
			Currency: baseCurrency,
		})
	}
}
