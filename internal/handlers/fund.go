package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=fund.go -destination=fund_mock.go -package=handlers

// Funder defines the interface that the service must implement.
type Funder interface {
	Fund(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// FundRequest represents the JSON body for funding the account
// swagger:model FundRequest
type FundRequest struct {
	// Amount of base currency, a JSON number or numeric string
	// required: true
	// default: 100.00
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// NewFundHandler returns an HTTP handler that credits base currency.
// @Summary Fund account
// @Description Adds an amount of base currency to the balance of the authenticated user
// @Tags ledger
// @Accept json
// @Produce json
// @Param fundRequest body handlers.FundRequest true "Fund request"
// @Success 200 {object} handlers.MessageBalanceResponse "Updated balance"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent update conflict"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /fund [post]
// @Security BearerAuth
func NewFundHandler(svc Funder, baseCurrency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req FundRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		balance, err := svc.Fund(r.Context(), userID, req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageBalanceResponse{
			Message: "Account funded successfully",
			Balance: models.Format(balance, baseCurrency),
		})
	}
}
