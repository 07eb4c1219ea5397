package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=trade.go -destination=trade_mock.go -package=handlers

// Buyer defines the interface that the service must implement.
type Buyer interface {
	Buy(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error)
}

// Seller defines the interface that the service must implement.
type Seller interface {
	Sell(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error)
}

// TradeRequest represents the JSON body for buying or selling a currency.
// Any price or cost sent by the client is ignored.
// swagger:model TradeRequest
type TradeRequest struct {
	// Currency code
	// required: true
	// default: EUR
	Currency string `json:"currency"`

	// Quantity of the currency, a JSON number or numeric string
	// required: true
	// default: 10
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

type tradeFunc func(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error)

func newTradeHandler(trade tradeFunc, baseCurrency, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req TradeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		balance, err := trade(r.Context(), userID, req.Currency, req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageBalanceResponse{
			Message: message,
			Balance: models.Format(balance, baseCurrency),
		})
	}
}

// NewBuyHandler returns an HTTP handler that buys a currency at the live rate.
// @Summary Buy currency
// @Description Debits amount*rate of base currency and adds amount to the holding. The rate is fetched by the server.
// @Tags ledger
// @Accept json
// @Produce json
// @Param tradeRequest body handlers.TradeRequest true "Buy request"
// @Success 200 {object} handlers.MessageBalanceResponse "Updated balance"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, unsupported currency or insufficient balance"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent update conflict"
// @Failure 502 {object} handlers.ErrorResponse "Rate source unavailable"
// @Router /buy [post]
// @Security BearerAuth
func NewBuyHandler(svc Buyer, baseCurrency string) http.HandlerFunc {
	return newTradeHandler(svc.Buy, baseCurrency, "Currency bought successfully")
}

// NewSellHandler returns an HTTP handler that sells a currency at the live rate.
// @Summary Sell currency
// @Description Removes amount from the holding and credits amount*rate of base currency. The rate is fetched by the server.
// @Tags ledger
// @Accept json
// @Produce json
// @Param tradeRequest body handlers.TradeRequest true "Sell request"
// @Success 200 {object} handlers.MessageBalanceResponse "Updated balance"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, unsupported currency or insufficient holdings"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent update conflict"
// @Failure 502 {object} handlers.ErrorResponse "Rate source unavailable"
// @Router /sell [post]
// @Security BearerAuth
func NewSellHandler(svc Seller, baseCurrency string) http.HandlerFunc {
	return newTradeHandler(svc.Sell, baseCurrency, "Currency sold successfully")
}
