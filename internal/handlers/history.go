package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=history.go -destination=history_mock.go -package=handlers

// HistoryReader defines the interface that the service must implement.
type HistoryReader interface {
	History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

// TransactionItem represents one committed trade
// swagger:model TransactionItem
type TransactionItem struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
	Rate      string `json:"rate"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// HistoryResponse lists the user's trades, most recent first
// swagger:model HistoryResponse
type HistoryResponse struct {
	Transactions []TransactionItem `json:"transactions"`
}

// NewHistoryHandler returns an HTTP handler listing the user's trades.
// @Summary Transaction history
// @Description Returns every buy and sell of the authenticated user, most recent first, with the rate applied
// @Tags ledger
// @Produce json
// @Success 200 {object} handlers.HistoryResponse "Transactions"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /history [get]
// @Security BearerAuth
func NewHistoryHandler(svc HistoryReader, baseCurrency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		txns, err := svc.History(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := HistoryResponse{Transactions: make([]TransactionItem, 0, len(txns))}
		for _, t := range txns {
			resp.Transactions = append(resp.Transactions, TransactionItem{
				ID:        t.ID,
				Type:      string(t.Type),
				Currency:  t.Currency,
				Amount:    models.Format(t.Amount, t.Currency),
				Rate:      t.Rate.String(),
				Value:     models.Format(t.Value, baseCurrency),
				Timestamp: t.Timestamp.UTC().Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
