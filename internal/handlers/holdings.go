package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=holdings.go -destination=holdings_mock.go -package=handlers

// HoldingsReader defines the interface that the service must implement.
type HoldingsReader interface {
	Holdings(ctx context.Context, userID uuid.UUID) ([]models.Holding, error)
}

// HoldingItem represents one currency position
// swagger:model HoldingItem
type HoldingItem struct {
	// Currency code
	// default: EUR
	Currency string `json:"currency"`

	// Quantity held
	// default: 10.00
	Amount string `json:"amount"`
}

// HoldingsResponse lists the positions of the user
// swagger:model HoldingsResponse
type HoldingsResponse struct {
	Holdings []HoldingItem `json:"holdings"`
}

// NewHoldingsHandler returns an HTTP handler listing the user's positions.
// @Summary List holdings
// @Description Returns every currency the authenticated user holds, ordered by code
// @Tags ledger
// @Produce json
// @Success 200 {object} handlers.HoldingsResponse "Holdings"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /holdings [get]
// @Security BearerAuth
func NewHoldingsHandler(svc HoldingsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		holdings, err := svc.Holdings(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := HoldingsResponse{Holdings: make([]HoldingItem, 0, len(holdings))}
		for _, h := range holdings {
			resp.Holdings = append(resp.Holdings, HoldingItem{
				Currency: h.Currency,
				Amount:   models.Format(h.Amount, h.Currency),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
