package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/middlewares"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: insufficient balance
	Error string `json:"error"`
}

// MessageBalanceResponse is returned by fund, buy and sell
// swagger:model MessageBalanceResponse
type MessageBalanceResponse struct {
	// Success message
	// default: Account funded successfully
	Message string `json:"message"`

	// Balance in the base currency after the operation
	// default: 100.00
	Balance string `json:"balance"`
}

const (
	msgInvalidBody  = "invalid request body"
	msgUnauthorized = "Unauthorized"
	msgInternal     = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps an error kind onto its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrUnsupportedCurrency),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrInsufficientHoldings),
		errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConcurrencyConflict),
		errors.Is(err, apperrors.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrRateFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with its mapped status. Storage and unknown errors
// are reported without their cause.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorw("internal server error", "error", err)
		writeErrorMessage(w, status, msgInternal)
		return
	}

	msg := err.Error()
	for _, kind := range []error{
		apperrors.ErrRateFetch,
		apperrors.ErrConcurrencyConflict,
		apperrors.ErrUserAlreadyExists,
	} {
		if errors.Is(err, kind) {
			msg = kind.Error()
			break
		}
	}
	writeErrorMessage(w, status, msg)
}

// decodeJSON decodes the request body into v, writing 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Log.Errorw("failed to decode request body", "error", err)
		writeErrorMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// requireUserID returns the authenticated user id, writing 401 if absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		logger.Log.Error("unauthorized request: no user in context")
		writeErrorMessage(w, http.StatusUnauthorized, msgUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}
