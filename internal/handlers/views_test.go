package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

func TestHoldingsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	mockSvc := NewMockHoldingsReader(ctrl)
	handler := NewHoldingsHandler(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().Holdings(gomock.Any(), userID).Return([]models.Holding{
			{UserID: userID, Currency: "EUR", Amount: dec("10")},
			{UserID: userID, Currency: "JPY", Amount: dec("1500")},
		}, nil)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodGet, "/holdings", "", userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"holdings":[{"currency":"EUR","amount":"10.00"},{"currency":"JPY","amount":"1500"}]}`, rr.Body.String())
	})

	t.Run("empty", func(t *testing.T) {
		mockSvc.EXPECT().Holdings(gomock.Any(), userID).Return([]models.Holding{}, nil)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodGet, "/holdings", "", userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"holdings":[]}`, rr.Body.String())
	})

	t.Run("storage error", func(t *testing.T) {
		mockSvc.EXPECT().Holdings(gomock.Any(), userID).Return(nil, apperrors.ErrStorage)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodGet, "/holdings", "", userID))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHistoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	ts := time.Date(2024, 10, 8, 12, 30, 0, 0, time.UTC)
	mockSvc := NewMockHistoryReader(ctrl)
	mockSvc.EXPECT().History(gomock.Any(), userID).Return([]models.Transaction{
		{
			ID:        "01J9M4Z6QK3V8X2N5B7C9D1E2F",
			UserID:    userID,
			Currency:  "EUR",
			Amount:    dec("10"),
			Type:      models.TransactionSell,
			Rate:      dec("4.3012"),
			Value:     dec("43.01"),
			Timestamp: ts,
		},
	}, nil)

	rr := httptest.NewRecorder()
	NewHistoryHandler(mockSvc, "PLN")(rr, newRequest(http.MethodGet, "/history", "", userID))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"transactions":[{
		"id":"01J9M4Z6QK3V8X2N5B7C9D1E2F",
		"type":"sell",
		"currency":"EUR",
		"amount":"10.00",
		"rate":"4.3012",
		"value":"43.01",
		"timestamp":"2024-10-08T12:30:00Z"
	}]}`, rr.Body.String())
}

func TestGetRatesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRatesReader(ctrl)
	handler := NewGetRatesHandler(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().GetRates(gomock.Any()).Return(&models.RateTable{
			Base:          "PLN",
			Table:         "A",
			EffectiveDate: "2024-10-08",
			Rates: []models.Rate{
				{Code: "EUR", Currency: "euro", Mid: dec("4.3012")},
			},
		}, nil)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodGet, "/rates", "", uuid.Nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"base":"PLN","table":"A","effective_date":"2024-10-08","rates":[{"code":"EUR","currency":"euro","mid":"4.3012"}]}`, rr.Body.String())
	})

	t.Run("source down", func(t *testing.T) {
		mockSvc.EXPECT().GetRates(gomock.Any()).Return(nil, apperrors.ErrRateFetch)

		rr := httptest.NewRecorder()
		handler(rr, newRequest(http.MethodGet, "/rates", "", uuid.Nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.JSONEq(t, `{"error":"failed to fetch exchange rates"}`, rr.Body.String())
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{apperrors.ErrUnsupportedCurrency, http.StatusBadRequest},
		{apperrors.ErrInsufficientBalance, http.StatusBadRequest},
		{apperrors.ErrInsufficientHoldings, http.StatusBadRequest},
		{apperrors.ErrInvalidInput, http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrConcurrencyConflict, http.StatusConflict},
		{apperrors.ErrUserAlreadyExists, http.StatusConflict},
		{apperrors.ErrRateFetch, http.StatusBadGateway},
		{apperrors.ErrStorage, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
