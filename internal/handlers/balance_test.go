package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
)

func TestGetBalanceHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		userID       uuid.UUID
		mockSetup    func(m *MockBalanceReader)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name:   "success",
			userID: userID,
			mockSetup: func(m *MockBalanceReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(dec("100"), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{"balance": "100.00", "currency": "PLN"},
		},
		{
			name:         "unauthorized",
			userID:       uuid.Nil,
			mockSetup:    func(m *MockBalanceReader) {},
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]any{"error": "Unauthorized"},
		},
		{
			name:   "user not found",
			userID: userID,
			mockSetup: func(m *MockBalanceReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(decimal.Zero, apperrors.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: map[string]any{"error": "user not found"},
		},
		{
			name:   "storage error",
			userID: userID,
			mockSetup: func(m *MockBalanceReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(decimal.Zero, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]any{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockBalanceReader(ctrl)
			tt.mockSetup(mockSvc)

			rr := httptest.NewRecorder()
			NewGetBalanceHandler(mockSvc, "PLN")(rr, newRequest(http.MethodGet, "/balance", "", tt.userID))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}
