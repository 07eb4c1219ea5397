package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)
	user := &models.User{ID: uuid.New(), Email: "john@example.com", Balance: dec("12.5")}

	tests := []struct {
		name         string
		body         string
		mockSetup    func()
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"pass123"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "pass123").
					Return("JWT_TOKEN", user, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{"token": "JWT_TOKEN", "user_id": user.ID.String(), "balance": "12.50"},
		},
		{
			name:         "invalid JSON",
			body:         "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "invalid request body"},
		},
		{
			name: "wrong credentials",
			body: `{"email":"john@example.com","password":"wrong"}`,
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrong").
					Return("", nil, apperrors.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]any{"error": "invalid email or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			handler := NewLoginHandler(mockSvc, "PLN")

			rr := httptest.NewRecorder()
			handler(rr, newRequest(http.MethodPost, "/login", tt.body, uuid.Nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
		})
	}
}
