package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newID := uuid.New()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john@example.com", "secret").
					Return(newID, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]any{"message": "User registered successfully", "user_id": newID.String()},
		},
		{
			name: "user already exists",
			body: `{"email":"alice@example.com","password":"pass"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice@example.com", "pass").
					Return(uuid.Nil, fmt.Errorf("%w: duplicate key", apperrors.ErrUserAlreadyExists))
			},
			expectedCode: http.StatusConflict,
			expectedBody: map[string]any{"error": "email already registered"},
		},
		{
			name: "invalid input",
			body: `{"email":"nope","password":""}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "nope", "").
					Return(uuid.Nil, apperrors.ErrInvalidInput)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "invalid input"},
		},
		{
			name: "internal server error",
			body: `{"email":"bob@example.com","password":"pass"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "bob@example.com", "pass").
					Return(uuid.Nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]any{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			body:         "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			rr := httptest.NewRecorder()
			handler(rr, newRequest(http.MethodPost, "/register", tt.body, uuid.Nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
		})
	}
}
