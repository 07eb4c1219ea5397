package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
	"github.com/sbilibin2017/gw-currency-ledger/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	tests := []struct {
		name         string
		email        string
		password     string
		existingUser *models.User
		readerErr    error
		writerErr    error
		expectRead   bool
		expectWrite  bool
		wantErr      error
	}{
		{
			name:        "successful registration",
			email:       " Alice@Example.com ",
			password:    "pass123",
			expectRead:  true,
			expectWrite: true,
		},
		{
			name:         "user already exists",
			email:        "bob@example.com",
			password:     "pass123",
			existingUser: &models.User{ID: uuid.New(), Email: "bob@example.com"},
			expectRead:   true,
			wantErr:      apperrors.ErrUserAlreadyExists,
		},
		{
			name:       "reader error",
			email:      "eve@example.com",
			password:   "pass123",
			readerErr:  errors.New("db error"),
			expectRead: true,
			wantErr:    apperrors.ErrStorage,
		},
		{
			name:        "concurrent registration hits unique index",
			email:       "carol@example.com",
			password:    "pass123",
			writerErr:   &pgconn.PgError{Code: "23505"},
			expectRead:  true,
			expectWrite: true,
			wantErr:     apperrors.ErrUserAlreadyExists,
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "pass123",
			wantErr:  apperrors.ErrInvalidInput,
		},
		{
			name:    "empty password",
			email:   "dan@example.com",
			wantErr: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := services.NormalizeEmail(tt.email)

			if tt.expectRead {
				mockReader.EXPECT().
					GetByEmail(gomock.Any(), email).
					Return(tt.existingUser, tt.readerErr)
			}
			if tt.expectWrite {
				mockWriter.EXPECT().
					Save(gomock.Any(), gomock.Any(), email, gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID, _ string, hash string) error {
						assert.NotEqual(t, uuid.Nil, id)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.password)))
						return tt.writerErr
					})
			}

			id, err := svc.Register(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, id)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userID := uuid.New()

	tests := []struct {
		name      string
		email     string
		user      *models.User
		readerErr error
		jwtErr    error
		wantErr   error
		expectJWT string
		loginPass string
	}{
		{
			name:      "successful login",
			email:     "alice@example.com",
			user:      &models.User{ID: userID, Email: "alice@example.com", PasswordHash: string(hashed)},
			expectJWT: "token123",
			loginPass: password,
		},
		{
			name:      "user does not exist",
			email:     "bob@example.com",
			wantErr:   apperrors.ErrInvalidCredentials,
			loginPass: password,
		},
		{
			name:      "invalid password",
			email:     "carol@example.com",
			user:      &models.User{ID: uuid.New(), Email: "carol@example.com", PasswordHash: string(hashed)},
			wantErr:   apperrors.ErrInvalidCredentials,
			loginPass: "wrongpass",
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			readerErr: errors.New("db error"),
			wantErr:   apperrors.ErrStorage,
			loginPass: password,
		},
		{
			name:      "JWT generation error",
			email:     "dan@example.com",
			user:      &models.User{ID: userID, Email: "dan@example.com", PasswordHash: string(hashed)},
			jwtErr:    errors.New("jwt error"),
			wantErr:   errors.New("jwt error"),
			loginPass: password,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == password {
				mockJWT.EXPECT().
					Generate(gomock.Any(), tt.user.ID).
					Return(tt.expectJWT, tt.jwtErr)
			}

			token, user, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				if tt.jwtErr != nil {
					assert.EqualError(t, err, tt.wantErr.Error())
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectJWT, token)
				assert.Equal(t, tt.user.ID, user.ID)
			}
		})
	}
}

func TestAuthService_LoginRejectsEmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewAuthService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl), services.NewMockJWTGenerator(ctrl))

	_, _, err := svc.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
