package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
)

var holdingRowColumns = []string{"user_id", "currency", "amount", "updated_at"}

func TestHoldingRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHoldingRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("existing holding", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
			WithArgs(userID, "EUR").
			WillReturnRows(sqlmock.NewRows(holdingRowColumns).AddRow(userID.String(), "EUR", "10.0000", time.Now()))

		h, err := repo.GetForUpdate(ctx, userID, "EUR")
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Equal(t, "EUR", h.Currency)
		assert.True(t, h.Amount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("absent holding", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
			WithArgs(userID, "USD").
			WillReturnError(sql.ErrNoRows)

		h, err := repo.GetForUpdate(ctx, userID, "USD")
		assert.NoError(t, err)
		assert.Nil(t, h)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_Increment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHoldingRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id, currency)")).
		WithArgs(userID, "EUR", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("15.0000"))

	total, err := repo.Increment(context.Background(), userID, "EUR", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(15)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_SetAmount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHoldingRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE holdings")).
		WithArgs(userID, "EUR", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetAmount(ctx, userID, "EUR", decimal.NewFromInt(3)))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE holdings")).
		WithArgs(userID, "GBP", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetAmount(ctx, userID, "GBP", decimal.NewFromInt(3)), apperrors.ErrInsufficientHoldings)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHoldingRepository(db)
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM holdings")).
		WithArgs(userID, "EUR").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), userID, "EUR"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldingRepository_ListByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHoldingRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	t.Run("positions ordered by currency", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND amount > 0")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(holdingRowColumns).
				AddRow(userID.String(), "EUR", "10", now).
				AddRow(userID.String(), "USD", "2.5", now))

		holdings, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, holdings, 2)
		assert.Equal(t, "EUR", holdings[0].Currency)
		assert.True(t, holdings[1].Amount.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("empty list for unknown user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM holdings")).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(holdingRowColumns))

		holdings, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, holdings)
		assert.Empty(t, holdings)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
