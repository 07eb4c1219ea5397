package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

// HoldingRepository reads and writes the holdings table.
type HoldingRepository struct {
	db *sqlx.DB
}

// NewHoldingRepository creates a new HoldingRepository.
func NewHoldingRepository(db *sqlx.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// GetForUpdate returns the locked holding row, or nil if the user holds
// none of the currency. It must run inside WithinTx.
func (r *HoldingRepository) GetForUpdate(ctx context.Context, userID uuid.UUID, currency string) (*models.Holding, error) {
	const query = `
		SELECT user_id, currency, amount, updated_at
		FROM holdings
		WHERE user_id = $1 AND currency = $2
		FOR UPDATE
	`

	var h models.Holding
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &h, query, userID, currency)

	logQuery(query, []any{userID, currency}, h.Amount, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Increment performs an UPSERT: creates the holding if absent, otherwise
// increases its amount. Returns the new amount.
func (r *HoldingRepository) Increment(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		INSERT INTO holdings (user_id, currency, amount, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, currency)
		DO UPDATE SET amount = holdings.amount + EXCLUDED.amount, updated_at = NOW()
		RETURNING amount
	`

	var total decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &total, query, userID, currency, amount)

	logQuery(query, []any{userID, currency, amount}, total, err)

	return total, err
}

// SetAmount overwrites the amount of an existing holding.
func (r *HoldingRepository) SetAmount(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) error {
	const query = `
		UPDATE holdings
		SET amount = $3, updated_at = NOW()
		WHERE user_id = $1 AND currency = $2
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, userID, currency, amount)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, currency, amount}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return apperrors.ErrInsufficientHoldings
	}
	return nil
}

// Delete removes the holding row.
func (r *HoldingRepository) Delete(ctx context.Context, userID uuid.UUID, currency string) error {
	const query = `DELETE FROM holdings WHERE user_id = $1 AND currency = $2`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, userID, currency)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, currency}, rowsAffected, err)

	return err
}

// ListByUserID returns the user's positive holdings ordered by currency.
func (r *HoldingRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Holding, error) {
	const query = `
		SELECT user_id, currency, amount, updated_at
		FROM holdings
		WHERE user_id = $1 AND amount > 0
		ORDER BY currency
	`

	holdings := []models.Holding{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &holdings, query, userID)

	logQuery(query, []any{userID}, len(holdings), err)

	if err != nil {
		return nil, err
	}
	return holdings, nil
}
