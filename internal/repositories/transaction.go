package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

// TransactionRepository appends to and reads the transactions log.
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Save appends a transaction record.
func (r *TransactionRepository) Save(ctx context.Context, txn *models.Transaction) error {
	const query = `
		INSERT INTO transactions (id, user_id, currency, amount, type, rate, value, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	args := []any{txn.ID, txn.UserID, txn.Currency, txn.Amount, string(txn.Type), txn.Rate, txn.Value, txn.Timestamp}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	return err
}

// ListByUserID returns the user's transactions, most recent first.
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const query = `
		SELECT id, user_id, currency, amount, type, rate, value, timestamp
		FROM transactions
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
	`

	txns := []models.Transaction{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txns, query, userID)

	logQuery(query, []any{userID}, len(txns), err)

	if err != nil {
		return nil, err
	}
	return txns, nil
}
