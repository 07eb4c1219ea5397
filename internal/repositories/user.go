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

// UserRepository reads and writes the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, balance, created_at, updated_at`

// GetByEmail returns the user with the given email, or nil if there is none.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.get(ctx, query, email)
}

// GetByID returns the user with the given id, or nil if there is none.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByIDForUpdate is GetByID taking a row lock held until the surrounding
// transaction ends. It must run inside WithinTx.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, arg)

	logQuery(query, []any{arg}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save inserts a new user with a zero balance.
func (r *UserRepository) Save(ctx context.Context, id uuid.UUID, email, passwordHash string) error {
	const query = `
		INSERT INTO users (id, email, password_hash, balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
	`

	res, err := executor(ctx, r.db).ExecContext(ctx, query, id, email, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// password hash left out of the log on purpose
	logQuery(query, []any{id, email}, rowsAffected, err)

	return err
}

// AddBalance adds delta (possibly negative) to the user's balance and
// returns the new balance.
func (r *UserRepository) AddBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &balance, query, id, delta)

	logQuery(query, []any{id, delta}, balance, err)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperrors.ErrUserNotFound
	}
	return balance, err
}
