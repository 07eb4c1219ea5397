package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
)

// schema creates the ledger tables. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		balance NUMERIC(20,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		user_id UUID NOT NULL REFERENCES users(id),
		currency CHAR(3) NOT NULL,
		amount NUMERIC(24,4) NOT NULL CHECK (amount > 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, currency)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id CHAR(26) PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		currency CHAR(3) NOT NULL,
		amount NUMERIC(24,4) NOT NULL CHECK (amount > 0),
		type VARCHAR(4) NOT NULL CHECK (type IN ('buy', 'sell')),
		rate NUMERIC(24,12) NOT NULL CHECK (rate > 0),
		value NUMERIC(20,2) NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_timestamp_idx
		ON transactions (user_id, timestamp DESC, id DESC)`,
}

// Migrate applies the ledger schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Log.Infow("schema applied", "statements", len(schema))
	return nil
}
