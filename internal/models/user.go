package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database
type User struct {
	ID           uuid.UUID       `json:"id" db:"id"`                 // Primary key
	Email        string          `json:"email" db:"email"`           // Unique, lower-cased email
	PasswordHash string          `json:"-" db:"password_hash"`       // bcrypt hash
	Balance      decimal.Decimal `json:"balance" db:"balance"`       // Balance in base currency
	CreatedAt    time.Time       `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"` // Last update timestamp
}
