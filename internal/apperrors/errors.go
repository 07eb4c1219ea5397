// Package apperrors declares the error kinds reported by the ledger and
// auth services, and maps storage driver errors onto them.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ledger errors
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrRateFetch            = errors.New("failed to fetch exchange rates")
	ErrConcurrencyConflict  = errors.New("concurrent update conflict")
	ErrStorage              = errors.New("storage error")
)

// Auth errors
var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)

// Postgres SQLSTATE codes inspected by Classify.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

var known = []error{
	ErrInvalidAmount,
	ErrUserNotFound,
	ErrUnsupportedCurrency,
	ErrInsufficientBalance,
	ErrInsufficientHoldings,
	ErrRateFetch,
	ErrConcurrencyConflict,
	ErrStorage,
	ErrUserAlreadyExists,
	ErrInvalidCredentials,
	ErrInvalidInput,
}

// IsKnown reports whether err already carries one of the declared kinds.
func IsKnown(err error) bool {
	for _, k := range known {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// PGErrorCode returns the SQLSTATE of a Postgres error, or "" if err is not one.
func PGErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsConflict reports whether err is a Postgres error that a retry of the
// whole transaction can resolve.
func IsConflict(err error) bool {
	switch PGErrorCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return errors.Is(err, ErrConcurrencyConflict)
}

// Classify maps err onto a declared kind. Declared kinds pass through,
// retryable Postgres errors become ErrConcurrencyConflict, unique violations
// become ErrUserAlreadyExists and anything else is wrapped in ErrStorage.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	if IsConflict(err) {
		return fmt.Errorf("%w: %w", ErrConcurrencyConflict, err)
	}
	if PGErrorCode(err) == codeUniqueViolation {
		return fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
