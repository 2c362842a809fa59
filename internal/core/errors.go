package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNegativeGoal     = errors.New("goal cannot be negative")
	ErrNotFound         = errors.New("transaction not found")
)

// ValidationError rejects a single requested mutation. No state is changed.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceParseError reports a stored ledger document that could not be
// decoded. Loading recovers from it by keeping the default ledger.
type PersistenceParseError struct {
	Key string
	Err error
}

func (e *PersistenceParseError) Error() string {
	return fmt.Sprintf("parse stored ledger %q: %v", e.Key, e.Err)
}

func (e *PersistenceParseError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
