package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrDuplicateSwap      = errors.New("swap request already exists")
	ErrIdempotencyKeyUsed = errors.New("idempotency key already used")
)

var (
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrSkillNotFound = fmt.Errorf("skill %w", ErrNotFound)
	ErrSwapNotFound  = fmt.Errorf("swap request %w", ErrNotFound)
)

// InvalidTransitionError carries the attempted source and target states.
type InvalidTransitionError struct {
	From SwapState
	To   SwapState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid is shorthand for building a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
