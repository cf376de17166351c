package domain

import (
	"errors"
	"fmt"
)

// Domain error kinds (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict with current state")
	ErrInsufficientStock = errors.New("insufficient inventory")
)

// Error carries a user-facing message together with one of the kinds above,
// so handlers can pick the status with errors.Is and still show the message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Validation builds an ErrInvalidInput with a specific message.
func Validation(format string, args ...any) error {
	return newError(ErrInvalidInput, format, args...)
}

// NotFound builds an ErrNotFound with a specific message.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Conflict builds an ErrConflict with a specific message.
func Conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// Insufficient builds an ErrInsufficientStock with a specific message.
func Insufficient(format string, args ...any) error {
	return newError(ErrInsufficientStock, format, args...)
}

// Duplicate builds an ErrDuplicate with a specific message.
func Duplicate(format string, args ...any) error {
	return newError(ErrDuplicate, format, args...)
}

// ErrBatchCompleted is returned by every mutation on a completed batch.
var ErrBatchCompleted = &Error{Kind: ErrConflict, Msg: "Cannot modify a completed batch"}
