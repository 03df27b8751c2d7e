// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ledger errors.
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Transfer precondition errors.
	ErrSameAccount       = errors.New("source and target accounts are the same")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Sync errors.
	ErrSyncFailed = errors.New("guest data sync failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// ValidationError represents a user-input precondition failure. It is
// surfaced inline to the operation's caller and never triggers a remote
// resync.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps a precondition sentinel.
func NewValidationError(err error) error {
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RemoteError represents a failed call to the remote ledger backend. The
// engine never branches on Status; any remote failure uniformly triggers a
// resync to ground truth.
type RemoteError struct {
	Err    error
	Op     string
	Status int
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote %s failed with status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError wraps a transport failure for the given operation.
func NewRemoteError(op string, status int, err error) error {
	return &RemoteError{Op: op, Status: status, Err: err}
}
