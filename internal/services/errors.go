package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds
var (
	ErrNotFound          = errors.New("not found")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrStorageFailure    = errors.New("storage failure")

	// ErrNoData is returned by reports that found nothing to show.
	ErrNoData = errors.New("no data")
)

// Specific errors, each wrapping its kind
var (
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrRecipientNotFound = fmt.Errorf("recipient account %w", ErrNotFound)
	ErrBranchNotFound    = fmt.Errorf("branch %w", ErrNotFound)

	ErrPinNotSet    = fmt.Errorf("%w: pin not set for this account", ErrAuthFailed)
	ErrIncorrectPin = fmt.Errorf("%w: incorrect pin", ErrAuthFailed)

	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	ErrInvalidPin    = fmt.Errorf("%w: pin must be 4 digits", ErrInvalidInput)
	ErrPinMismatch   = fmt.Errorf("%w: pins do not match", ErrInvalidInput)

	ErrInsufficientBalance    = fmt.Errorf("%w: insufficient account balance", ErrInsufficientFunds)
	ErrInsufficientBranchCash = fmt.Errorf("%w: branch has insufficient cash", ErrInsufficientFunds)
)

var errorKinds = []error{
	ErrNotFound,
	ErrAuthFailed,
	ErrInvalidInput,
	ErrDuplicateAccount,
	ErrInsufficientFunds,
	ErrStorageFailure,
	ErrNoData,
}

// storageFailure wraps err as ErrStorageFailure unless it already carries a kind.
func storageFailure(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

// DefaultHolder labels messages for an account whose holder name is blank.
const DefaultHolder = "USER"

// holderName returns the upper-cased holder name, or DefaultHolder when name is blank.
func holderName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultHolder
	}
	return strings.ToUpper(name)
}

// LedgerError describes a rejected or failed ledger operation.
type LedgerError struct {
	Op        string // Operation name, e.g. "withdraw"
	AccountID int64  // Account the operation was started for
	Holder    string // Upper-cased holder name, empty when the account was not found
	Amount    int64  // Requested amount
	Err       error  // Specific error, unwraps to its kind
}

func (e *LedgerError) Error() string {
	if e.Holder != "" {
		return fmt.Sprintf("%s: %s", e.Holder, e.Err)
	}
	return e.Err.Error()
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
