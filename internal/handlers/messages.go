package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// holderOf returns the upper-cased holder carried by a ledger error, or fallback.
// A blank fallback yields services.DefaultHolder.
func holderOf(err error, fallback string) string {
	var ledgerErr *services.LedgerError
	if errors.As(err, &ledgerErr) && ledgerErr.Holder != "" {
		return ledgerErr.Holder
	}
	if fallback = strings.TrimSpace(fallback); fallback == "" {
		return services.DefaultHolder
	}
	return strings.ToUpper(fallback)
}

// describe turns a service error into the message shown to the user.
func describe(err error, holder string) string {
	prefix := ""
	if holder != "" {
		prefix = holder + ": "
	}

	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, services.ErrRecipientNotFound):
		return "Recipient account not found."
	case errors.Is(err, services.ErrDuplicateAccount):
		return "Account already exists. Try different."
	case errors.Is(err, services.ErrPinNotSet):
		return "PIN not set for this account."
	case errors.Is(err, services.ErrIncorrectPin):
		return prefix + "Incorrect PIN."
	case errors.Is(err, services.ErrInvalidAmount):
		return prefix + "Amount must be positive."
	case errors.Is(err, services.ErrInsufficientBalance):
		return prefix + "Insufficient account balance."
	case errors.Is(err, services.ErrBranchNotFound):
		return prefix + "Associated branch not found."
	case errors.Is(err, services.ErrInsufficientBranchCash):
		return prefix + "Branch has insufficient cash."
	case errors.Is(err, services.ErrNoData):
		return "No data."
	default:
		return "Operation failed. Please try again later."
	}
}

func formatOptional(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}
