package handlers

import (
	"errors"
	"testing"

	"github.com/sbilibin2017/atm-ledger/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		err    error
		holder string
		want   string
	}{
		{services.ErrAccountNotFound, "ALICE", "Account not found."},
		{services.ErrRecipientNotFound, "ALICE", "Recipient account not found."},
		{services.ErrDuplicateAccount, "", "Account already exists. Try different."},
		{services.ErrPinNotSet, "ALICE", "PIN not set for this account."},
		{services.ErrIncorrectPin, "ALICE", "ALICE: Incorrect PIN."},
		{services.ErrInvalidAmount, "ALICE", "ALICE: Amount must be positive."},
		{services.ErrInsufficientBalance, "ALICE", "ALICE: Insufficient account balance."},
		{services.ErrBranchNotFound, "ALICE", "ALICE: Associated branch not found."},
		{services.ErrInsufficientBranchCash, "ALICE", "ALICE: Branch has insufficient cash."},
		{services.ErrInsufficientBalance, "", "Insufficient account balance."},
		{errors.New("boom"), "ALICE", "Operation failed. Please try again later."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err, tt.holder))
	}
}

func TestHolderOf(t *testing.T) {
	err := &services.LedgerError{Op: "withdraw", Holder: "BOB", Err: services.ErrIncorrectPin}
	assert.Equal(t, "BOB", holderOf(err, "alice"))
	assert.Equal(t, "ALICE", holderOf(services.ErrIncorrectPin, "alice"))
	assert.Equal(t, "USER", holderOf(errors.New("x"), ""))
	assert.Equal(t, "USER", holderOf(&services.LedgerError{Op: "withdraw", Err: services.ErrIncorrectPin}, " "))
	assert.Equal(t, "USER: Incorrect PIN.", describe(services.ErrIncorrectPin, holderOf(services.ErrIncorrectPin, "")))
}

func TestFormatOptional(t *testing.T) {
	v := int64(1111)
	assert.Equal(t, "1111", formatOptional(&v))
	assert.Equal(t, "-", formatOptional(nil))
}
