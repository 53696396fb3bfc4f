package handlers

//go:generate mockgen -source=withdraw.go -destination=withdraw_mock.go -package=handlers

import (
	"context"

	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// Withdrawer defines the ledger method used by the withdraw action.
type Withdrawer interface {
	Withdraw(ctx context.Context, accountID int64, amount int64, pin string) (*models.Receipt, error)
}

// PinVerifier checks a PIN before a debit is submitted.
type PinVerifier interface {
	VerifyPin(ctx context.Context, accountID int64, raw string) bool
}

// NewWithdrawHandler returns the "Withdraw" action.
// The PIN is asked for only when the account exists and has a PIN set.
func NewWithdrawHandler(svc Withdrawer, accounts AccountGetter, pins PinVerifier) Action {
	return func(ctx context.Context, c *Console) error {
		values, ok, err := readInts(ctx, c, "Account number: ", "Withdraw amount: ")
		if !ok {
			return err
		}
		accountID, amount := values[0], values[1]
		if amount <= 0 {
			c.Println("Amount must be positive.")
			return nil
		}

		view, err := accounts.GetAccount(ctx, accountID)
		if err != nil {
			c.Println(describe(err, ""))
			return nil
		}

		pin, ok, err := readPin(ctx, c, pins, view.Account)
		if !ok {
			return err
		}

		receipt, err := svc.Withdraw(ctx, accountID, amount, pin)
		if err != nil {
			c.Println(describe(err, holderOf(err, view.Account.Name)))
			return nil
		}

		printMovement(c, receipt, "Withdrawal", amount)
		return nil
	}
}

// readPin asks for the PIN of account and verifies it. ok is false when the
// PIN is not set or does not match; the reason has been printed by then.
// The ledger checks the PIN again inside its own transaction.
func readPin(ctx context.Context, c *Console, pins PinVerifier, account models.AccountDB) (pin string, ok bool, err error) {
	if account.PinHash == nil {
		c.Println(describe(services.ErrPinNotSet, ""))
		return "", false, nil
	}

	pin, err = c.ReadLine(ctx, "Enter PIN: ")
	if err != nil {
		return "", false, err
	}

	if !pins.VerifyPin(ctx, account.AccountID, pin) {
		c.Println(describe(services.ErrIncorrectPin, holderOf(nil, account.Name)))
		return "", false, nil
	}
	return pin, true, nil
}
