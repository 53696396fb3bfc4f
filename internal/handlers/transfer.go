package handlers

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// Transferrer defines the ledger method used by the transfer action.
type Transferrer interface {
	Transfer(ctx context.Context, fromID, toID int64, amount int64, pin string) (*models.Receipt, error)
}

// NewTransferHandler returns the "Transfer" action. Both accounts must exist
// before the sender is asked for the PIN.
func NewTransferHandler(svc Transferrer, accounts AccountGetter, pins PinVerifier) Action {
	return func(ctx context.Context, c *Console) error {
		values, ok, err := readInts(ctx, c, "Your account number: ", "Recipient account number: ", "Transfer amount: ")
		if !ok {
			return err
		}
		fromID, toID, amount := values[0], values[1], values[2]
		if amount <= 0 {
			c.Println("Amount must be positive.")
			return nil
		}

		from, err := accounts.GetAccount(ctx, fromID)
		if errors.Is(err, services.ErrAccountNotFound) {
			c.Println("Sender account not found.")
			return nil
		}
		if err != nil {
			c.Println(describe(err, ""))
			return nil
		}

		if _, err := accounts.GetAccount(ctx, toID); err != nil {
			if errors.Is(err, services.ErrAccountNotFound) {
				c.Println("Recipient account not found.")
			} else {
				c.Println(describe(err, ""))
			}
			return nil
		}

		pin, ok, err := readPin(ctx, c, pins, from.Account)
		if !ok {
			return err
		}

		receipt, err := svc.Transfer(ctx, fromID, toID, amount, pin)
		if err != nil {
			c.Println(describe(err, holderOf(err, from.Account.Name)))
			return nil
		}

		c.Printf("%s: Transfer of %d to %s (Acc %d) successful. New balance in your account is %d.",
			strings.ToUpper(receipt.Account.Name), amount, receipt.Counterparty.Name, toID, receipt.Account.Balance)
		return nil
	}
}
