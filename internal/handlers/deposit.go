package handlers

//go:generate mockgen -source=deposit.go -destination=deposit_mock.go -package=handlers

import (
	"context"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// Depositor defines the ledger method used by the deposit action.
type Depositor interface {
	Deposit(ctx context.Context, accountID int64, amount int64) (*models.Receipt, error)
}

// NewDepositHandler returns the "Deposit" action. Deposits do not ask for the PIN.
func NewDepositHandler(svc Depositor) Action {
	return func(ctx context.Context, c *Console) error {
		values, ok, err := readInts(ctx, c, "Account number: ", "Deposit amount: ")
		if !ok {
			return err
		}
		accountID, amount := values[0], values[1]
		if amount <= 0 {
			c.Println("Amount must be positive.")
			return nil
		}

		receipt, err := svc.Deposit(ctx, accountID, amount)
		if err != nil {
			c.Println(describe(err, holderOf(err, "")))
			return nil
		}

		printMovement(c, receipt, "Deposit", amount)
		return nil
	}
}

// printMovement prints the outcome of a deposit or withdrawal.
func printMovement(c *Console, receipt *models.Receipt, what string, amount int64) {
	c.Printf("%s: %s of %d successful. New balance in your account is %d.",
		strings.ToUpper(receipt.Account.Name), what, amount, receipt.Account.Balance)
	if receipt.Branch != nil {
		c.Printf("Branch: %s (Branch cash: %d)", receipt.Branch.Location, receipt.Branch.Cash)
	}
}
