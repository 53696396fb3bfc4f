package handlers

//go:generate mockgen -source=show_account.go -destination=show_account_mock.go -package=handlers

import (
	"context"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// AccountGetter reads an account together with its branch.
type AccountGetter interface {
	GetAccount(ctx context.Context, accountID int64) (*models.AccountView, error)
}

// NewShowAccountHandler returns the "Show account" action.
func NewShowAccountHandler(svc AccountGetter) Action {
	return func(ctx context.Context, c *Console) error {
		accountID, err := c.ReadInt(ctx, "Enter account number: ")
		if isStop(err) {
			return err
		}
		if err != nil {
			c.Println("Invalid number.")
			return nil
		}

		view, err := svc.GetAccount(ctx, accountID)
		if err != nil {
			c.Println(describe(err, ""))
			return nil
		}

		account := view.Account
		c.Printf("%s: Account details", strings.ToUpper(account.Name))
		c.Printf("Account No: %d", account.AccountID)
		c.Printf("Name: %s", account.Name)
		c.Printf("Address: %s", account.Address)
		c.Printf("Balance: %d", account.Balance)
		switch {
		case view.Branch != nil:
			c.Printf("Branch: %s (Branch cash: %d)", view.Branch.Location, view.Branch.Cash)
		case account.HasBranch():
			c.Printf("Branch: %d (details not found)", *account.BranchID)
		}
		return nil
	}
}
