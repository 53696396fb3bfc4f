package handlers

//go:generate mockgen -source=create_account.go -destination=create_account_mock.go -package=handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// AccountCreator defines the ledger method used to open accounts.
type AccountCreator interface {
	CreateAccount(ctx context.Context, req services.CreateAccountRequest) (*models.Receipt, error)
}

// PinSetter validates a new PIN and returns its digest.
type PinSetter interface {
	SetPin(raw, confirm string) (string, error)
}

// NewCreateAccountHandler returns the "Create account" action.
// The account number is checked before the PIN is asked for.
func NewCreateAccountHandler(svc AccountCreator, accounts AccountGetter, pins PinSetter) Action {
	return func(ctx context.Context, c *Console) error {
		name, err := c.ReadLine(ctx, "Enter the account holder name: ")
		if err != nil {
			return err
		}
		address, err := c.ReadLine(ctx, "Enter location: ")
		if err != nil {
			return err
		}

		var deposit int64
		for {
			deposit, err = c.ReadInt(ctx, "Initial deposit amount: ")
			if isStop(err) {
				return err
			}
			if err != nil {
				c.Println("Enter a valid amount.")
				continue
			}
			if deposit < 0 {
				c.Println("Amount cannot be negative.")
				continue
			}
			break
		}

		var accountID int64
		for {
			accountID, err = c.ReadInt(ctx, "Generate account number: ")
			if isStop(err) {
				return err
			}
			if err != nil {
				c.Println("Enter a valid number.")
				continue
			}

			_, err = accounts.GetAccount(ctx, accountID)
			if err == nil {
				c.Println("Account already exists. Try different.")
				continue
			}
			if !errors.Is(err, services.ErrAccountNotFound) {
				logger.Log.Errorw("failed to check account number", "account_id", accountID, "error", err)
				c.Println(describe(err, ""))
				return nil
			}
			break
		}

		pinHash, err := readNewPin(ctx, c, pins)
		if err != nil {
			return err
		}

		receipt, err := svc.CreateAccount(ctx, services.CreateAccountRequest{
			AccountID:      accountID,
			Name:           name,
			Address:        address,
			InitialDeposit: deposit,
			PinHash:        pinHash,
		})
		if err != nil {
			c.Println(describe(err, holderOf(err, name)))
			return nil
		}

		holder := strings.ToUpper(name)
		if receipt.Branch != nil {
			c.Printf("%s: Account %d created and assigned to %s.", holder, accountID, receipt.Branch.Location)
		} else {
			c.Printf("%s: Account %d created.", holder, accountID)
		}
		return nil
	}
}

// readNewPin prompts until a valid, confirmed PIN is entered.
func readNewPin(ctx context.Context, c *Console, pins PinSetter) (string, error) {
	for {
		raw, err := c.ReadLine(ctx, "Set 4-digit PIN: ")
		if err != nil {
			return "", err
		}
		if _, err := pins.SetPin(raw, raw); errors.Is(err, services.ErrInvalidPin) {
			c.Println("PIN must be 4 digits.")
			continue
		}

		confirm, err := c.ReadLine(ctx, "Confirm PIN: ")
		if err != nil {
			return "", err
		}
		digest, err := pins.SetPin(raw, confirm)
		switch {
		case errors.Is(err, services.ErrPinMismatch):
			c.Println("PINs do not match. Try again.")
		case err != nil:
			c.Println("PIN must be 4 digits.")
		default:
			return digest, nil
		}
	}
}
