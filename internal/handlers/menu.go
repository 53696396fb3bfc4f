package handlers

import (
	"context"
	"errors"

	"github.com/sbilibin2017/atm-ledger/internal/logger"
)

// MenuActions holds the actions behind the main menu entries.
type MenuActions struct {
	CreateAccount Action
	ShowAccount   Action
	Deposit       Action
	Withdraw      Action
	Transfer      Action
	ListBranches  Action
	Stats         Action
}

// Menu is the main ATM menu loop.
type Menu struct {
	console *Console
	actions MenuActions
}

// NewMenu creates a new Menu.
func NewMenu(console *Console, actions MenuActions) *Menu {
	return &Menu{console: console, actions: actions}
}

// Run shows the menu until the user exits, the input ends or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	c := m.console
	for {
		c.Println()
		c.Println("--- ATM Menu ---")
		c.Println("1. Create account")
		c.Println("2. Show account")
		c.Println("3. Deposit")
		c.Println("4. Withdraw")
		c.Println("5. Transfer")
		c.Println("6. List branches")
		c.Println("7. Transaction stats")
		c.Println("8. Exit")

		choice, err := c.ReadLine(ctx, "Choose an option: ")
		if err != nil {
			return m.stop(err)
		}

		var action Action
		switch choice {
		case "1":
			action = m.actions.CreateAccount
		case "2":
			action = m.actions.ShowAccount
		case "3":
			action = m.actions.Deposit
		case "4":
			action = m.actions.Withdraw
		case "5":
			action = m.actions.Transfer
		case "6":
			action = m.actions.ListBranches
		case "7":
			action = m.actions.Stats
		case "8":
			c.Println("Thank you")
			return nil
		default:
			c.Println("Invalid option.")
			continue
		}

		if err := action(ctx, c); err != nil {
			return m.stop(err)
		}
	}
}

func (m *Menu) stop(err error) error {
	if errors.Is(err, ErrInputFailed) {
		logger.Log.Errorw("menu stopped", "reason", err)
		m.console.Println("Input could not be read. Exiting.")
		return err
	}
	if isStop(err) {
		logger.Log.Infow("menu stopped", "reason", err)
		return nil
	}
	return err
}
