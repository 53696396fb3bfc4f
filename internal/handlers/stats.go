package handlers

//go:generate mockgen -source=stats.go -destination=stats_mock.go -package=handlers

import (
	"context"
	"errors"
	"time"

	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// StatsReader defines the reporting methods used by the stats submenu.
type StatsReader interface {
	AccountHistory(ctx context.Context, accountID int64, limit int) ([]models.TransactionDB, error)
	BranchHistory(ctx context.Context, branchID int64, limit int) ([]models.TransactionDB, error)
	BranchTransactionCount(ctx context.Context, branchID int64) (int64, error)
	TopAccounts(ctx context.Context, branchID *int64, limit int) ([]models.AccountActivity, error)
	Summary(ctx context.Context) ([]models.SummaryRow, error)
}

const timestampLayout = time.DateTime

// NewStatsHandler returns the "Transaction stats" submenu. It loops until "Back" is chosen.
func NewStatsHandler(svc StatsReader) Action {
	return func(ctx context.Context, c *Console) error {
		for {
			c.Println()
			c.Println("--- Transaction Stats Menu ---")
			c.Println("1. Show transactions for an account")
			c.Println("2. Show transactions for a branch")
			c.Println("3. Show transaction count for a branch")
			c.Println("4. Top users by transaction count (global)")
			c.Println("5. Top users by transaction count (branch)")
			c.Println("6. Transactions summary (by branch & type)")
			c.Println("7. Back")

			choice, err := c.ReadLine(ctx, "Choose an option: ")
			if err != nil {
				return err
			}

			switch choice {
			case "1":
				err = accountHistory(ctx, c, svc)
			case "2":
				err = branchHistory(ctx, c, svc)
			case "3":
				err = branchCount(ctx, c, svc)
			case "4":
				err = topAccounts(ctx, c, svc, false)
			case "5":
				err = topAccounts(ctx, c, svc, true)
			case "6":
				summary(ctx, c, svc)
			case "7":
				return nil
			default:
				c.Println("Invalid option.")
			}
			if err != nil {
				return err
			}
		}
	}
}

func accountHistory(ctx context.Context, c *Console, svc StatsReader) error {
	values, ok, err := readInts(ctx, c, "Account number: ")
	if !ok {
		return err
	}

	records, err := svc.AccountHistory(ctx, values[0], 0)
	if errors.Is(err, services.ErrNoData) {
		c.Println("No transactions for this account.")
		return nil
	}
	if err != nil {
		c.Println(describe(err, ""))
		return nil
	}

	for _, r := range records {
		c.Printf("%d | %s | %s | Amount: %d | Branch: %s | To_Acc: %s",
			r.TxnID, r.CreatedAt.Format(timestampLayout), r.Type, r.Amount,
			formatOptional(r.BranchID), formatOptional(r.CounterpartyAccountID))
	}
	return nil
}

func branchHistory(ctx context.Context, c *Console, svc StatsReader) error {
	values, ok, err := readInts(ctx, c, "Branch number: ")
	if !ok {
		return err
	}

	records, err := svc.BranchHistory(ctx, values[0], 0)
	if errors.Is(err, services.ErrNoData) {
		c.Println("No transactions for this branch.")
		return nil
	}
	if err != nil {
		c.Println(describe(err, ""))
		return nil
	}

	for _, r := range records {
		c.Printf("%d | %s | Acc: %d | %s | Amount: %d | To_Acc: %s",
			r.TxnID, r.CreatedAt.Format(timestampLayout), r.AccountID, r.Type, r.Amount,
			formatOptional(r.CounterpartyAccountID))
	}
	return nil
}

func branchCount(ctx context.Context, c *Console, svc StatsReader) error {
	values, ok, err := readInts(ctx, c, "Branch number: ")
	if !ok {
		return err
	}

	count, err := svc.BranchTransactionCount(ctx, values[0])
	if err != nil {
		c.Println(describe(err, ""))
		return nil
	}
	c.Printf("Branch %d transaction count: %d", values[0], count)
	return nil
}

func topAccounts(ctx context.Context, c *Console, svc StatsReader, byBranch bool) error {
	var branchID *int64
	if byBranch {
		values, ok, err := readInts(ctx, c, "Branch number: ")
		if !ok {
			return err
		}
		branchID = &values[0]
	}

	limit, err := c.ReadIntDefault(ctx, "Limit (default 5): ", services.DefaultTopLimit)
	if isStop(err) {
		return err
	}
	if err != nil {
		c.Println("Invalid input.")
		return nil
	}

	rows, err := svc.TopAccounts(ctx, branchID, int(limit))
	if errors.Is(err, services.ErrNoData) {
		c.Println("No transactions found.")
		return nil
	}
	if err != nil {
		c.Println(describe(err, ""))
		return nil
	}

	c.Println("Top users by number of transactions:")
	for _, r := range rows {
		c.Printf("%s (Acc %d) - %d transactions", r.Name, r.AccountID, r.Count)
	}
	return nil
}

func summary(ctx context.Context, c *Console, svc StatsReader) {
	rows, err := svc.Summary(ctx)
	if errors.Is(err, services.ErrNoData) {
		c.Println("No transactions to summarize.")
		return
	}
	if err != nil {
		c.Println(describe(err, ""))
		return
	}

	for _, r := range rows {
		c.Printf("Branch %s | Type: %s | Count: %d | Total Amount: %d",
			formatOptional(r.BranchID), r.Type, r.Count, r.Total)
	}
}
