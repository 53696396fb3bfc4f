package handlers

//go:generate mockgen -source=branches.go -destination=branches_mock.go -package=handlers

import (
	"context"
	"errors"

	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
)

// BranchLister lists branches.
type BranchLister interface {
	ListBranches(ctx context.Context) ([]models.BranchDB, error)
}

// NewListBranchesHandler returns the "List branches" action.
func NewListBranchesHandler(svc BranchLister) Action {
	return func(ctx context.Context, c *Console) error {
		branches, err := svc.ListBranches(ctx)
		if errors.Is(err, services.ErrNoData) {
			c.Println("No branches available.")
			return nil
		}
		if err != nil {
			c.Println(describe(err, ""))
			return nil
		}

		c.Println()
		c.Println("Branches:")
		for _, b := range branches {
			c.Printf("%d - %s (Cash: %d)", b.BranchID, b.Location, b.Cash)
		}
		return nil
	}
}
