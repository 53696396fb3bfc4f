package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// DefaultTopLimit is used by TopAccounts when no positive limit is given.
const DefaultTopLimit = 5

// ReportService answers read-only queries over branches, accounts and transaction records.
type ReportService struct {
	accounts AccountReader
	branches BranchReader
	txns     TransactionReader
	cache    ReportCache
}

// NewReportService creates a new ReportService. cache may be nil.
func NewReportService(accounts AccountReader, branches BranchReader, txns TransactionReader, cache ReportCache) *ReportService {
	return &ReportService{
		accounts: accounts,
		branches: branches,
		txns:     txns,
		cache:    cache,
	}
}

// ListBranches returns all branches ordered by id.
func (s *ReportService) ListBranches(ctx context.Context) ([]models.BranchDB, error) {
	branches, err := s.branches.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list branches", "error", err)
		return nil, storageFailure(err)
	}
	if len(branches) == 0 {
		return nil, ErrNoData
	}
	return branches, nil
}

// GetBranch returns one branch, or ErrBranchNotFound.
func (s *ReportService) GetBranch(ctx context.Context, branchID int64) (*models.BranchDB, error) {
	branch, err := s.branches.GetByID(ctx, branchID)
	if err != nil {
		logger.Log.Errorw("failed to get branch", "branch_id", branchID, "error", err)
		return nil, storageFailure(err)
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

// GetAccount returns an account with its branch. The branch is nil when the
// account is unassigned or its branch row is missing.
func (s *ReportService) GetAccount(ctx context.Context, accountID int64) (*models.AccountView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get account", "account_id", accountID, "error", err)
		return nil, storageFailure(err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	view := &models.AccountView{Account: *account}
	if account.HasBranch() {
		branch, err := s.GetBranch(ctx, *account.BranchID)
		if err != nil && !errors.Is(err, ErrBranchNotFound) {
			return nil, err
		}
		view.Branch = branch
	}
	return view, nil
}

// AccountHistory returns the records of an account, newest first. limit <= 0 means no limit.
func (s *ReportService) AccountHistory(ctx context.Context, accountID int64, limit int) ([]models.TransactionDB, error) {
	records, err := s.txns.ListByAccount(ctx, accountID, limit)
	if err != nil {
		logger.Log.Errorw("failed to list account transactions", "account_id", accountID, "error", err)
		return nil, storageFailure(err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return records, nil
}

// BranchHistory returns the records of a branch, newest first. limit <= 0 means no limit.
func (s *ReportService) BranchHistory(ctx context.Context, branchID int64, limit int) ([]models.TransactionDB, error) {
	records, err := s.txns.ListByBranch(ctx, branchID, limit)
	if err != nil {
		logger.Log.Errorw("failed to list branch transactions", "branch_id", branchID, "error", err)
		return nil, storageFailure(err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return records, nil
}

// BranchTransactionCount returns the number of records of a branch. Zero is a valid count.
func (s *ReportService) BranchTransactionCount(ctx context.Context, branchID int64) (int64, error) {
	count, err := cached(ctx, s.cache, fmt.Sprintf("count:%d", branchID), func() (int64, error) {
		return s.txns.CountByBranch(ctx, branchID)
	})
	if err != nil {
		logger.Log.Errorw("failed to count branch transactions", "branch_id", branchID, "error", err)
		return 0, storageFailure(err)
	}
	return count, nil
}

// TopAccounts ranks accounts by record count, within branchID when it is not nil.
// Equal counts are ordered by account id.
func (s *ReportService) TopAccounts(ctx context.Context, branchID *int64, limit int) ([]models.AccountActivity, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	scope := "all"
	if branchID != nil {
		scope = fmt.Sprintf("%d", *branchID)
	}

	rows, err := cached(ctx, s.cache, fmt.Sprintf("top:%s:%d", scope, limit), func() ([]models.AccountActivity, error) {
		return s.txns.TopAccounts(ctx, branchID, limit)
	})
	if err != nil {
		logger.Log.Errorw("failed to rank accounts", "branch_id", branchID, "error", err)
		return nil, storageFailure(err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// Summary aggregates count and total amount per (branch, type).
func (s *ReportService) Summary(ctx context.Context) ([]models.SummaryRow, error) {
	rows, err := cached(ctx, s.cache, "summary", func() ([]models.SummaryRow, error) {
		return s.txns.Summary(ctx)
	})
	if err != nil {
		logger.Log.Errorw("failed to summarize transactions", "error", err)
		return nil, storageFailure(err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// cached serves key from cache when possible and stores freshly loaded values.
// Cache failures fall back to load.
func cached[T any](ctx context.Context, cache ReportCache, key string, load func() (T, error)) (T, error) {
	if cache == nil {
		return load()
	}

	var value T
	ok, err := cache.Get(ctx, key, &value)
	if err != nil {
		logger.Log.Warnw("report cache read failed", "key", key, "error", err)
	}
	if ok {
		return value, nil
	}

	value, err = load()
	if err != nil {
		return value, err
	}

	if err := cache.Set(ctx, key, value); err != nil {
		logger.Log.Warnw("report cache write failed", "key", key, "error", err)
	}
	return value, nil
}
