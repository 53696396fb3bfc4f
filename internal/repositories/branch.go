package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// BranchReadRepository handles branch read operations
type BranchReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBranchReadRepository(db *sqlx.DB, txGetter TxGetter) *BranchReadRepository {
	return &BranchReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the branch with the given id, or nil when it does not exist.
// Inside a transaction the row is locked until commit.
func (r *BranchReadRepository) GetByID(ctx context.Context, branchID int64) (*models.BranchDB, error) {
	ex, locked := executor(ctx, r.db, r.txGetter)
	query := forUpdate(`
		SELECT branch_id, location, cash
		FROM branches
		WHERE branch_id = $1
	`, locked)

	var branch models.BranchDB
	err := sqlx.GetContext(ctx, ex, &branch, query, branchID)

	logQuery(ctx, query, []any{branchID}, branch, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// List returns all branches ordered by id.
func (r *BranchReadRepository) List(ctx context.Context) ([]models.BranchDB, error) {
	const query = `
		SELECT branch_id, location, cash
		FROM branches
		ORDER BY branch_id
	`

	ex, _ := executor(ctx, r.db, r.txGetter)

	var branches []models.BranchDB
	err := sqlx.SelectContext(ctx, ex, &branches, query)

	logQuery(ctx, query, nil, len(branches), err)

	return branches, err
}

// Count returns the number of branches.
func (r *BranchReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM branches`

	ex, _ := executor(ctx, r.db, r.txGetter)

	var count int64
	err := sqlx.GetContext(ctx, ex, &count, query)

	logQuery(ctx, query, nil, count, err)

	return count, err
}

// BranchWriteRepository handles branch write operations
type BranchWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBranchWriteRepository(db *sqlx.DB, txGetter TxGetter) *BranchWriteRepository {
	return &BranchWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new branch.
func (r *BranchWriteRepository) Save(ctx context.Context, branch models.BranchDB) error {
	const query = `
		INSERT INTO branches (branch_id, location, cash)
		VALUES ($1, $2, $3)
	`
	args := []any{branch.BranchID, branch.Location, branch.Cash}

	ex, _ := executor(ctx, r.db, r.txGetter)

	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, args, rowsAffected, err)

	return err
}

// AddCash adds delta (which may be negative) to the branch cash and returns the updated branch.
// Returns nil when the branch does not exist.
func (r *BranchWriteRepository) AddCash(ctx context.Context, branchID int64, delta int64) (*models.BranchDB, error) {
	const query = `
		UPDATE branches
		SET cash = cash + $1
		WHERE branch_id = $2
		RETURNING branch_id, location, cash
	`

	ex, _ := executor(ctx, r.db, r.txGetter)

	var branch models.BranchDB
	err := sqlx.GetContext(ctx, ex, &branch, query, delta, branchID)

	logQuery(ctx, query, []any{delta, branchID}, branch, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
