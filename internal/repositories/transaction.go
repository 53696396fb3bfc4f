package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// TransactionWriteRepository appends transaction records
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter TxGetter) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save appends a record and returns its generated id.
func (r *TransactionWriteRepository) Save(ctx context.Context, rec models.TransactionDB) (int64, error) {
	const query = `
		INSERT INTO transactions (created_at, account_id, branch_id, type, amount, counterparty_account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING txn_id
	`
	args := []any{rec.CreatedAt, rec.AccountID, rec.BranchID, rec.Type, rec.Amount, rec.CounterpartyAccountID}

	ex, _ := executor(ctx, r.db, r.txGetter)

	var txnID int64
	err := sqlx.GetContext(ctx, ex, &txnID, query, args...)

	logQuery(ctx, query, args, txnID, err)

	return txnID, err
}

// TransactionReadRepository answers history and aggregate queries
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// limitArg maps a non-positive limit to NULL, which Postgres treats as no limit.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// ListByAccount returns the records of an account, newest first.
func (r *TransactionReadRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.TransactionDB, error) {
	const query = `
		SELECT txn_id, created_at, account_id, branch_id, type, amount, counterparty_account_id
		FROM transactions
		WHERE account_id = $1
		ORDER BY txn_id DESC
		LIMIT $2
	`
	args := []any{accountID, limitArg(limit)}

	var records []models.TransactionDB
	err := r.db.SelectContext(ctx, &records, query, args...)

	logQuery(ctx, query, args, len(records), err)

	return records, err
}

// ListByBranch returns the records of a branch, newest first.
func (r *TransactionReadRepository) ListByBranch(ctx context.Context, branchID int64, limit int) ([]models.TransactionDB, error) {
	const query = `
		SELECT txn_id, created_at, account_id, branch_id, type, amount, counterparty_account_id
		FROM transactions
		WHERE branch_id = $1
		ORDER BY txn_id DESC
		LIMIT $2
	`
	args := []any{branchID, limitArg(limit)}

	var records []models.TransactionDB
	err := r.db.SelectContext(ctx, &records, query, args...)

	logQuery(ctx, query, args, len(records), err)

	return records, err
}

// CountByBranch returns the number of records of a branch.
func (r *TransactionReadRepository) CountByBranch(ctx context.Context, branchID int64) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM transactions
		WHERE branch_id = $1
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, branchID)

	logQuery(ctx, query, []any{branchID}, count, err)

	return count, err
}

// TopAccounts ranks accounts by record count, optionally within one branch.
// Equal counts are ordered by account id.
func (r *TransactionReadRepository) TopAccounts(ctx context.Context, branchID *int64, limit int) ([]models.AccountActivity, error) {
	const query = `
		SELECT t.account_id, COALESCE(a.name, 'Unknown') AS name, COUNT(*) AS cnt
		FROM transactions t
		LEFT JOIN accounts a ON a.account_id = t.account_id
		WHERE ($1::BIGINT IS NULL OR t.branch_id = $1)
		GROUP BY t.account_id, a.name
		ORDER BY cnt DESC, t.account_id ASC
		LIMIT $2
	`
	args := []any{branchID, limitArg(limit)}

	var rows []models.AccountActivity
	err := r.db.SelectContext(ctx, &rows, query, args...)

	logQuery(ctx, query, args, len(rows), err)

	return rows, err
}

// Summary aggregates records by branch and type. Records without a branch come first.
func (r *TransactionReadRepository) Summary(ctx context.Context) ([]models.SummaryRow, error) {
	const query = `
		SELECT branch_id, type, COUNT(*) AS cnt, SUM(amount)::BIGINT AS total
		FROM transactions
		GROUP BY branch_id, type
		ORDER BY branch_id NULLS FIRST, type
	`

	var rows []models.SummaryRow
	err := r.db.SelectContext(ctx, &rows, query)

	logQuery(ctx, query, nil, len(rows), err)

	return rows, err
}
