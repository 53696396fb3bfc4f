package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountReadRepository(db *sqlx.DB, txGetter TxGetter) *AccountReadRepository {
	return &AccountReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the account with the given id, or nil when it does not exist.
// Inside a transaction the row is locked until commit.
func (r *AccountReadRepository) GetByID(ctx context.Context, accountID int64) (*models.AccountDB, error) {
	ex, locked := executor(ctx, r.db, r.txGetter)
	query := forUpdate(`
		SELECT account_id, name, address, balance, branch_id, pin_hash
		FROM accounts
		WHERE account_id = $1
	`, locked)

	var account models.AccountDB
	err := sqlx.GetContext(ctx, ex, &account, query, accountID)

	logQuery(ctx, query, []any{accountID}, account.AccountID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// AccountWriteRepository handles account write operations
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter TxGetter) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new account.
func (r *AccountWriteRepository) Save(ctx context.Context, account models.AccountDB) error {
	const query = `
		INSERT INTO accounts (account_id, name, address, balance, branch_id, pin_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	args := []any{account.AccountID, account.Name, account.Address, account.Balance, account.BranchID, account.PinHash}

	ex, _ := executor(ctx, r.db, r.txGetter)

	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// The PIN digest is never logged
	logQuery(ctx, query, args[:5], rowsAffected, err)

	return err
}

// AddBalance adds delta (which may be negative) to the account balance and returns the new balance.
func (r *AccountWriteRepository) AddBalance(ctx context.Context, accountID int64, delta int64) (int64, error) {
	const query = `
		UPDATE accounts
		SET balance = balance + $1
		WHERE account_id = $2
		RETURNING balance
	`

	ex, _ := executor(ctx, r.db, r.txGetter)

	var balance int64
	err := sqlx.GetContext(ctx, ex, &balance, query, delta, accountID)

	logQuery(ctx, query, []any{delta, accountID}, balance, err)

	return balance, err
}
