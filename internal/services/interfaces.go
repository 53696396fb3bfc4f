package services

//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=services

import (
	"context"

	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// AccountReader defines account lookups.
type AccountReader interface {
	GetByID(ctx context.Context, accountID int64) (*models.AccountDB, error) // Returns nil when the account does not exist
}

// AccountWriter defines account writes.
type AccountWriter interface {
	Save(ctx context.Context, account models.AccountDB) error                      // Inserts a new account
	AddBalance(ctx context.Context, accountID int64, delta int64) (int64, error) // Returns the new balance
}

// BranchReader defines branch lookups.
type BranchReader interface {
	GetByID(ctx context.Context, branchID int64) (*models.BranchDB, error) // Returns nil when the branch does not exist
	List(ctx context.Context) ([]models.BranchDB, error)                   // Returns all branches ordered by id
}

// BranchWriter defines branch cash updates.
type BranchWriter interface {
	AddCash(ctx context.Context, branchID int64, delta int64) (*models.BranchDB, error) // Returns the updated branch or nil
}

// TransactionWriter appends transaction records.
type TransactionWriter interface {
	Save(ctx context.Context, rec models.TransactionDB) (int64, error) // Returns the generated record id
}

// TransactionReader answers history and aggregate queries.
type TransactionReader interface {
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]models.TransactionDB, error)
	ListByBranch(ctx context.Context, branchID int64, limit int) ([]models.TransactionDB, error)
	CountByBranch(ctx context.Context, branchID int64) (int64, error)
	TopAccounts(ctx context.Context, branchID *int64, limit int) ([]models.AccountActivity, error)
	Summary(ctx context.Context) ([]models.SummaryRow, error)
}

// PinChecker checks a raw PIN against an account.
type PinChecker interface {
	Check(account *models.AccountDB, raw string) error
}

// UnitOfWork runs fn atomically.
type UnitOfWork interface {
	Do(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

// ReportCache caches report results.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error) // Reports false on a miss
	Set(ctx context.Context, key string, value any) error
}

// ReportInvalidator drops cached reports after the ledger changed.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// Random is the source of randomness for branch assignment.
type Random interface {
	Intn(n int) int
}
