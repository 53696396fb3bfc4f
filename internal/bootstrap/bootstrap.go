package bootstrap

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/middlewares"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// Seed parameters
const (
	BranchCount = 5

	MinBranchID = 1000
	MaxBranchID = 9999

	MinBranchCash = 50000
	MaxBranchCash = 500000

	// seedLockKey serializes seeding across processes sharing one database.
	seedLockKey = 0x41544d
)

// Locations is the label set branches are assigned from.
var Locations = []string{
	"Chennai - Central",
	"Chennai - Anna Nagar",
	"Bengaluru - MG Road",
	"Mumbai - Andheri",
	"Hyderabad - Begumpet",
	"Delhi - Connaught Place",
	"Kolkata - Park Street",
	"Avadi",
}

var errNoTransaction = errors.New("seeding requires a transaction")

// Random is the source of randomness used for seeding.
type Random interface {
	Intn(n int) int
}

// BranchReader defines the branch reads needed for seeding.
type BranchReader interface {
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, branchID int64) (*models.BranchDB, error)
}

// BranchWriter defines the branch writes needed for seeding.
type BranchWriter interface {
	Save(ctx context.Context, branch models.BranchDB) error
}

// UnitOfWork runs fn atomically.
type UnitOfWork interface {
	Do(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

// Bootstrapper creates the schema and the initial branches.
type Bootstrapper struct {
	db     *sqlx.DB
	uow    UnitOfWork
	reader BranchReader
	writer BranchWriter
	rnd    Random
}

// New creates a new Bootstrapper.
func New(db *sqlx.DB, uow UnitOfWork, reader BranchReader, writer BranchWriter, rnd Random) *Bootstrapper {
	return &Bootstrapper{
		db:     db,
		uow:    uow,
		reader: reader,
		writer: writer,
		rnd:    rnd,
	}
}

// Run migrates the schema and seeds branches. It is safe to call on every start.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.Migrate(ctx); err != nil {
		return err
	}
	return b.Seed(ctx)
}

// Migrate applies the schema statements in order.
func (b *Bootstrapper) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		_, err := b.db.ExecContext(ctx, m)
		logger.Log.Infow("migration",
			"statement", strings.Join(strings.Fields(m), " "),
			"error", err,
		)
		if err != nil {
			logger.Log.Errorw("failed to apply migration", "error", err)
			return err
		}
	}
	return nil
}

// Seed creates BranchCount branches when none exist.
func (b *Bootstrapper) Seed(ctx context.Context) error {
	return b.uow.Do(ctx, "seed_branches", func(ctx context.Context) error {
		tx := middlewares.GetTxFromContext(ctx)
		if tx == nil {
			return errNoTransaction
		}
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			logger.Log.Errorw("failed to acquire seed lock", "error", err)
			return err
		}

		count, err := b.reader.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Log.Infow("branches already seeded", "count", count)
			return nil
		}

		for i := 0; i < BranchCount; i++ {
			branchID, err := b.uniqueBranchID(ctx)
			if err != nil {
				return err
			}

			branch := models.BranchDB{
				BranchID: branchID,
				Location: Locations[b.rnd.Intn(len(Locations))],
				Cash:     int64(MinBranchCash + b.rnd.Intn(MaxBranchCash-MinBranchCash+1)),
			}
			if err := b.writer.Save(ctx, branch); err != nil {
				return err
			}
			logger.Log.Infow("branch seeded", "branch_id", branch.BranchID, "location", branch.Location, "cash", branch.Cash)
		}
		return nil
	})
}

// uniqueBranchID draws ids until one is not taken.
func (b *Bootstrapper) uniqueBranchID(ctx context.Context) (int64, error) {
	for {
		id := int64(MinBranchID + b.rnd.Intn(MaxBranchID-MinBranchID+1))
		existing, err := b.reader.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if existing == nil {
			return id, nil
		}
	}
}
