package bootstrap

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/middlewares"
	"github.com/sbilibin2017/atm-ledger/internal/repositories"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// scriptedRandom returns preset values in order.
type scriptedRandom struct {
	values []int
	next   int
}

func (r *scriptedRandom) Intn(n int) int {
	v := r.values[r.next]
	r.next++
	return v % n
}

var branchColumns = []string{"branch_id", "location", "cash"}

func newBootstrapper(t *testing.T, rnd Random) (*Bootstrapper, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	uow := middlewares.NewUnitOfWork(sqlxDB, zap.NewNop().Sugar())
	reader := repositories.NewBranchReadRepository(sqlxDB, middlewares.GetTxFromContext)
	writer := repositories.NewBranchWriteRepository(sqlxDB, middlewares.GetTxFromContext)

	return New(sqlxDB, uow, reader, writer, rnd), mock
}

func expectLockAndCount(mock sqlmock.Sqlmock, count int) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(seedLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM branches")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func expectFreeID(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(regexp.QuoteMeta("WHERE branch_id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(branchColumns))
}

func expectInsert(mock sqlmock.Sqlmock, id int64, location string, cash int64) {
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO branches")).
		WithArgs(id, location, cash).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestBootstrapper_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies every migration", func(t *testing.T) {
		b, mock := newBootstrapper(t, nil)
		for _, m := range migrations {
			mock.ExpectExec(regexp.QuoteMeta(m)).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		assert.NoError(t, b.Migrate(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on first failure", func(t *testing.T) {
		b, mock := newBootstrapper(t, nil)
		mock.ExpectExec(regexp.QuoteMeta(migrations[0])).WillReturnError(errors.New("permission denied"))

		assert.EqualError(t, b.Migrate(ctx), "permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBootstrapper_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("creates five branches when empty", func(t *testing.T) {
		rnd := &scriptedRandom{values: []int{
			234, 7, 0, // 1234, Avadi, 50000
			234, 1000, 0, 450000, // 1234 taken, 2000, Chennai - Central, 500000
			2000, 1, 10,
			3000, 2, 20,
			4000, 3, 30,
		}}
		b, mock := newBootstrapper(t, rnd)

		expectLockAndCount(mock, 0)

		expectFreeID(mock, 1234)
		expectInsert(mock, 1234, "Avadi", 50000)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE branch_id = $1 FOR UPDATE")).
			WithArgs(1234).
			WillReturnRows(sqlmock.NewRows(branchColumns).AddRow(1234, "Avadi", 50000))
		expectFreeID(mock, 2000)
		expectInsert(mock, 2000, "Chennai - Central", 500000)

		expectFreeID(mock, 3000)
		expectInsert(mock, 3000, "Chennai - Anna Nagar", 50010)

		expectFreeID(mock, 4000)
		expectInsert(mock, 4000, "Bengaluru - MG Road", 50020)

		expectFreeID(mock, 5000)
		expectInsert(mock, 5000, "Mumbai - Andheri", 50030)

		mock.ExpectCommit()

		assert.NoError(t, b.Seed(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does nothing when branches exist", func(t *testing.T) {
		b, mock := newBootstrapper(t, &scriptedRandom{})

		expectLockAndCount(mock, 5)
		mock.ExpectCommit()

		assert.NoError(t, b.Seed(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an insert fails", func(t *testing.T) {
		b, mock := newBootstrapper(t, &scriptedRandom{values: []int{234, 7, 0}})

		expectLockAndCount(mock, 0)
		expectFreeID(mock, 1234)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO branches")).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		assert.EqualError(t, b.Seed(ctx), "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
