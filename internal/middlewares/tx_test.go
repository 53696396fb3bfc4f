package middlewares

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestTxMiddleware_Success(t *testing.T) {
	// Create sqlmock
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	// Expect Begin and Commit
	mock.ExpectBegin()
	mock.ExpectCommit()

	// Next operation should receive tx in context
	nextCalled := false
	next := func(ctx context.Context) error {
		nextCalled = true
		assert.NotNil(t, GetTxFromContext(ctx))
		return nil
	}

	err = TxMiddleware(sqlxDB)(next)(context.Background())

	assert.NoError(t, err)
	assert.True(t, nextCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	nextCalled := false
	next := func(ctx context.Context) error {
		nextCalled = true
		return nil
	}

	err = TxMiddleware(sqlxDB)(next)(context.Background())

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, nextCalled)
}

func TestTxMiddleware_OperationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	// Failed operation must roll back, never commit
	mock.ExpectBegin()
	mock.ExpectRollback()

	opErr := errors.New("insufficient funds")
	next := func(ctx context.Context) error { return opErr }

	err = TxMiddleware(sqlxDB)(next)(context.Background())

	assert.Equal(t, opErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	// Begin succeeds, Commit fails
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	next := func(ctx context.Context) error { return nil }

	err = TxMiddleware(sqlxDB)(next)(context.Background())

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_Panic(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := func(ctx context.Context) error {
		panic("test panic")
	}

	assert.Panics(t, func() {
		_ = TxMiddleware(sqlxDB)(next)(context.Background())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_Nested(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	// Only the outer call opens a transaction
	mock.ExpectBegin()
	mock.ExpectCommit()

	var outerTx, innerTx *sqlx.Tx
	inner := func(ctx context.Context) error {
		innerTx = GetTxFromContext(ctx)
		return nil
	}
	outer := func(ctx context.Context) error {
		outerTx = GetTxFromContext(ctx)
		return TxMiddleware(sqlxDB)(inner)(ctx)
	}

	err = TxMiddleware(sqlxDB)(outer)(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, outerTx)
	assert.Same(t, outerTx, innerTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTxFromContext_Missing(t *testing.T) {
	assert.Nil(t, GetTxFromContext(context.Background()))
}
