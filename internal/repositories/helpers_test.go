package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// --- Setup sqlmock ---
func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

// --- Helper ---
// beginTx opens a transaction on db and returns a getter that hands it out.
func beginTx(t *testing.T, db *sqlx.DB, mock sqlmock.Sqlmock) (*sqlx.Tx, TxGetter) {
	t.Helper()

	mock.ExpectBegin()
	tx, err := db.Beginx()
	assert.NoError(t, err)

	return tx, func(ctx context.Context) *sqlx.Tx { return tx }
}

func ptr[T any](v T) *T {
	return &v
}
