package middlewares

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UnitOfWork runs operations inside a logged database transaction.
type UnitOfWork struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// NewUnitOfWork creates a UnitOfWork bound to db.
func NewUnitOfWork(db *sqlx.DB, log *zap.SugaredLogger) *UnitOfWork {
	return &UnitOfWork{db: db, log: log}
}

// Do executes fn as one atomic unit of work. Nested calls join the outer transaction.
func (u *UnitOfWork) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	return LoggingMiddleware(u.log, name)(TxMiddleware(u.db)(fn))(ctx)
}
