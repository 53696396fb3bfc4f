package middlewares

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
)

// Operation is a unit of work executed against the store.
type Operation func(ctx context.Context) error

// TxMiddleware wraps an operation with a database transaction.
// The transaction is committed when the operation returns nil and rolled back
// when it returns an error or panics.
func TxMiddleware(db *sqlx.DB) func(next Operation) Operation {
	return func(next Operation) Operation {
		return func(ctx context.Context) (err error) {
			if GetTxFromContext(ctx) != nil {
				return next(ctx)
			}

			tx, err := db.BeginTxx(ctx, nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				return err
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			if err := next(setTxToContext(ctx, tx)); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
				}
				return err
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				return err
			}
			return nil
		}
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
