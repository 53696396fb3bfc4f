package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/middlewares"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the transaction from ctx when present, otherwise the database handle.
// locked reports whether a transaction was picked, so reads may take row locks.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) (ex sqlx.ExtContext, locked bool) {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx, true
		}
	}
	return db, false
}

// forUpdate appends a row lock clause to query when locked is set.
func forUpdate(query string, locked bool) string {
	if locked {
		return query + " FOR UPDATE"
	}
	return query
}

// logQuery logs query in a single line with its args, result and error,
// tagged with the operation id of the unit of work it runs in.
func logQuery(ctx context.Context, query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"operation_id", middlewares.GetOperationID(ctx),
		"statement", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
