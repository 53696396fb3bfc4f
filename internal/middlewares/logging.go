package middlewares

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingMiddleware returns a middleware that logs every operation using the provided SugaredLogger.
// It also generates a unique operation ID and stores it in the context.
func LoggingMiddleware(log *zap.SugaredLogger, name string) func(next Operation) Operation {
	return func(next Operation) Operation {
		return func(ctx context.Context) error {
			opID := uuid.New().String()
			start := time.Now()

			err := next(context.WithValue(ctx, opIDKey, opID))

			log.Infow("operation",
				"operation_id", opID,
				"name", name,
				"duration", time.Since(start),
				"error", err,
			)
			return err
		}
	}
}

type opIDContextKey struct{}

var opIDKey = opIDContextKey{}

// GetOperationID returns the operation ID stored by LoggingMiddleware, or "" if absent.
func GetOperationID(ctx context.Context) string {
	id, _ := ctx.Value(opIDKey).(string)
	return id
}
