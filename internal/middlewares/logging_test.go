package middlewares

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		opErr       error
		expectedErr error
	}{
		{
			name:        "successful operation",
			opErr:       nil,
			expectedErr: nil,
		},
		{
			name:        "failed operation",
			opErr:       errors.New("boom"),
			expectedErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			log := zap.New(core).Sugar()

			var seenID string
			next := func(ctx context.Context) error {
				seenID = GetOperationID(ctx)
				return tt.opErr
			}

			err := LoggingMiddleware(log, "deposit")(next)(context.Background())
			assert.Equal(t, tt.expectedErr, err)

			// Operation ID is generated and passed downstream
			assert.NotEmpty(t, seenID)

			entries := logs.FilterMessage("operation").All()
			if assert.Len(t, entries, 1) {
				fields := entries[0].ContextMap()
				assert.Equal(t, "deposit", fields["name"])
				assert.Equal(t, seenID, fields["operation_id"])
			}
		})
	}
}

func TestGetOperationID_Missing(t *testing.T) {
	assert.Equal(t, "", GetOperationID(context.Background()))
}
