package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
)

const reportVersionKey = "report:version"

// ReportCacheRepository caches report results in Redis.
// Keys embed a version counter; bumping it invalidates every cached report at once
// and stale entries expire through their TTL.
// After a failed Invalidate the cache is bypassed until a later bump succeeds.
type ReportCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached reports
	stale  atomic.Bool   // set while an invalidation is pending
}

// NewReportCacheRepository creates a new repository instance with the given TTL
func NewReportCacheRepository(client *redis.Client, expiration time.Duration) *ReportCacheRepository {
	return &ReportCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func (r *ReportCacheRepository) versionedKey(ctx context.Context, key string) (string, error) {
	version, err := r.client.Get(ctx, reportVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("report:%d:%s", version, key), nil
}

// fresh retries a pending invalidation and reports whether cached reports may be used.
func (r *ReportCacheRepository) fresh(ctx context.Context) bool {
	if !r.stale.Load() {
		return true
	}
	return r.Invalidate(ctx) == nil
}

// Get loads a cached report into dest. It reports false on a cache miss.
func (r *ReportCacheRepository) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !r.fresh(ctx) {
		logger.Log.Infow("report cache", "key", key, "result", "bypass", "error", nil)
		return false, nil
	}

	fullKey, err := r.versionedKey(ctx, key)
	if err != nil {
		logger.Log.Infow("report cache", "key", key, "result", nil, "error", err)
		return false, err
	}

	val, err := r.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("report cache", "key", fullKey, "result", "miss", "error", nil)
		return false, nil
	}
	if err != nil {
		logger.Log.Infow("report cache", "key", fullKey, "result", nil, "error", err)
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		logger.Log.Infow("report cache", "key", fullKey, "value", string(val), "result", nil, "error", err)
		return false, err
	}

	logger.Log.Infow("report cache", "key", fullKey, "result", "hit", "error", nil)
	return true, nil
}

// Set caches value under key with expiration
func (r *ReportCacheRepository) Set(ctx context.Context, key string, value any) error {
	if !r.fresh(ctx) {
		return nil
	}

	fullKey, err := r.versionedKey(ctx, key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, fullKey, data, r.exp).Err()

	logger.Log.Infow("report cache",
		"key", fullKey,
		"result", "ok",
		"error", err,
	)

	return err
}

// Invalidate drops every cached report. On failure the repository stops
// serving cached reports until an invalidation succeeds.
func (r *ReportCacheRepository) Invalidate(ctx context.Context) error {
	version, err := r.client.Incr(ctx, reportVersionKey).Result()

	logger.Log.Infow("report cache",
		"key", reportVersionKey,
		"result", version,
		"error", err,
	)

	r.stale.Store(err != nil)
	return err
}
