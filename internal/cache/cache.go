// Package cache wraps the optional redis instance used to keep computed
// report payloads warm. Every operation is fail-soft: a missing or broken
// cache degrades to recomputation, never to a failed request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
)

// ErrMiss is returned when the key is absent or the cache is disabled
var ErrMiss = errors.New("cache miss")

// ReportCache stores JSON-encoded report payloads keyed by tenant and day
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportCache connects to redis and verifies the connection.
// Returns nil when the cache is disabled; a nil *ReportCache is safe to use.
func NewReportCache(cfg *config.RedisConfig, logger *zap.Logger) *ReportCache {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Report cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Report cache unreachable, continuing without it",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil
	}

	logger.Info("Report cache connected", zap.String("addr", cfg.Addr))

	return &ReportCache{
		client: rdb,
		ttl:    cfg.ReportTTLDuration(),
		logger: logger,
	}
}

func reportKey(tenantID string, day time.Time) string {
	return fmt.Sprintf("report:yesterday-visits:%s:%s", tenantID, day.Format("2006-01-02"))
}

// GetReport loads a cached report payload into dest.
// Returns ErrMiss when absent, disabled, or unreadable.
func (c *ReportCache) GetReport(ctx context.Context, tenantID string, day time.Time, dest interface{}) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}

	raw, err := c.client.Get(ctx, reportKey(tenantID, day)).Result()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		c.logger.Warn("Report cache read failed", zap.Error(err))
		return ErrMiss
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("Report cache payload corrupt, treating as miss",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return ErrMiss
	}

	return nil
}

// SetReport stores a report payload. Failures are logged and swallowed.
func (c *ReportCache) SetReport(ctx context.Context, tenantID string, day time.Time, payload interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("Report cache encode failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, reportKey(tenantID, day), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Report cache write failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
	}
}

// HealthCheck pings redis; "disabled" when the cache is off
func (c *ReportCache) HealthCheck(ctx context.Context) string {
	if c == nil || c.client == nil {
		return "disabled"
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Close releases the redis connection
func (c *ReportCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
