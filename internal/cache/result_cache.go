// Package cache provides a distributed cache tier for prediction results.
// The engine is deterministic, so a cached result keyed by the input hash is
// always valid; the TTL only bounds storage, not correctness.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/domain"
)

// ResultCache caches PredictionResults in Redis keyed by the sha256 of the
// canonical input JSON.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger

	stats   Stats
	statsMu sync.RWMutex
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`
}

// NewResultCache creates a Redis-backed result cache. Returns an error if the
// server is unreachable so the caller can fall back to the in-process tier.
func NewResultCache(redisURL string, ttl time.Duration, logger *logrus.Logger) (*ResultCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	logger.WithField("redis_addr", opts.Addr).Info("Result cache connected")

	return &ResultCache{
		client: client,
		ttl:    ttl,
		log:    logger,
	}, nil
}

// Get looks up a cached result by input key
func (c *ResultCache) Get(ctx context.Context, key string) (*domain.PredictionResults, bool) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.recordError()
			c.log.WithError(err).Warn("Result cache read failed")
		}
		c.recordMiss()
		return nil, false
	}

	var results domain.PredictionResults
	if err := json.Unmarshal(data, &results); err != nil {
		c.recordError()
		c.log.WithError(err).Warn("Result cache entry corrupt, ignoring")
		return nil, false
	}

	c.recordHit()
	return &results, true
}

// Set stores a result. Failures are logged, not propagated; caching is an
// optimization, never a dependency.
func (c *ResultCache) Set(ctx context.Context, key string, results domain.PredictionResults) {
	data, err := json.Marshal(results)
	if err != nil {
		c.recordError()
		return
	}

	if err := c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err(); err != nil {
		c.recordError()
		c.log.WithError(err).Warn("Result cache write failed")
	}
}

// GetStats returns a copy of the cache statistics
func (c *ResultCache) GetStats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// Close closes the Redis client
func (c *ResultCache) Close() error {
	return c.client.Close()
}

func (c *ResultCache) redisKey(key string) string {
	return "prediction:" + key
}

func (c *ResultCache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *ResultCache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *ResultCache) recordError() {
	c.statsMu.Lock()
	c.stats.Errors++
	c.statsMu.Unlock()
}
