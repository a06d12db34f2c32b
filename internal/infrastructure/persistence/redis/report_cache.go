package redis

import (
	"context"
	"errors"
	"time"

	"github.com/alem-hub/school-core/pkg/circuitbreaker"
)

// ReportCache stores generated reports under "report:<key>" with a fixed TTL.
// Calls go through a circuit breaker; while it is open reads miss and
// writes fail fast with circuitbreaker.ErrCircuitOpen.
type ReportCache struct {
	cache   *Cache
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewReportCache wraps cache. A non-positive ttl keeps reports until evicted.
// breaker may be nil.
func NewReportCache(cache *Cache, ttl time.Duration, breaker *circuitbreaker.CircuitBreaker) *ReportCache {
	if ttl < 0 {
		ttl = 0
	}
	if breaker == nil {
		breaker = circuitbreaker.New("redis-report-cache")
	}
	return &ReportCache{cache: cache, ttl: ttl, breaker: breaker}
}

// ReportKey returns the Redis key a report is stored under.
func ReportKey(key string) string {
	return PrefixReport + key
}

// GetReport loads a cached report into dest. A miss is not an error.
func (r *ReportCache) GetReport(ctx context.Context, key string, dest any) (bool, error) {
	hit := false
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		err := r.cache.Get(ctx, ReportKey(key), dest)
		switch {
		case err == nil:
			hit = true
			return nil
		case errors.Is(err, ErrCacheMiss), errors.Is(err, ErrCacheSerialization):
			// The server answered; a stale or foreign entry is just a miss.
			return nil
		default:
			return err
		}
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return false, nil
	}
	return hit, err
}

// SetReport stores a report.
func (r *ReportCache) SetReport(ctx context.Context, key string, report any) error {
	return r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.cache.Set(ctx, ReportKey(key), report, r.ttl)
	})
}
