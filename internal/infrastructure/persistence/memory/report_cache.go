// Package memory implements an in-process report cache for runs without Redis.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of reports kept when no size is given.
const DefaultSize = 128

// ErrSerialization is returned when a report cannot be encoded or decoded.
var ErrSerialization = errors.New("memory cache: serialization failed")

// ReportCache keeps the most recently used reports as JSON. Stored reports
// are encoded copies, so callers cannot mutate cached state.
// It is safe for concurrent use.
type ReportCache struct {
	items *lru.Cache[string, []byte]
}

// NewReportCache creates a cache holding up to size reports.
func NewReportCache(size int) (*ReportCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	items, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	return &ReportCache{items: items}, nil
}

// GetReport loads a cached report into dest.
func (c *ReportCache) GetReport(_ context.Context, key string, dest any) (bool, error) {
	data, ok := c.items.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return true, nil
}

// SetReport stores a report, evicting the least recently used one when full.
func (c *ReportCache) SetReport(_ context.Context, key string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	c.items.Add(key, data)
	return nil
}

// Len returns the number of cached reports.
func (c *ReportCache) Len() int {
	return c.items.Len()
}
