package query

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory ReportCache that can be told to fail.
type fakeCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	failGet error
	failSet error
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (c *fakeCache) GetReport(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return false, c.failGet
	}
	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) SetReport(_ context.Context, key string, report any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.failSet != nil {
		return c.failSet
	}
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

var errCacheDown = errors.New("cache down")

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func TestFingerprint(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 2, "x": 1}

	ka, err := fingerprint("routine", "v1", a)
	require.NoError(t, err)
	kb, err := fingerprint("routine", "v1", b)
	require.NoError(t, err)
	kc, err := fingerprint("routine", "v2", a)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
	assert.NotEqual(t, ka, kc)
	assert.Regexp(t, `^routine:[0-9a-f]{16}$`, ka)

	_, err = fingerprint("routine", make(chan int))
	assert.Error(t, err)
}

func TestNopCache(t *testing.T) {
	var c ReportCache = NopCache{}

	require.NoError(t, c.SetReport(context.Background(), "k", 1))
	hit, err := c.GetReport(context.Background(), "k", new(int))
	require.NoError(t, err)
	assert.False(t, hit)
}
