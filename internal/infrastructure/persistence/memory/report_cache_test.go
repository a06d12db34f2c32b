package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	ID    string         `json:"id"`
	Stats map[string]int `json:"stats"`
}

func TestReportCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewReportCache(0)
	require.NoError(t, err)

	var got report
	hit, err := c.GetReport(ctx, "routine:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	stored := report{ID: "r1", Stats: map[string]int{"আনিছুর": 12}}
	require.NoError(t, c.SetReport(ctx, "routine:1", stored))
	stored.Stats["আনিছুর"] = 0

	hit, err = c.GetReport(ctx, "routine:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 12, got.Stats["আনিছুর"])
	assert.Equal(t, 1, c.Len())
}

func TestReportCache_Evicts(t *testing.T) {
	ctx := context.Background()
	c, err := NewReportCache(2)
	require.NoError(t, err)

	require.NoError(t, c.SetReport(ctx, "a", report{ID: "a"}))
	require.NoError(t, c.SetReport(ctx, "b", report{ID: "b"}))
	require.NoError(t, c.SetReport(ctx, "c", report{ID: "c"}))

	var got report
	hit, _ := c.GetReport(ctx, "a", &got)
	assert.False(t, hit)
	hit, _ = c.GetReport(ctx, "c", &got)
	assert.True(t, hit)
	assert.Equal(t, 2, c.Len())
}

func TestReportCache_Unencodable(t *testing.T) {
	c, err := NewReportCache(1)
	require.NoError(t, err)

	err = c.SetReport(context.Background(), "k", make(chan int))
	assert.ErrorIs(t, err, ErrSerialization)
}
