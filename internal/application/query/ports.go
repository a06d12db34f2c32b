// Package query contains the read-only use cases of school-core.
// Each query validates its input, consults the report cache, runs the
// domain computation and returns a JSON-ready DTO.
package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ReportCache stores generated reports keyed by input fingerprint.
// Implementations must be safe for concurrent use.
type ReportCache interface {
	// GetReport decodes a cached report into dest and reports whether it
	// was found.
	GetReport(ctx context.Context, key string, dest any) (bool, error)

	// SetReport stores a report under key.
	SetReport(ctx context.Context, key string, report any) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) GetReport(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) SetReport(context.Context, string, any) error         { return nil }

// fingerprint hashes the JSON encoding of parts into "<kind>:<hex>".
// Map keys are encoded in sorted order, so equal inputs hash equally.
func fingerprint(kind string, parts ...any) (string, error) {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		if err := enc.Encode(p); err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", kind, err)
		}
	}
	return fmt.Sprintf("%s:%016x", kind, h.Sum64()), nil
}
