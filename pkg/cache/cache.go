// Package cache provides caching for normalized layouts, breakpoint
// derivations, and rendered artifacts.
//
// This package defines the Cache interface with implementations for
// different backends:
//   - file: File-based cache for CLI usage
//   - redis: Redis-backed cache for server deployments
//   - null: No-op cache for testing or when caching is disabled
//
// Cache keys are produced by a Keyer so every consumer (CLI, API, pipeline)
// derives identical keys for identical inputs. Keys embed a content hash of
// the source layout plus the options that influence the result, so any
// option change naturally invalidates stale entries.
package cache

import (
	"context"
	"time"
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache is the interface for cache backends.
// All implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per key type. Layout results are cheap to recompute, so they
// expire faster than rendered artifacts.
const (
	// TTLLayout is the lifetime of a cached normalize/compact result.
	TTLLayout = 24 * time.Hour

	// TTLDerive is the lifetime of a cached breakpoint derivation.
	TTLDerive = 24 * time.Hour

	// TTLArtifact is the lifetime of a cached rendered artifact.
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Key Generation
// =============================================================================

// NormalizeKeyOpts captures the options that influence a normalize result.
type NormalizeKeyOpts struct {
	Cols         int    `json:"cols"`
	CompactType  string `json:"compact_type"`
	AllowOverlap bool   `json:"allow_overlap"`
}

// DeriveKeyOpts captures the options that influence a breakpoint derivation.
type DeriveKeyOpts struct {
	FromCols     int    `json:"from_cols"`
	ToCols       int    `json:"to_cols"`
	CompactType  string `json:"compact_type"`
	AllowOverlap bool   `json:"allow_overlap"`
}

// ArtifactKeyOpts captures the options that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Cols           int     `json:"cols"`
	ContainerWidth float64 `json:"container_width"`
	RowHeight      float64 `json:"row_height"`
	MarginX        float64 `json:"margin_x"`
	MarginY        float64 `json:"margin_y"`
	PaddingX       float64 `json:"padding_x"`
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// NormalizeKey generates a key for a normalize/compact result.
	NormalizeKey(layoutHash string, opts NormalizeKeyOpts) string

	// DeriveKey generates a key for a breakpoint derivation.
	DeriveKey(layoutHash string, opts DeriveKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// NormalizeKey generates a key for a normalize/compact result.
func (k *DefaultKeyer) NormalizeKey(layoutHash string, opts NormalizeKeyOpts) string {
	return hashKey("normalize", layoutHash, opts)
}

// DeriveKey generates a key for a breakpoint derivation.
func (k *DefaultKeyer) DeriveKey(layoutHash string, opts DeriveKeyOpts) string {
	return hashKey("derive", layoutHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
