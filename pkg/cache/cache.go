// Package cache memoizes expensive layout results and rendered artifacts.
//
// The engine itself never persists state; the CLI wraps a [Cache] around
// force layouts and exports so repeated runs over the same document skip the
// simulation. Backends: [FileCache] for local use, [RedisCache] for shared
// caches, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts are the layout inputs that change the resulting positions.
type LayoutKeyOpts struct {
	Algorithm  string  `json:"algorithm"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Spacing    float64 `json:"spacing"`
	Iterations int     `json:"iterations"`
	Margin     float64 `json:"margin"`
	Attraction float64 `json:"attraction"`
}

// ArtifactKeyOpts are the rendering inputs that change an exported file.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Background string  `json:"background,omitempty"`
	Labels     bool    `json:"labels"`
	EdgeLabels bool    `json:"edge_labels"`
	Scale      float64 `json:"scale,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey keys a layout by the hashed source document and its options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey keys an export by the hashed positioned document and its options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
