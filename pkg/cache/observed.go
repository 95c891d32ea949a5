package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/hyperview/pkg/observability"
)

// Observed reports hits, misses and writes of an inner cache to the
// registered cache hooks. The reported key type is "layout" or "artifact"
// when the key contains one, even behind a ScopedKeyer prefix, and the text
// before the first colon otherwise.
type Observed struct {
	Cache
}

// Observe wraps c.
func Observe(c Cache) *Observed { return &Observed{Cache: c} }

// Get forwards to the inner cache and reports the outcome.
func (o *Observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := o.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

// Set forwards to the inner cache and reports the stored size.
func (o *Observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func keyType(key string) string {
	for _, kt := range []string{"layout", "artifact"} {
		if strings.Contains(key, kt+":") {
			return kt
		}
	}
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
