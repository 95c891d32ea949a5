package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/hyperview/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"home default", "", filepath.Join(home, ".cache", appName)},
		{"xdg override", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	dir := isolateCache(t)
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	store, _, err := c.newCache(ctx, true, "")
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", store)
	}

	store, keyer, err := c.newCache(ctx, false, "")
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer store.Close()
	key := keyer.LayoutKey(cache.Hash([]byte("{}")), cache.LayoutKeyOpts{Algorithm: "grid"})
	if err := store.Set(ctx, key, []byte("{}"), cache.LayoutTTL); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if n := countFiles(t, dir); n != 1 {
		t.Errorf("file cache under %s holds %d entries, want 1", dir, n)
	}

	if _, _, err := c.newCache(ctx, false, "not-a-redis-url"); err == nil {
		t.Error("a malformed Redis URL should fail")
	}
}
