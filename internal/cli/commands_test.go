package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	hio "github.com/matzehuels/hyperview/pkg/io"
	"github.com/matzehuels/hyperview/pkg/observability"
)

// execute runs the root command with args against an isolated cache dir.
func execute(t *testing.T, out io.Writer, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	if out == nil {
		out = io.Discard
	}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// isolateCache points the file cache at a temp dir and disables Redis.
func isolateCache(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	t.Setenv(redisURLEnv, "")
	return filepath.Join(home, appName)
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestGenerateFano(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fano.json")
	if err := execute(t, nil, "generate", "fano", "-o", path); err != nil {
		t.Fatalf("generate fano error: %v", err)
	}

	m, err := hio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if m.NodeCount() != 7 || m.EdgeCount() != 7 {
		t.Errorf("fano plane = %d nodes, %d edges; want 7, 7", m.NodeCount(), m.EdgeCount())
	}
}

func TestGenerateRandomIsReproducible(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	for _, path := range []string{a, b} {
		if err := execute(t, nil, "generate", "random", "-n", "12", "-e", "6", "--seed", "7", "-o", path); err != nil {
			t.Fatalf("generate random error: %v", err)
		}
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("same seed should produce identical files")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"too many states", []string{"generate", "states", "--depth", "20", "--branching", "3"}, errors.ErrCodeInvalidInput},
		{"bad canvas", []string{"generate", "fano", "--width", "-5"}, errors.ErrCodeInvalidCanvas},
		{"bad output path", []string{"generate", "fano", "-o", "dir/"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, nil, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func writeFano(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fano.json")
	if err := execute(t, nil, "generate", "fano", "-o", path); err != nil {
		t.Fatalf("generate fano error: %v", err)
	}
	return path
}

func TestLayoutCommandCaches(t *testing.T) {
	dir := isolateCache(t)
	input := writeFano(t)
	out := filepath.Join(filepath.Dir(input), "out.json")

	if err := execute(t, nil, "layout", input, "-a", "grid", "-o", out); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if countFiles(t, dir) != 1 {
		t.Fatalf("cache should hold one layout entry, has %d", countFiles(t, dir))
	}
	first, _ := os.ReadFile(out)

	if err := execute(t, nil, "layout", input, "-a", "grid", "-o", out); err != nil {
		t.Fatalf("cached layout error: %v", err)
	}
	second, _ := os.ReadFile(out)
	if !bytes.Equal(first, second) {
		t.Error("cached layout should reproduce the computed one")
	}

	m, err := hio.ImportJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	// 7 nodes on a 3x3 grid centered on (400,300) with spacing 100.
	p1, _ := m.Node("p1")
	if p1.Pos != geometry.Pt(300, 200) {
		t.Errorf("p1 = %v, want (300,200)", p1.Pos)
	}
}

func TestLayoutCommandNoCache(t *testing.T) {
	dir := isolateCache(t)
	input := writeFano(t)

	if err := execute(t, nil, "layout", input, "--no-cache", "-a", "circular"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("--no-cache should not write the cache, found %d files", n)
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".json") + ".layout.json"); err != nil {
		t.Errorf("default output should be <input>.layout.json: %v", err)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	isolateCache(t)
	input := writeFano(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"layout", filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
		{"unknown algorithm", []string{"layout", input, "-a", "radial"}, errors.ErrCodeInvalidLayout},
		{"missing config", []string{"--config", "missing.toml", "layout", input}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, nil, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommandAllFormats(t *testing.T) {
	isolateCache(t)
	input := writeFano(t)
	base := filepath.Join(t.TempDir(), "out", "fano")

	if err := execute(t, nil, "render", input, "-f", "png,svg,dot,json", "-o", base); err != nil {
		t.Fatalf("render error: %v", err)
	}

	checks := map[string]string{
		".png":  "\x89PNG",
		".svg":  "<?xml",
		".dot":  "graph G {",
		".json": "{",
	}
	for ext, prefix := range checks {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("%s not written: %v", ext, err)
			continue
		}
		if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(prefix)) {
			t.Errorf("%s should start with %q", ext, prefix)
		}
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	isolateCache(t)
	input := writeFano(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hyperview.toml")
	cfg := "[canvas]\nwidth = 400\nheight = 300\nbackground = \"#000000\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "small.png")

	if err := execute(t, nil, "--config", cfgPath, "render", input, "-f", "png", "-o", out); err != nil {
		t.Fatalf("render error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Width != 400 || img.Height != 300 {
		t.Errorf("png = %dx%d, want 400x300", img.Width, img.Height)
	}
}

func TestRenderCommandRefusesToOverwriteInput(t *testing.T) {
	isolateCache(t)
	input := writeFano(t)
	err := execute(t, nil, "render", input, "-f", "json")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestMetricsFile(t *testing.T) {
	t.Cleanup(observability.Reset)
	isolateCache(t)
	input := writeFano(t)
	metrics := filepath.Join(t.TempDir(), "metrics.prom")

	if err := execute(t, nil, "--metrics-file", metrics, "layout", input, "-a", "spiral"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{"hyperview_layout_runs_total", `algorithm="spiral"`, "hyperview_cache_operations_total"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("metrics should contain %s", want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolateCache(t)

	var out bytes.Buffer
	if err := execute(t, &out, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}

	if err := execute(t, nil, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on empty cache error: %v", err)
	}

	input := writeFano(t)
	if err := execute(t, nil, "render", input, "-a", "grid", "-f", "svg,dot"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if n := countFiles(t, dir); n != 3 {
		t.Fatalf("cache should hold a layout and two artifacts, has %d", n)
	}
	if err := execute(t, nil, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if n := countFiles(t, dir); n != 0 {
		t.Errorf("cache clear left %d files", n)
	}
}
