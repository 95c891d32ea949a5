package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 || cfg.Canvas.Background != "#ffffff" {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Algorithm() != layout.Force || cfg.Layout.Spacing != 100 || cfg.Layout.Iterations != 100 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if !cfg.Rendering.ShowLabels || cfg.Rendering.ShowEdgeLabels || cfg.Rendering.Animation {
		t.Errorf("rendering = %+v", cfg.Rendering)
	}
	if !cfg.Interaction.Draggable || !cfg.Interaction.Zoomable || !cfg.Interaction.Clickable {
		t.Errorf("interaction = %+v", cfg.Interaction)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, errors.ErrCodeInvalidCanvas},
		{"negative height", func(c *Config) { c.Canvas.Height = -5 }, errors.ErrCodeInvalidCanvas},
		{"unknown algorithm", func(c *Config) { c.Layout.Algorithm = "radial" }, errors.ErrCodeInvalidLayout},
		{"3d mode", func(c *Config) { c.Rendering.Mode = "3d" }, errors.ErrCodeUnsupported},
		{"negative spacing", func(c *Config) { c.Layout.Spacing = -1 }, errors.ErrCodeInvalidConfig},
		{"negative iterations", func(c *Config) { c.Layout.Iterations = -1 }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "view.toml", `
[canvas]
width = 1024
[layout]
algorithm = "grid"
spacing = 40
[interaction]
zoomable = false
`},
		{"yaml", "view.yaml", `
canvas:
  width: 1024
layout:
  algorithm: grid
  spacing: 40
interaction:
  zoomable: false
`},
		{"json", "view.json", `{"canvas": {"width": 1024}, "layout": {"algorithm": "grid", "spacing": 40}, "interaction": {"zoomable": false}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if cfg.Canvas.Width != 1024 {
				t.Errorf("width = %v, want 1024", cfg.Canvas.Width)
			}
			if cfg.Canvas.Height != 600 {
				t.Errorf("height = %v, want default 600", cfg.Canvas.Height)
			}
			if cfg.Algorithm() != layout.Grid || cfg.Layout.Spacing != 40 {
				t.Errorf("layout = %+v", cfg.Layout)
			}
			if cfg.Layout.Iterations != 100 {
				t.Errorf("iterations = %d, want default 100", cfg.Layout.Iterations)
			}
			if cfg.Interaction.Zoomable || !cfg.Interaction.Draggable {
				t.Errorf("interaction = %+v", cfg.Interaction)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, errors.ErrCodeFileNotFound},
		{"extension", func(t *testing.T) string { return writeFile(t, "view.ini", "x=1") }, errors.ErrCodeInvalidFormat},
		{"syntax", func(t *testing.T) string { return writeFile(t, "view.toml", "[canvas\nwidth=") }, errors.ErrCodeInvalidConfig},
		{"unknown json key", func(t *testing.T) string { return writeFile(t, "view.json", `{"colour": 1}`) }, errors.ErrCodeInvalidConfig},
		{"invalid value", func(t *testing.T) string { return writeFile(t, "view.yaml", "rendering:\n  mode: 3d\n") }, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadFile() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			cfg := Default()
			cfg.Layout.Algorithm = "spiral"
			cfg.Rendering.Animation = true
			cfg.Canvas.Background = "#101010"

			path := filepath.Join(t.TempDir(), "sub", "view"+ext)
			if err := cfg.SaveFile(path); err != nil {
				t.Fatalf("SaveFile() error: %v", err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if *got != *cfg {
				t.Errorf("round trip = %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 300, 200
	cfg.Layout.Spacing = 0
	cfg.Interaction.Clickable = false

	lo := cfg.LayoutOptions()
	if lo.Width != 300 || lo.Height != 200 {
		t.Errorf("LayoutOptions() canvas = %vx%v", lo.Width, lo.Height)
	}
	if lo.Spacing != layout.DefaultOptions().Spacing {
		t.Errorf("zero spacing should keep the default, got %v", lo.Spacing)
	}

	io := cfg.InteractionOptions()
	if io.Clickable || !io.Draggable || io.ClickThreshold != 3 {
		t.Errorf("InteractionOptions() = %+v", io)
	}
}

func TestConversionsOnCopy(t *testing.T) {
	get := func() Config {
		cfg := Default()
		cfg.Layout.Algorithm = "spiral"
		cfg.Layout.Iterations = 7
		return *cfg
	}
	if got := get().Algorithm(); got != layout.Spiral {
		t.Errorf("Algorithm() = %v, want spiral", got)
	}
	if got := get().LayoutOptions().Iterations; got != 7 {
		t.Errorf("LayoutOptions().Iterations = %d, want 7", got)
	}
	if !get().InteractionOptions().Zoomable {
		t.Error("InteractionOptions() should keep zoom on")
	}
}
