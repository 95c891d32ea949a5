// Package config loads and validates the engine configuration surface.
//
// Files may be TOML, YAML or JSON, chosen by extension. Keys that a file
// omits keep their defaults.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/interact"
	"github.com/matzehuels/hyperview/pkg/layout"
)

// Mode2D is the only supported rendering mode.
const Mode2D = "2d"

// Config is the complete engine configuration.
type Config struct {
	Canvas      Canvas      `toml:"canvas" yaml:"canvas" json:"canvas"`
	Layout      Layout      `toml:"layout" yaml:"layout" json:"layout"`
	Rendering   Rendering   `toml:"rendering" yaml:"rendering" json:"rendering"`
	Interaction Interaction `toml:"interaction" yaml:"interaction" json:"interaction"`
}

// Canvas sizes the drawing surface.
type Canvas struct {
	Width      float64 `toml:"width" yaml:"width" json:"width"`
	Height     float64 `toml:"height" yaml:"height" json:"height"`
	Background string  `toml:"background" yaml:"background" json:"background"`
}

// Layout selects and tunes the layout strategy.
type Layout struct {
	Algorithm  string  `toml:"algorithm" yaml:"algorithm" json:"algorithm"`
	Spacing    float64 `toml:"spacing" yaml:"spacing" json:"spacing"`
	Iterations int     `toml:"iterations" yaml:"iterations" json:"iterations"`
	// Margin insets the force layout's clamp rectangle from the canvas edges.
	Margin float64 `toml:"margin" yaml:"margin" json:"margin"`
}

// Rendering controls what the renderer draws.
type Rendering struct {
	Mode           string `toml:"mode" yaml:"mode" json:"mode"`
	ShowLabels     bool   `toml:"showLabels" yaml:"showLabels" json:"showLabels"`
	ShowEdgeLabels bool   `toml:"showEdgeLabels" yaml:"showEdgeLabels" json:"showEdgeLabels"`
	// Animation runs force layouts one iteration per frame.
	Animation bool `toml:"animation" yaml:"animation" json:"animation"`
}

// Interaction gates pointer behaviors.
type Interaction struct {
	Draggable bool `toml:"draggable" yaml:"draggable" json:"draggable"`
	Zoomable  bool `toml:"zoomable" yaml:"zoomable" json:"zoomable"`
	Clickable bool `toml:"clickable" yaml:"clickable" json:"clickable"`
}

// Default returns the documented defaults.
func Default() *Config {
	lo := layout.DefaultOptions()
	return &Config{
		Canvas: Canvas{Width: lo.Width, Height: lo.Height, Background: "#ffffff"},
		Layout: Layout{
			Algorithm:  string(layout.Force),
			Spacing:    lo.Spacing,
			Iterations: lo.Iterations,
			Margin:     lo.Margin,
		},
		Rendering:   Rendering{Mode: Mode2D, ShowLabels: true},
		Interaction: Interaction{Draggable: true, Zoomable: true, Clickable: true},
	}
}

// Validate checks the canvas, the layout name and the rendering mode.
func (c *Config) Validate() error {
	if err := errors.ValidateCanvasSize(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if _, err := layout.ParseAlgorithm(c.Layout.Algorithm); err != nil {
		return err
	}
	if c.Layout.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.spacing must not be negative: %v", c.Layout.Spacing)
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.iterations must not be negative: %d", c.Layout.Iterations)
	}
	if mode := strings.ToLower(strings.TrimSpace(c.Rendering.Mode)); mode != "" && mode != Mode2D {
		return errors.New(errors.ErrCodeUnsupported, "rendering.mode %q is not supported (only %q)", c.Rendering.Mode, Mode2D)
	}
	return nil
}

// Algorithm returns the parsed layout algorithm. Call Validate first.
func (c Config) Algorithm() layout.Algorithm {
	a, err := layout.ParseAlgorithm(c.Layout.Algorithm)
	if err != nil {
		return layout.Force
	}
	return a
}

// LayoutOptions converts the configuration into layout options.
func (c Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.Width = c.Canvas.Width
	opts.Height = c.Canvas.Height
	if c.Layout.Spacing > 0 {
		opts.Spacing = c.Layout.Spacing
	}
	if c.Layout.Iterations > 0 {
		opts.Iterations = c.Layout.Iterations
	}
	if c.Layout.Margin > 0 {
		opts.Margin = c.Layout.Margin
	}
	return opts
}

// InteractionOptions converts the configuration into controller options.
func (c Config) InteractionOptions() interact.Options {
	opts := interact.DefaultOptions()
	opts.Draggable = c.Interaction.Draggable
	opts.Zoomable = c.Interaction.Zoomable
	opts.Clickable = c.Interaction.Clickable
	return opts
}

// LoadFile reads a configuration file over the defaults and validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// SaveFile writes the configuration in the format its extension names.
func (c *Config) SaveFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create config directory")
		}
	}
	return os.WriteFile(path, data, 0o644)
}
