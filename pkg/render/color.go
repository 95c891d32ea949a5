package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Fallback colors used when a style color does not parse.
var (
	DefaultNodeColor  color.Color = colorful.Color{R: 0x4c / 255.0, G: 0x78 / 255.0, B: 0xa8 / 255.0}
	DefaultEdgeColor  color.Color = colorful.Color{R: 0x88 / 255.0, G: 0x88 / 255.0, B: 0x88 / 255.0}
	DefaultLabelColor color.Color = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	DefaultBackground color.Color = colorful.Color{R: 1, G: 1, B: 1}
)

// ParseColor parses a #rgb or #rrggbb color. It returns fallback when s is
// empty or malformed, and nil for "transparent" or "none".
func ParseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return fallback
	case "transparent", "none":
		return nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Outline returns the stroke color drawn around a filled node: the fill
// darkened in Lab space.
func Outline(fill color.Color) color.Color {
	c, ok := colorful.MakeColor(fill)
	if !ok {
		return DefaultLabelColor
	}
	return c.BlendLab(colorful.Color{}, 0.35).Clamped()
}

// Hex formats c as #rrggbb. A nil color formats as "none".
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cc.Hex()
}
