package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/hyperview/pkg/fonts"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/render"
)

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithEmbeddedFont embeds the label font in the document, so labels look
// the same in every viewer.
func WithEmbeddedFont() SVGOption { return func(s *SVG) { s.embedFont = true } }

// SVG is a vector surface writing an SVG document with ajstarks/svgo.
// Coordinates are rounded to whole units.
type SVG struct {
	buf       bytes.Buffer
	canvas    *svg.SVG
	w, h      int
	embedFont bool
}

// NewSVG creates a vector surface of w by h units.
func NewSVG(w, h int, opts ...SVGOption) *SVG {
	s := &SVG{w: w, h: h}
	for _, opt := range opts {
		opt(s)
	}
	s.canvas = svg.New(&s.buf)
	s.begin()
	return s
}

func (s *SVG) begin() {
	s.buf.Reset()
	s.canvas.Start(s.w, s.h)
	if s.embedFont {
		s.canvas.Style("text/css", fmt.Sprintf(
			"@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.RegularTTFBase64()))
	}
}

func (s *SVG) Size() (float64, float64) { return float64(s.w), float64(s.h) }

// Clear discards everything drawn so far and starts a new document.
func (s *SVG) Clear(c color.Color) {
	s.begin()
	if c != nil {
		s.canvas.Rect(0, 0, s.w, s.h, "fill:"+render.Hex(c))
	}
}

func (s *SVG) FillRect(r geometry.Rect, c color.Color) {
	s.canvas.Rect(px(r.Min.X), px(r.Min.Y), px(r.Width()), px(r.Height()), "fill:"+render.Hex(c))
}

func (s *SVG) Circle(c geometry.Point, radius float64, p render.Paint) {
	s.canvas.Circle(px(c.X), px(c.Y), px(radius), style(p, true))
}

func (s *SVG) Rect(r geometry.Rect, p render.Paint) {
	s.canvas.Rect(px(r.Min.X), px(r.Min.Y), px(r.Width()), px(r.Height()), style(p, true))
}

func (s *SVG) Polyline(pts []geometry.Point, p render.Paint) {
	if len(pts) < 2 {
		return
	}
	xs, ys := coords(pts)
	if len(pts) == 2 {
		s.canvas.Line(xs[0], ys[0], xs[1], ys[1], style(p, false))
		return
	}
	s.canvas.Polyline(xs, ys, style(p, false))
}

func (s *SVG) Polygon(pts []geometry.Point, p render.Paint) {
	if len(pts) < 3 {
		return
	}
	xs, ys := coords(pts)
	s.canvas.Polygon(xs, ys, style(p, true))
}

func (s *SVG) Text(at geometry.Point, str string, t render.TextStyle) {
	s.canvas.Text(px(at.X), px(at.Y+t.Size), str, fmt.Sprintf(
		"fill:%s;font-size:%.0fpx;font-family:%s;text-anchor:middle",
		render.Hex(t.Color), t.Size, fonts.FallbackFontFamily))
}

// Bytes returns the document drawn since the last Clear.
func (s *SVG) Bytes() []byte {
	out := make([]byte, 0, s.buf.Len()+8)
	out = append(out, s.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

func px(v float64) int { return int(math.Round(v)) }

func coords(pts []geometry.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	return xs, ys
}

func style(p render.Paint, fill bool) string {
	var parts []string
	if fill && p.Fill != nil {
		parts = append(parts, "fill:"+render.Hex(p.Fill))
	} else {
		parts = append(parts, "fill:none")
	}
	if p.Stroke != nil && p.LineWidth > 0 {
		parts = append(parts, "stroke:"+render.Hex(p.Stroke), fmt.Sprintf("stroke-width:%g", p.LineWidth))
		if len(p.Dash) > 0 {
			dash := make([]string, len(p.Dash))
			for i, d := range p.Dash {
				dash[i] = fmt.Sprintf("%g", d)
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
		}
	}
	return strings.Join(parts, ";")
}
