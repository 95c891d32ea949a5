package sink

import (
	"bytes"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/hyperview/pkg/fonts"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/render"
)

// PNGOption configures a PNG surface.
type PNGOption func(*PNG)

// WithScale sets the pixel density (default 1.0). A scale of 2.0 produces a
// 2x resolution image while drawing in the same surface coordinates.
func WithScale(s float64) PNGOption {
	return func(p *PNG) {
		if s > 0 {
			p.scale = s
		}
	}
}

// PNG is a raster surface backed by a fogleman/gg context.
type PNG struct {
	dc    *gg.Context
	w, h  float64
	scale float64
}

// NewPNG creates a raster surface of w by h surface units.
func NewPNG(w, h int, opts ...PNGOption) *PNG {
	p := &PNG{w: float64(w), h: float64(h), scale: 1}
	for _, opt := range opts {
		opt(p)
	}
	p.dc = gg.NewContext(int(p.w*p.scale), int(p.h*p.scale))
	p.dc.Scale(p.scale, p.scale)
	return p
}

func (p *PNG) Size() (float64, float64) { return p.w, p.h }

func (p *PNG) Clear(c color.Color) {
	if c == nil {
		c = color.Transparent
	}
	p.dc.Push()
	p.dc.Identity()
	p.dc.SetColor(c)
	p.dc.Clear()
	p.dc.Pop()
}

func (p *PNG) FillRect(r geometry.Rect, c color.Color) {
	p.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *PNG) Circle(c geometry.Point, radius float64, paint render.Paint) {
	p.dc.DrawCircle(c.X, c.Y, radius)
	p.paint(paint, true)
}

func (p *PNG) Rect(r geometry.Rect, paint render.Paint) {
	p.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
	p.paint(paint, true)
}

func (p *PNG) Polyline(pts []geometry.Point, paint render.Paint) {
	if p.path(pts) {
		p.paint(paint, false)
	}
}

func (p *PNG) Polygon(pts []geometry.Point, paint render.Paint) {
	if p.path(pts) {
		p.dc.ClosePath()
		p.paint(paint, true)
	}
}

func (p *PNG) Text(at geometry.Point, s string, t render.TextStyle) {
	face, err := fonts.Face(t.Size)
	if err != nil {
		return
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(t.Color)
	p.dc.DrawStringAnchored(s, at.X, at.Y, 0.5, 1)
}

// Image returns the rendered image.
func (p *PNG) Image() image.Image { return p.dc.Image() }

// Encode returns the rendered image as PNG bytes.
func (p *PNG) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *PNG) path(pts []geometry.Point) bool {
	if len(pts) < 2 {
		return false
	}
	p.dc.NewSubPath()
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	return true
}

func (p *PNG) paint(paint render.Paint, fill bool) {
	stroke := paint.Stroke != nil && paint.LineWidth > 0
	if fill && paint.Fill != nil {
		p.dc.SetColor(paint.Fill)
		if stroke {
			p.dc.FillPreserve()
		} else {
			p.dc.Fill()
		}
	}
	if stroke {
		p.dc.SetColor(paint.Stroke)
		p.dc.SetLineWidth(paint.LineWidth)
		p.dc.SetDash(paint.Dash...)
		p.dc.Stroke()
		p.dc.SetDash()
	}
	p.dc.ClearPath()
}
