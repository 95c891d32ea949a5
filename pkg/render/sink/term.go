package sink

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/render"
)

type cell struct {
	ch rune
	fg color.Color
}

// Term is a character-cell surface for terminal output. The canvas of w by
// h units is mapped onto cols by rows cells; ToCell and ToCanvas convert
// between the two so pointer events reported in cells can drive the
// interaction controller in canvas coordinates.
type Term struct {
	w, h       float64
	cols, rows int
	cells      []cell
	bg         color.Color
}

// NewTerm creates a terminal surface showing a w by h canvas in cols by
// rows cells.
func NewTerm(cols, rows int, w, h float64) *Term {
	t := &Term{w: w, h: h}
	t.Resize(cols, rows)
	return t
}

// Resize changes the cell grid and clears it.
func (t *Term) Resize(cols, rows int) {
	t.cols, t.rows = max(cols, 1), max(rows, 1)
	t.cells = make([]cell, t.cols*t.rows)
	t.Clear(t.bg)
}

// Grid returns the cell grid dimensions.
func (t *Term) Grid() (cols, rows int) { return t.cols, t.rows }

// ToCell maps a canvas point to the cell containing it. The result may lie
// outside the grid.
func (t *Term) ToCell(p geometry.Point) (col, row int) {
	return int(math.Floor(p.X / t.cellW())), int(math.Floor(p.Y / t.cellH()))
}

// ToCanvas maps a cell to the canvas point at its center.
func (t *Term) ToCanvas(col, row int) geometry.Point {
	return geometry.Pt((float64(col)+0.5)*t.cellW(), (float64(row)+0.5)*t.cellH())
}

func (t *Term) cellW() float64 { return t.w / float64(t.cols) }
func (t *Term) cellH() float64 { return t.h / float64(t.rows) }

// Size returns the canvas size in canvas units.
func (t *Term) Size() (float64, float64) { return t.w, t.h }

// Clear blanks every cell and remembers c as the background.
func (t *Term) Clear(c color.Color) {
	t.bg = c
	for i := range t.cells {
		t.cells[i] = cell{ch: ' '}
	}
}

// FillRect fills the cells whose centers fall inside r with blocks.
func (t *Term) FillRect(r geometry.Rect, c color.Color) {
	t.fill('█', c, r.Contains)
}

// Circle draws a filled or hollow dot glyph over the covered cells.
func (t *Term) Circle(c geometry.Point, radius float64, p render.Paint) {
	ch := '●'
	if p.Fill == nil {
		ch = '○'
	}
	t.fill(ch, ink(p), func(q geometry.Point) bool { return q.Dist(c) <= radius })
	t.set(c, ch, ink(p))
}

// Rect draws a square glyph over the cells inside r.
func (t *Term) Rect(r geometry.Rect, p render.Paint) {
	t.fill('■', ink(p), r.Contains)
	t.set(r.Center(), '■', ink(p))
}

// Polyline draws slope glyphs between consecutive points, leaving gaps
// for dashed paints.
func (t *Term) Polyline(pts []geometry.Point, p render.Paint) {
	for i := 1; i < len(pts); i++ {
		t.line(pts[i-1], pts[i], ink(p), len(p.Dash) > 0)
	}
}

// Polygon fills the covered cells with a triangle or diamond glyph.
func (t *Term) Polygon(pts []geometry.Point, p render.Paint) {
	if len(pts) < 3 {
		return
	}
	ch := '◆'
	if len(pts) == 3 {
		ch = '▲'
	}
	t.fill(ch, ink(p), func(q geometry.Point) bool { return inside(pts, q) })
	t.set(geometry.Centroid(pts), ch, ink(p))
}

// Text writes s centered on the cell holding at.
func (t *Term) Text(at geometry.Point, s string, style render.TextStyle) {
	runes := []rune(s)
	col, row := t.ToCell(at)
	start := col - len(runes)/2
	for i, r := range runes {
		t.setCell(start+i, row, r, style.Color)
	}
}

// Plain returns the grid as text without styling.
func (t *Term) Plain() string {
	var b strings.Builder
	for row := range t.rows {
		for col := range t.cols {
			b.WriteRune(t.cells[row*t.cols+col].ch)
		}
		if row < t.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String returns the grid with lipgloss colors. Runs of cells sharing a
// foreground color are styled together.
func (t *Term) String() string {
	base := lipgloss.NewStyle()
	if t.bg != nil {
		base = base.Background(lipgloss.Color(render.Hex(t.bg)))
	}

	var b strings.Builder
	for row := range t.rows {
		var run strings.Builder
		var runColor color.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := base
			if runColor != nil {
				st = st.Foreground(lipgloss.Color(render.Hex(runColor)))
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := range t.cols {
			c := t.cells[row*t.cols+col]
			if render.Hex(c.fg) != render.Hex(runColor) {
				flush()
				runColor = c.fg
			}
			run.WriteRune(c.ch)
		}
		flush()
		if row < t.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (t *Term) set(p geometry.Point, ch rune, fg color.Color) {
	col, row := t.ToCell(p)
	t.setCell(col, row, ch, fg)
}

func (t *Term) setCell(col, row int, ch rune, fg color.Color) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return
	}
	t.cells[row*t.cols+col] = cell{ch: ch, fg: fg}
}

func (t *Term) fill(ch rune, fg color.Color, in func(geometry.Point) bool) {
	for row := range t.rows {
		for col := range t.cols {
			if in(t.ToCanvas(col, row)) {
				t.cells[row*t.cols+col] = cell{ch: ch, fg: fg}
			}
		}
	}
}

// line walks the segment in half-cell steps, picking a glyph from its
// slope. Dashed lines skip every other step.
func (t *Term) line(a, b geometry.Point, fg color.Color, dashed bool) {
	d := b.Sub(a)
	ch := slopeGlyph(d.X/t.cellW(), d.Y/t.cellH())
	step := math.Min(t.cellW(), t.cellH()) / 2
	n := int(math.Ceil(d.Len()/step)) + 1
	for i := range n {
		if dashed && i%4 >= 2 {
			continue
		}
		p := a.Lerp(b, float64(i)/float64(max(n-1, 1)))
		t.set(p, ch, fg)
	}
}

func slopeGlyph(dx, dy float64) rune {
	switch ax, ay := math.Abs(dx), math.Abs(dy); {
	case ay <= ax*0.4:
		return '─'
	case ax <= ay*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func ink(p render.Paint) color.Color {
	if p.Fill != nil {
		return p.Fill
	}
	return p.Stroke
}

// inside is the even-odd point-in-polygon test.
func inside(poly []geometry.Point, q geometry.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > q.Y) != (b.Y > q.Y) && q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
