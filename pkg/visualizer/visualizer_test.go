package visualizer

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	hio "github.com/matzehuels/hyperview/pkg/io"
	"github.com/matzehuels/hyperview/pkg/layout"
	"github.com/matzehuels/hyperview/pkg/observability"
	"github.com/matzehuels/hyperview/pkg/render"
)

// frameCounter counts Clear calls, one per rendered frame.
type frameCounter struct {
	frames atomic.Int64
}

func (f *frameCounter) Size() (float64, float64) { return 800, 600 }
func (f *frameCounter) Clear(color.Color) { f.frames.Add(1) }
func (f *frameCounter) FillRect(geometry.Rect, color.Color) {}
func (f *frameCounter) Circle(geometry.Point, float64, render.Paint) {}
func (f *frameCounter) Rect(geometry.Rect, render.Paint) {}
func (f *frameCounter) Polyline([]geometry.Point, render.Paint) {}
func (f *frameCounter) Polygon([]geometry.Point, render.Paint) {}
func (f *frameCounter) Text(geometry.Point, string, render.TextStyle) {}

func sample(t *testing.T) *hypergraph.Model {
	t.Helper()
	m := hypergraph.New()
	require.NoError(t, m.AddNode(hypergraph.Node{ID: "a", Pos: geometry.Pt(100, 100)}))
	require.NoError(t, m.AddNode(hypergraph.Node{ID: "b", Pos: geometry.Pt(300, 100)}))
	require.NoError(t, m.AddNode(hypergraph.Node{ID: "c", Label: "Charlie", Pos: geometry.Pt(200, 300)}))
	require.NoError(t, m.AddEdge(hypergraph.Hyperedge{ID: "abc", NodeIDs: []string{"a", "b", "c"}}))
	return m
}

func newView(t *testing.T, cfg *config.Config, s render.Surface) *Visualizer {
	t.Helper()
	v, err := New(cfg, WithModel(sample(t)), WithSurface(s), WithInterval(time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

func TestNew(t *testing.T) {
	v, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, *config.Default(), v.Config())
	assert.False(t, v.Render(), "no surface attached")

	bad := config.Default()
	bad.Canvas.Width = -1
	_, err = New(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCanvas))
}

func TestUpdateRendersWhenIdle(t *testing.T) {
	s := &frameCounter{}
	v := newView(t, nil, s)

	require.NoError(t, v.Update(func(m *hypergraph.Model) error {
		return m.AddNode(hypergraph.Node{ID: "d"})
	}))
	assert.EqualValues(t, 1, s.frames.Load())

	v.View(func(m *hypergraph.Model) { assert.Equal(t, 4, m.NodeCount()) })
}

func TestApplyLayout(t *testing.T) {
	s := &frameCounter{}
	v := newView(t, nil, s)

	require.NoError(t, v.ApplyLayout(context.Background(), layout.Grid))
	v.View(func(m *hypergraph.Model) {
		a, _ := m.Node("a")
		// 3 nodes: 2 columns, 2 rows centered on (400,300).
		assert.InDelta(t, 350, a.Pos.X, 1e-9)
		assert.InDelta(t, 250, a.Pos.Y, 1e-9)
	})
	assert.EqualValues(t, 1, s.frames.Load())

	err := v.ApplyLayout(context.Background(), "radial")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout))
}

func TestConfiguredLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Algorithm = "circular"
	v := newView(t, cfg, &frameCounter{})

	require.NoError(t, v.Layout(context.Background()))
	v.View(func(m *hypergraph.Model) {
		a, _ := m.Node("a")
		assert.InDelta(t, 400, a.Pos.X, 1e-9)
		assert.InDelta(t, 300-layout.CircleRadius(cfg.LayoutOptions()), a.Pos.Y, 1e-9)
	})
}

func TestDragAndClick(t *testing.T) {
	v := newView(t, nil, &frameCounter{})

	var clicks []string
	v.OnNodeClick(func(n *hypergraph.Node) {
		// Listeners run unlocked and may call back in.
		v.View(func(m *hypergraph.Model) { clicks = append(clicks, n.ID) })
	})

	v.Press(geometry.Pt(102, 102))
	assert.Equal(t, "a", v.Dragging())
	v.Move(geometry.Pt(150, 160))
	assert.Nil(t, v.Release(geometry.Pt(150, 160)))
	v.View(func(m *hypergraph.Model) {
		a, _ := m.Node("a")
		assert.Equal(t, geometry.Pt(148, 158), a.Pos)
	})
	assert.Empty(t, clicks)

	v.Press(geometry.Pt(300, 100))
	n := v.Release(geometry.Pt(301, 101))
	require.NotNil(t, n)
	assert.Equal(t, "b", n.ID)
	assert.Equal(t, []string{"b"}, clicks)

	v.Press(geometry.Pt(700, 500))
	assert.Nil(t, v.Release(geometry.Pt(700, 500)))
	assert.Len(t, clicks, 1, "background click emits nothing")
}

func TestInteractionGating(t *testing.T) {
	cfg := config.Default()
	cfg.Interaction.Draggable = false
	cfg.Interaction.Zoomable = false
	v := newView(t, cfg, &frameCounter{})

	v.Press(geometry.Pt(100, 100))
	v.Move(geometry.Pt(200, 200))
	v.Release(geometry.Pt(200, 200))
	assert.False(t, v.Wheel(-1, geometry.Pt(0, 0)))
	v.View(func(m *hypergraph.Model) {
		a, _ := m.Node("a")
		assert.Equal(t, geometry.Pt(100, 100), a.Pos)
	})
}

func TestWheel(t *testing.T) {
	v := newView(t, nil, &frameCounter{})
	require.True(t, v.Wheel(-1, geometry.Pt(100, 100)))
	v.View(func(m *hypergraph.Model) {
		b, _ := m.Node("b")
		assert.InDelta(t, 100+200*1.1, b.Pos.X, 1e-9)
		a, _ := m.Node("a")
		assert.Equal(t, geometry.Pt(100, 100), a.Pos, "the pointer is the fixed point")
	})
}

func TestAnimatedLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Rendering.Animation = true
	cfg.Layout.Iterations = 5
	s := &frameCounter{}
	v := newView(t, cfg, s)

	require.NoError(t, v.ApplyLayout(context.Background(), layout.Force))
	assert.True(t, v.LoopRunning())
	require.Eventually(t, func() bool { return !v.Animating() }, 2*time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, s.frames.Load(), int64(5))

	v.StopLoop()
	v.StopLoop()
	assert.False(t, v.LoopRunning())
	after := s.frames.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, s.frames.Load(), "no frames after StopLoop returns")
}

// layoutRecorder collects the errors reported at layout completion.
type layoutRecorder struct {
	observability.NoopLayoutHooks
	mu   sync.Mutex
	errs []error
}

func (r *layoutRecorder) OnLayoutComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *layoutRecorder) completed() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

func TestAnimatedLayoutCancelled(t *testing.T) {
	rec := &layoutRecorder{}
	observability.SetLayoutHooks(rec)
	t.Cleanup(observability.Reset)

	cfg := config.Default()
	cfg.Rendering.Animation = true
	v, err := New(cfg, WithModel(sample(t)), WithSurface(&frameCounter{}), WithInterval(time.Hour))
	require.NoError(t, err)
	t.Cleanup(v.Close)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, v.ApplyLayout(ctx, layout.Force))
	require.True(t, v.Animating())

	cancel()
	require.Eventually(t, func() bool { return !v.Animating() }, 2*time.Second, time.Millisecond)
	assert.False(t, v.LoopRunning())
	errs := rec.completed()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)

	// A fresh loop on a live context animates normally again.
	require.NoError(t, v.ApplyLayout(context.Background(), layout.Force))
	assert.True(t, v.Animating())
	assert.True(t, v.LoopRunning())
}

func TestManualFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Rendering.Animation = true
	cfg.Layout.Iterations = 3
	v := newView(t, cfg, &frameCounter{})

	require.NoError(t, v.ApplyLayout(context.Background(), layout.Force))
	v.StopLoop()
	for v.Animating() {
		v.Frame()
	}
	assert.False(t, v.Animating())
}

func TestExport(t *testing.T) {
	s := &frameCounter{}
	v := newView(t, nil, s)

	png, err := v.Export(FormatPNG, ExportOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	svg, err := v.Export(FormatSVG, ExportOptions{EmbedFont: true})
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Charlie")

	dot, err := v.Export(FormatDOT, ExportOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "graph G {"))

	js, err := v.Export(FormatJSON, ExportOptions{})
	require.NoError(t, err)
	m, err := hio.ReadJSON(bytes.NewReader(js))
	require.NoError(t, err)
	assert.Equal(t, 3, m.NodeCount())

	_, err = v.Export("gif", ExportOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	assert.EqualValues(t, 0, s.frames.Load(), "export must not draw on the live surface")
	assert.True(t, v.Render())
	assert.EqualValues(t, 1, s.frames.Load())
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("bmp")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}
