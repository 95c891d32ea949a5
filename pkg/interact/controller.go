package interact

import (
	"math"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/observability"
)

// State is the pointer state of a Controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Options gates the controller's behaviors.
type Options struct {
	Draggable bool
	Zoomable  bool
	Clickable bool
	// ClickThreshold is the largest pointer travel, in surface units,
	// between press and release that still counts as a click.
	ClickThreshold float64
	// ZoomStep is the scale applied per wheel notch.
	ZoomStep float64
}

// DefaultOptions enables every behavior.
func DefaultOptions() Options {
	return Options{
		Draggable:      true,
		Zoomable:       true,
		Clickable:      true,
		ClickThreshold: 3,
		ZoomStep:       1.1,
	}
}

// ClickListener receives node-click notifications.
type ClickListener func(n *hypergraph.Node)

// Controller turns pointer input into node drags, click notifications and
// zoom.
//
// It only ever edits node positions through the model; it never touches
// hyperedges, removes nodes or runs a layout. Controller is not safe for
// concurrent use.
type Controller struct {
	opts       Options
	state      State
	pressNode  string
	pressAt    geometry.Point
	offset     geometry.Point
	travelled  float64
	listeners  []ClickListener
	invalidate func()
	hooks      observability.InteractionHooks
}

// New creates an idle controller. Zero ClickThreshold and ZoomStep fall
// back to the defaults.
func New(opts Options) *Controller {
	d := DefaultOptions()
	if opts.ClickThreshold <= 0 {
		opts.ClickThreshold = d.ClickThreshold
	}
	if opts.ZoomStep <= 1 || math.IsInf(opts.ZoomStep, 0) {
		opts.ZoomStep = d.ZoomStep
	}
	return &Controller{opts: opts}
}

// Options returns the active options.
func (c *Controller) Options() Options { return c.opts }

// SetOptions replaces the gating flags. An active drag is abandoned if
// dragging is switched off.
func (c *Controller) SetOptions(opts Options) {
	c.opts = New(opts).opts
	if !c.opts.Draggable && c.state == Dragging {
		c.state = Idle
	}
}

// State returns the current pointer state.
func (c *Controller) State() State { return c.state }

// Dragged returns the ID of the node being dragged, or "" when idle.
func (c *Controller) Dragged() string {
	if c.state != Dragging {
		return ""
	}
	return c.pressNode
}

// OnNodeClick registers a listener for node clicks. Listeners run
// synchronously, in registration order, from Release.
func (c *Controller) OnNodeClick(fn ClickListener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// OnInvalidate sets the callback run after every position edit, typically
// a re-render.
func (c *Controller) OnInvalidate(fn func()) { c.invalidate = fn }

// WithHooks overrides the globally registered interaction hooks.
func (c *Controller) WithHooks(h observability.InteractionHooks) *Controller {
	c.hooks = h
	return c
}

// Press handles a pointer press at p. Over a node it records the press
// offset and, when dragging is enabled, enters Dragging.
func (c *Controller) Press(m *hypergraph.Model, p geometry.Point) {
	c.pressAt = p
	c.travelled = 0
	c.pressNode = ""
	c.state = Idle

	n := HitTest(m, p)
	if n == nil {
		return
	}
	c.pressNode = n.ID
	c.offset = p.Sub(n.Pos)
	if c.opts.Draggable {
		c.state = Dragging
		c.hooksOrGlobal().OnDragStart(n.ID)
	}
}

// Move handles pointer movement. While dragging, the node is placed at the
// pointer minus the press offset.
func (c *Controller) Move(m *hypergraph.Model, p geometry.Point) {
	c.travelled = math.Max(c.travelled, p.Dist(c.pressAt))
	if c.state != Dragging {
		return
	}
	if m.SetPosition(c.pressNode, p.Sub(c.offset)) {
		c.notify()
	}
}

// Release handles a pointer release at p and returns to Idle. If the
// pointer stayed within ClickThreshold of the press and the press hit a
// node, a click is emitted for that node (when clicks are enabled). It
// returns the clicked node, or nil.
func (c *Controller) Release(m *hypergraph.Model, p geometry.Point) *hypergraph.Node {
	c.travelled = math.Max(c.travelled, p.Dist(c.pressAt))
	wasDragging := c.state == Dragging
	id := c.pressNode
	c.state = Idle
	c.pressNode = ""

	if id == "" {
		return nil
	}
	if wasDragging {
		c.hooksOrGlobal().OnDragEnd(id, c.travelled)
	}
	if c.travelled > c.opts.ClickThreshold || !c.opts.Clickable {
		return nil
	}
	n, ok := m.Node(id)
	if !ok {
		return nil
	}
	c.hooksOrGlobal().OnClick(id)
	for _, fn := range c.listeners {
		fn(n)
	}
	return n
}

// Wheel handles a wheel event at p. A negative delta zooms in by ZoomStep,
// a positive delta zooms out by its inverse, and zero does nothing. It
// reports whether the model changed.
func (c *Controller) Wheel(m *hypergraph.Model, delta float64, p geometry.Point) bool {
	switch {
	case delta < 0:
		return c.Zoom(m, c.opts.ZoomStep, p)
	case delta > 0:
		return c.Zoom(m, 1/c.opts.ZoomStep, p)
	}
	return false
}

// Zoom re-projects every node about center:
// newPos = center + (oldPos - center) * scale.
// It does nothing when zooming is disabled or scale is not a finite
// positive number, and reports whether the model changed.
func (c *Controller) Zoom(m *hypergraph.Model, scale float64, center geometry.Point) bool {
	if !c.opts.Zoomable || !(scale > 0) || math.IsInf(scale, 0) || !center.IsFinite() {
		return false
	}
	m.TransformPositions(func(p geometry.Point) geometry.Point {
		return center.Add(p.Sub(center).Scale(scale))
	})
	c.hooksOrGlobal().OnZoom(scale)
	c.notify()
	return true
}

func (c *Controller) notify() {
	if c.invalidate != nil {
		c.invalidate()
	}
}

func (c *Controller) hooksOrGlobal() observability.InteractionHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.Interaction()
}
