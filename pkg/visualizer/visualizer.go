package visualizer

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/interact"
	"github.com/matzehuels/hyperview/pkg/layout"
	"github.com/matzehuels/hyperview/pkg/observability"
	"github.com/matzehuels/hyperview/pkg/render"
)

// Option configures a Visualizer.
type Option func(*Visualizer)

// WithModel starts the view on m instead of an empty model.
func WithModel(m *hypergraph.Model) Option {
	return func(v *Visualizer) {
		if m != nil {
			v.model = m
		}
	}
}

// WithSurface attaches s from the start.
func WithSurface(s render.Surface) Option {
	return func(v *Visualizer) { v.renderer.Attach(s) }
}

// WithLogger sets the logger for layout and loop lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(v *Visualizer) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithInterval sets the render loop frame interval.
func WithInterval(d time.Duration) Option {
	return func(v *Visualizer) { v.interval = d }
}

// Visualizer owns the model, renderer, interaction controller and render
// loop of one view.
//
// Every method is safe for concurrent use: model access is serialized
// through one mutex, standing in for a single event/render thread. Input
// events render immediately while no loop is running; with the loop running
// they are picked up by the next frame. Click listeners run after the lock
// is released, so they may call back into the Visualizer.
type Visualizer struct {
	mu       sync.Mutex
	cfg      config.Config
	model    *hypergraph.Model
	renderer *render.Renderer
	ctrl     *interact.Controller
	loop     *render.Loop
	interval time.Duration
	logger   *log.Logger

	anim      *layout.Simulation
	animStart time.Time
	dirty     bool

	loopGen   uint64
	loopWatch func() bool

	clicked   []*hypergraph.Node
	listeners []interact.ClickListener
}

// New creates a view from cfg; a nil cfg means [config.Default]. It fails if
// cfg does not validate.
func New(cfg *config.Config, opts ...Option) (*Visualizer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	v := &Visualizer{
		cfg:   *cfg,
		model: hypergraph.New(),
		renderer: render.New(
			render.WithBackground(cfg.Canvas.Background),
			render.WithLabels(cfg.Rendering.ShowLabels),
			render.WithEdgeLabels(cfg.Rendering.ShowEdgeLabels),
		),
		ctrl:   interact.New(cfg.InteractionOptions()),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.ctrl.OnInvalidate(func() { v.dirty = true })
	v.ctrl.OnNodeClick(func(n *hypergraph.Node) { v.clicked = append(v.clicked, n) })
	v.loop = render.NewLoop(v.Frame, v.interval)
	return v, nil
}

// Config returns a copy of the active configuration.
func (v *Visualizer) Config() config.Config {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg
}

// Update runs fn with exclusive access to the model and re-renders.
func (v *Visualizer) Update(fn func(m *hypergraph.Model) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	err := fn(v.model)
	v.dirty = true
	v.renderIfIdle()
	return err
}

// View runs fn with exclusive access to the model. fn must not mutate it.
func (v *Visualizer) View(fn func(m *hypergraph.Model)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.model)
}

// Replace swaps in a new model, abandoning any animated layout.
func (v *Visualizer) Replace(m *hypergraph.Model) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = m
	v.finishAnimation(context.Canceled)
	v.dirty = true
	v.renderIfIdle()
}

// Attach draws subsequent frames on s.
func (v *Visualizer) Attach(s render.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.Attach(s)
	v.dirty = true
	v.renderIfIdle()
}

// Detach removes the surface; rendering becomes a no-op.
func (v *Visualizer) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.Detach()
}

// SetLabels toggles node labels.
func (v *Visualizer) SetLabels(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.Rendering.ShowLabels = on
	v.renderer.SetLabels(on)
	v.dirty = true
	v.renderIfIdle()
}

// SetEdgeLabels toggles hyperedge labels.
func (v *Visualizer) SetEdgeLabels(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.Rendering.ShowEdgeLabels = on
	v.renderer.SetEdgeLabels(on)
	v.dirty = true
	v.renderIfIdle()
}

// SetAnimation toggles animated force layouts for later ApplyLayout calls.
func (v *Visualizer) SetAnimation(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg.Rendering.Animation = on
}

// ApplyLayout repositions the model with algo.
//
// With animation enabled, a force layout is only prepared here and then
// advances one iteration per Frame; the render loop is started if needed.
// Every other case runs to completion before ApplyLayout returns.
func (v *Visualizer) ApplyLayout(ctx context.Context, algo layout.Algorithm) error {
	algo, err := layout.ParseAlgorithm(string(algo))
	if err != nil {
		return err
	}
	opts := v.layoutOptions()

	v.mu.Lock()
	v.finishAnimation(context.Canceled)
	if algo == layout.Force && v.cfg.Rendering.Animation && v.model.NodeCount() > 0 {
		sim, err := layout.NewSimulation(v.model, opts)
		if err != nil {
			v.mu.Unlock()
			return err
		}
		v.anim, v.animStart = sim, time.Now()
		observability.Layout().OnLayoutStart(ctx, string(algo), v.model.NodeCount())
		v.logger.Debug("animated layout started", "iterations", sim.Remaining())
		v.mu.Unlock()
		v.StartLoop(ctx)
		return nil
	}
	defer v.mu.Unlock()

	if err := layout.Apply(ctx, v.model, algo, opts); err != nil {
		return err
	}
	v.logger.Debug("layout applied", "algorithm", algo, "nodes", v.model.NodeCount())
	v.dirty = true
	v.renderIfIdle()
	return nil
}

// Layout applies the configured algorithm.
func (v *Visualizer) Layout(ctx context.Context) error {
	cfg := v.Config()
	return v.ApplyLayout(ctx, cfg.Algorithm())
}

// Animating reports whether an animated layout is in progress.
func (v *Visualizer) Animating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.anim != nil
}

// Render draws one frame and reports whether a surface was attached.
func (v *Visualizer) Render() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty = false
	return v.renderer.Render(v.model)
}

// Frame is one render loop tick: it advances any animated layout by one
// iteration and draws.
func (v *Visualizer) Frame() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.anim != nil && !v.anim.Step() {
		v.finishAnimation(nil)
	}
	v.dirty = false
	v.renderer.Render(v.model)
}

// StartLoop starts the continuous render loop; it is a no-op if already
// running. The loop stops when ctx is cancelled, which also abandons any
// animated layout in progress.
func (v *Visualizer) StartLoop(ctx context.Context) {
	if !v.loop.Start(ctx) {
		return
	}
	v.logger.Debug("render loop started")
	done := v.loop.Done()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loopGen++
	gen := v.loopGen
	if v.loopWatch != nil {
		v.loopWatch()
	}
	v.loopWatch = context.AfterFunc(ctx, func() {
		v.loopCancelled(gen, done, context.Cause(ctx))
	})
}

// StopLoop stops the render loop and waits for the frame in flight. It is
// safe to call repeatedly; no frame is drawn after it returns. An animated
// layout survives StopLoop and can still be advanced with Frame.
func (v *Visualizer) StopLoop() {
	v.mu.Lock()
	v.loopGen++
	if v.loopWatch != nil {
		v.loopWatch()
		v.loopWatch = nil
	}
	v.mu.Unlock()

	if v.loop.Running() {
		v.logger.Debug("render loop stopped")
	}
	v.loop.Stop()
}

// LoopRunning reports whether the render loop is active.
func (v *Visualizer) LoopRunning() bool { return v.loop.Running() }

// Close stops the render loop.
func (v *Visualizer) Close() { v.StopLoop() }

// OnNodeClick registers a click listener.
func (v *Visualizer) OnNodeClick(fn interact.ClickListener) {
	if fn == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Press forwards a pointer press in surface coordinates.
func (v *Visualizer) Press(p geometry.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.Press(v.model, p)
}

// Move forwards a pointer move.
func (v *Visualizer) Move(p geometry.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.Move(v.model, p)
	v.renderIfIdle()
}

// Release forwards a pointer release and dispatches a click, if any, to
// the listeners. It returns the clicked node or nil.
func (v *Visualizer) Release(p geometry.Point) *hypergraph.Node {
	v.mu.Lock()
	n := v.ctrl.Release(v.model, p)
	v.renderIfIdle()
	clicked, listeners := v.clicked, v.listeners
	v.clicked = nil
	v.mu.Unlock()

	for _, c := range clicked {
		for _, fn := range listeners {
			fn(c)
		}
	}
	return n
}

// Wheel forwards a wheel event.
func (v *Visualizer) Wheel(delta float64, p geometry.Point) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	changed := v.ctrl.Wheel(v.model, delta, p)
	v.renderIfIdle()
	return changed
}

// Dragging returns the ID of the node being dragged, or "".
func (v *Visualizer) Dragging() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Dragged()
}

func (v *Visualizer) layoutOptions() layout.Options {
	v.mu.Lock()
	defer v.mu.Unlock()
	opts := v.cfg.LayoutOptions()
	opts.Logger = v.logger
	return opts
}

// renderIfIdle draws pending changes unless the loop owns redraw.
// Callers hold v.mu.
func (v *Visualizer) renderIfIdle() {
	if !v.dirty || v.loop.Running() {
		return
	}
	v.dirty = false
	v.renderer.Render(v.model)
}

// loopCancelled runs once the context of loop run gen is done. After that
// run exits, nothing would advance the animation, so it is finished with
// cause unless a newer run has taken over.
func (v *Visualizer) loopCancelled(gen uint64, done <-chan struct{}, cause error) {
	if done != nil {
		<-done
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.loopGen {
		return
	}
	v.loopWatch = nil
	v.finishAnimation(cause)
	v.logger.Debug("render loop cancelled", "err", cause)
}

// finishAnimation ends the animated layout, reporting err to the layout
// hooks. Callers hold v.mu.
func (v *Visualizer) finishAnimation(err error) {
	if v.anim == nil {
		return
	}
	observability.Layout().OnLayoutComplete(context.Background(), string(layout.Force), v.anim.Done(), time.Since(v.animStart), err)
	v.logger.Debug("animated layout finished", "iterations", v.anim.Done(), "err", err)
	v.anim = nil
}
