package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/layout"
	"github.com/matzehuels/hyperview/pkg/render/sink"
	"github.com/matzehuels/hyperview/pkg/visualizer"
)

const (
	// footerRows are the terminal rows reserved below the canvas.
	footerRows = 2

	defaultFrameInterval = 33 * time.Millisecond

	viewHelp = "drag nodes · wheel zoom · 1-5 layout · a animate · l labels · e edge labels · q quit"
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		algorithm string
		watch     bool
		interval  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Explore a hypergraph interactively in the terminal",
		Long: `Explore a hypergraph interactively in the terminal.

Drag nodes with the mouse, zoom with the wheel, and click a node to show its
details. Keys 1-5 switch between the force, circular, grid, hierarchical and
spiral layouts; 'a' toggles animated force layouts.

With --watch the view reloads whenever the graph file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], algorithm, watch, interval)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "initial layout (default: keep file positions)")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the graph file changes")
	cmd.Flags().DurationVar(&interval, "interval", defaultFrameInterval, "frame interval")

	return cmd
}

// runView opens the graph in a full-screen bubbletea program.
func (c *CLI) runView(ctx context.Context, input, algorithm string, watch bool, interval time.Duration) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	_, m, err := readGraph(input)
	if err != nil {
		return err
	}

	// Logging to stderr would tear the alternate screen.
	c.Logger.SetOutput(io.Discard)

	model, err := newViewModel(ctx, cfg, interval, visualizer.WithModel(m))
	if err != nil {
		return err
	}
	defer model.vis.Close()

	if algorithm != "" {
		algo, err := layout.ParseAlgorithm(algorithm)
		if err != nil {
			return err
		}
		if err := model.vis.ApplyLayout(ctx, algo); err != nil {
			return err
		}
	}

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watch {
		stop, err := watchGraph(ctx, input, func(m *hypergraph.Model, err error) {
			p.Send(reloadMsg{model: m, err: err})
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

type tickMsg struct{}

// reloadMsg carries a re-read graph file into the event loop.
type reloadMsg struct {
	model *hypergraph.Model
	err   error
}

// viewModel is the bubbletea model of the viewer. Pointer events are
// reported in cells and mapped back to canvas coordinates through the
// terminal surface.
type viewModel struct {
	ctx      context.Context
	vis      *visualizer.Visualizer
	term     *sink.Term
	interval time.Duration
	status   string
	warn     bool
}

func newViewModel(ctx context.Context, cfg *config.Config, interval time.Duration, opts ...visualizer.Option) (*viewModel, error) {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	if cfg == nil {
		cfg = config.Default()
	}
	term := sink.NewTerm(80, 24-footerRows, cfg.Canvas.Width, cfg.Canvas.Height)
	m := &viewModel{ctx: ctx, term: term, interval: interval}

	opts = append(opts, visualizer.WithSurface(term), visualizer.WithInterval(interval))
	vis, err := visualizer.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	vis.OnNodeClick(func(n *hypergraph.Node) {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		m.setStatus(false, "clicked %s (%.0f, %.0f)", label, n.Pos.X, n.Pos.Y)
	})
	m.vis = vis
	return m, nil
}

func (m *viewModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *viewModel) Init() tea.Cmd {
	return m.tick()
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vis.View(func(*hypergraph.Model) {
			m.term.Resize(msg.Width, msg.Height-footerRows)
		})
		m.vis.Render()
	case tea.KeyMsg:
		return m, m.key(msg.String())
	case tea.MouseMsg:
		m.mouse(msg)
	case reloadMsg:
		if msg.err != nil {
			m.setStatus(true, "reload failed: %v", msg.err)
			break
		}
		m.vis.Replace(msg.model)
		m.setStatus(false, "reloaded %d nodes, %d hyperedges", msg.model.NodeCount(), msg.model.EdgeCount())
	case tickMsg:
		if m.vis.LoopRunning() && !m.vis.Animating() {
			m.vis.StopLoop()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *viewModel) key(k string) tea.Cmd {
	cfg := m.vis.Config()
	switch k {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "1", "2", "3", "4", "5":
		algo := layout.Algorithms[k[0]-'1']
		if err := m.vis.ApplyLayout(m.ctx, algo); err != nil {
			m.setStatus(true, "%v", err)
		} else {
			m.setStatus(false, "%s layout", algo)
		}
	case "a":
		m.vis.SetAnimation(!cfg.Rendering.Animation)
		m.setStatus(false, "animation %s", onOff(!cfg.Rendering.Animation))
	case "l":
		m.vis.SetLabels(!cfg.Rendering.ShowLabels)
		m.setStatus(false, "labels %s", onOff(!cfg.Rendering.ShowLabels))
	case "e":
		m.vis.SetEdgeLabels(!cfg.Rendering.ShowEdgeLabels)
		m.setStatus(false, "edge labels %s", onOff(!cfg.Rendering.ShowEdgeLabels))
	}
	return nil
}

func (m *viewModel) mouse(msg tea.MouseMsg) {
	p := m.term.ToCanvas(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.vis.Wheel(-1, p)
	case msg.Button == tea.MouseButtonWheelDown:
		m.vis.Wheel(1, p)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.vis.Press(p)
	case msg.Action == tea.MouseActionMotion:
		m.vis.Move(p)
	case msg.Action == tea.MouseActionRelease:
		m.vis.Release(p)
	}
}

func (m *viewModel) View() string {
	var canvas string
	m.vis.View(func(*hypergraph.Model) { canvas = m.term.String() })

	var b strings.Builder
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(viewHelp))
	b.WriteString("\n")
	switch {
	case m.warn:
		b.WriteString(StyleWarning.Render(m.status))
	case m.status != "":
		b.WriteString(StyleHighlight.Render(m.status))
	}
	return b.String()
}

func (m *viewModel) setStatus(warn bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.warn = warn
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
