package layout

import (
	"context"
	"math"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// goldenAngle separates coincident pairs along a deterministic direction.
const goldenAngle = 2.399963229728653

// Simulation runs the force-directed layout one iteration at a time.
//
// Each iteration takes a snapshot of the node positions and accumulates two
// displacements from it: an inverse-square repulsion for every unordered
// node pair, and an attraction that moves every member of a live hyperedge
// a fraction of the way toward the hyperedge centroid. Both are applied
// together and every position is then clamped into the layout bounds.
// With this scheme a lone two-node hyperedge settles at a distance of
// exactly Spacing.
//
// The model is re-read on every Step, so nodes and hyperedges added or
// removed between steps are picked up.
type Simulation struct {
	model  *hypergraph.Model
	opts   Options
	bounds geometry.Rect
	done   int
}

// NewSimulation prepares a force layout of m. It fails with
// ErrCodeInvalidCanvas if the canvas is malformed.
func NewSimulation(m *hypergraph.Model, opts Options) (*Simulation, error) {
	opts, err := opts.validate()
	if err != nil {
		return nil, err
	}
	return newSimulation(m, opts), nil
}

func newSimulation(m *hypergraph.Model, opts Options) *Simulation {
	return &Simulation{model: m, opts: opts, bounds: opts.Bounds()}
}

// Done returns the number of completed iterations.
func (s *Simulation) Done() int { return s.done }

// Remaining returns the number of iterations left in the budget.
func (s *Simulation) Remaining() int { return max(s.opts.Iterations-s.done, 0) }

// Bounds returns the rectangle positions are clamped into.
func (s *Simulation) Bounds() geometry.Rect { return s.bounds }

// Run steps the simulation until its budget is spent or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	for s.Remaining() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
	}
	return nil
}

// Step runs one iteration and reports whether any iterations remain.
// Calling Step after the budget is spent does nothing.
func (s *Simulation) Step() bool {
	if s.Remaining() == 0 {
		return false
	}
	s.done++

	nodes := s.model.Nodes()
	if len(nodes) == 0 {
		return s.Remaining() > 0
	}
	index := make(map[string]int, len(nodes))
	pos := make([]geometry.Point, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		pos[i] = n.Pos
	}
	disp := make([]geometry.Point, len(nodes))

	s.repel(pos, disp)
	s.attract(pos, disp, index)

	for i, n := range nodes {
		s.model.SetPosition(n.ID, s.bounds.Clamp(pos[i].Add(disp[i])))
	}
	return s.Remaining() > 0
}

func (s *Simulation) repel(pos, disp []geometry.Point) {
	k := s.opts.Attraction * s.opts.Spacing * s.opts.Spacing * s.opts.Spacing
	pair := 0
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			pair++
			delta := pos[i].Sub(pos[j])
			d := delta.Len()

			var dir geometry.Point
			if d < 1e-9 {
				theta := float64(pair) * goldenAngle
				dir = geometry.Pt(math.Cos(theta), math.Sin(theta))
			} else {
				dir = delta.Scale(1 / d)
			}
			d = math.Max(d, MinDistance)

			mag := math.Min(k/(d*d), s.opts.Spacing)
			push := dir.Scale(mag / 2)
			disp[i] = disp[i].Add(push)
			disp[j] = disp[j].Sub(push)
		}
	}
}

func (s *Simulation) attract(pos, disp []geometry.Point, index map[string]int) {
	for _, r := range s.model.Resolve() {
		target := AttractionTarget(r.Members)
		for _, n := range r.Members {
			i := index[n.ID]
			disp[i] = disp[i].Add(target.Sub(pos[i]).Scale(s.opts.Attraction))
		}
	}
}
