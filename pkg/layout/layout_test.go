package layout

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

func build(t *testing.T, pos map[string]geometry.Point, order []string, edges ...[]string) *hypergraph.Model {
	t.Helper()
	m := hypergraph.New()
	for _, id := range order {
		if err := m.AddNode(hypergraph.Node{ID: id, Pos: pos[id]}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for i, e := range edges {
		if err := m.AddEdge(hypergraph.Hyperedge{ID: fmt.Sprintf("e%d", i), NodeIDs: e}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return m
}

func line(n int) *hypergraph.Model {
	m := hypergraph.New()
	for i := range n {
		_ = m.AddNode(hypergraph.Node{ID: fmt.Sprintf("n%d", i)})
	}
	return m
}

func pos(m *hypergraph.Model, id string) geometry.Point {
	n, _ := m.Node(id)
	return n.Pos
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms {
		got, err := ParseAlgorithm(" " + string(a) + " ")
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", a, got, err)
		}
	}
	if _, err := ParseAlgorithm("radial"); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("ParseAlgorithm(radial) error = %v, want INVALID_LAYOUT", err)
	}
}

func TestApplyFailsFast(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		algo Algorithm
		opts Options
		code errors.Code
	}{
		{"unknown algorithm", "radial", DefaultOptions(), errors.ErrCodeInvalidLayout},
		{"zero width", Force, Options{Height: 600}, errors.ErrCodeInvalidCanvas},
		{"negative height", Grid, Options{Width: 800, Height: -1}, errors.ErrCodeInvalidCanvas},
		{"nan width", Circular, Options{Width: math.NaN(), Height: 600}, errors.ErrCodeInvalidCanvas},
		{"negative margin", Spiral, Options{Width: 800, Height: 600, Margin: -5}, errors.ErrCodeInvalidCanvas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := line(3)
			err := Apply(ctx, m, tt.algo, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Apply() error = %v, want %s", err, tt.code)
			}
			for _, n := range m.Nodes() {
				if n.Pos != (geometry.Point{}) {
					t.Errorf("node %s moved on failure: %v", n.ID, n.Pos)
				}
			}
		})
	}
}

func TestApplyEmptyModel(t *testing.T) {
	for _, a := range Algorithms {
		t.Run(string(a), func(t *testing.T) {
			if err := Apply(context.Background(), hypergraph.New(), a, DefaultOptions()); err != nil {
				t.Errorf("Apply() on empty model = %v, want nil", err)
			}
		})
	}
}

func TestApplyKeepsPositionsFinite(t *testing.T) {
	for _, a := range Algorithms {
		t.Run(string(a), func(t *testing.T) {
			m := line(17)
			_ = m.AddEdge(hypergraph.Hyperedge{ID: "e", NodeIDs: []string{"n0", "n1", "n2", "n3"}})
			if err := Apply(context.Background(), m, a, DefaultOptions()); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			for _, n := range m.Nodes() {
				if !n.Pos.IsFinite() {
					t.Errorf("node %s not finite: %v", n.ID, n.Pos)
				}
			}
		})
	}
}

func TestAttractionTargetMatchesMidpoint(t *testing.T) {
	a := &hypergraph.Node{ID: "a", Pos: geometry.Pt(10, 20)}
	b := &hypergraph.Node{ID: "b", Pos: geometry.Pt(50, 80)}
	seg := geometry.Segment{A: a.Pos, B: b.Pos}
	if got := AttractionTarget([]*hypergraph.Node{a, b}); got != seg.Midpoint() {
		t.Errorf("AttractionTarget() = %v, want %v", got, seg.Midpoint())
	}
}

func TestCircular(t *testing.T) {
	const n = 6
	m := line(n)
	opts := DefaultOptions()
	if err := Apply(context.Background(), m, Circular, opts); err != nil {
		t.Fatal(err)
	}

	c := opts.Center()
	r := CircleRadius(opts)
	step := 2 * math.Pi / n
	nodes := m.Nodes()
	for i, node := range nodes {
		if d := node.Pos.Dist(c); math.Abs(d-r) > 1e-9 {
			t.Errorf("node %s radius = %v, want %v", node.ID, d, r)
		}
		next := nodes[(i+1)%n].Pos
		a0 := math.Atan2(node.Pos.Y-c.Y, node.Pos.X-c.X)
		a1 := math.Atan2(next.Y-c.Y, next.X-c.X)
		delta := math.Mod(a1-a0+4*math.Pi, 2*math.Pi)
		if math.Abs(delta-step) > 1e-9 {
			t.Errorf("angle %s->next = %v, want %v", node.ID, delta, step)
		}
	}
	if p := nodes[0].Pos; math.Abs(p.X-c.X) > 1e-9 || p.Y >= c.Y {
		t.Errorf("first node should sit above the center, got %v", p)
	}
}

func TestGrid(t *testing.T) {
	m := line(5)
	if err := Apply(context.Background(), m, Grid, DefaultOptions()); err != nil {
		t.Fatal(err)
	}

	want := map[string]geometry.Point{
		"n0": geometry.Pt(300, 250),
		"n1": geometry.Pt(400, 250),
		"n2": geometry.Pt(500, 250),
		"n3": geometry.Pt(300, 350),
		"n4": geometry.Pt(400, 350),
	}
	for id, w := range want {
		if got := pos(m, id); got != w {
			t.Errorf("%s = %v, want %v", id, got, w)
		}
	}
}

func TestSpiral(t *testing.T) {
	m := line(40)
	opts := DefaultOptions()
	if err := Apply(context.Background(), m, Spiral, opts); err != nil {
		t.Fatal(err)
	}

	c := opts.Center()
	bounds := opts.Bounds()
	prev := -1.0
	for _, n := range m.Nodes() {
		r := n.Pos.Dist(c)
		if r <= prev {
			t.Errorf("radius of %s = %v, not greater than %v", n.ID, r, prev)
		}
		prev = r
		if !bounds.Contains(n.Pos) {
			t.Errorf("%s = %v outside %v", n.ID, n.Pos, bounds)
		}
	}
	if got := pos(m, "n0"); got != c {
		t.Errorf("first node = %v, want center %v", got, c)
	}
}
