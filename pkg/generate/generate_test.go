package generate

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/layout"
)

func TestRandom(t *testing.T) {
	opts := RandomOptions{Nodes: 30, Edges: 40, MaxArity: 5, Seed: 7, Width: 400, Height: 300}
	m := Random(opts)

	if m.NodeCount() != 30 || m.EdgeCount() != 40 {
		t.Fatalf("Random() = %d nodes, %d edges; want 30, 40", m.NodeCount(), m.EdgeCount())
	}
	canvas := geometry.R(0, 0, 400, 300)
	for _, n := range m.Nodes() {
		if !canvas.Contains(n.Pos) {
			t.Errorf("node %s at %v outside canvas", n.ID, n.Pos)
		}
	}
	for _, e := range m.Edges() {
		if k := len(e.NodeIDs); k < 2 || k > 5 {
			t.Errorf("edge %s arity %d outside [2,5]", e.ID, k)
		}
		if got := len(m.Members(e)); got != len(e.NodeIDs) {
			t.Errorf("edge %s has unresolved members", e.ID)
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	opts := RandomOptions{Nodes: 12, Edges: 10, MaxArity: 4, Seed: 42}
	a, b := Random(opts), Random(opts)
	if !reflect.DeepEqual(a.Nodes(), b.Nodes()) || !reflect.DeepEqual(a.Edges(), b.Edges()) {
		t.Error("Random() with the same seed should produce the same model")
	}
	opts.Seed = 43
	c := Random(opts)
	if reflect.DeepEqual(a.Nodes(), c.Nodes()) {
		t.Error("Random() with a different seed should differ")
	}
}

func TestRandomSmall(t *testing.T) {
	tests := []struct {
		name     string
		opts     RandomOptions
		nodes    int
		edges    int
		maxArity int
	}{
		{"empty", RandomOptions{Edges: 5}, 0, 0, 0},
		{"single node", RandomOptions{Nodes: 1, Edges: 5}, 1, 0, 0},
		{"arity capped by nodes", RandomOptions{Nodes: 2, Edges: 3, MaxArity: 9}, 2, 3, 2},
		{"default arity", RandomOptions{Nodes: 10, Edges: 20}, 10, 20, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Random(tt.opts)
			if m.NodeCount() != tt.nodes || m.EdgeCount() != tt.edges {
				t.Fatalf("got %d nodes, %d edges; want %d, %d", m.NodeCount(), m.EdgeCount(), tt.nodes, tt.edges)
			}
			for _, e := range m.Edges() {
				if len(e.NodeIDs) > tt.maxArity {
					t.Errorf("edge %s arity %d > %d", e.ID, len(e.NodeIDs), tt.maxArity)
				}
			}
		})
	}
}

func TestFanoIncidence(t *testing.T) {
	m := Fano(800, 600)
	if m.NodeCount() != 7 || m.EdgeCount() != 7 {
		t.Fatalf("Fano() = %d points, %d lines; want 7, 7", m.NodeCount(), m.EdgeCount())
	}

	lines := m.Edges()
	sets := make([]map[string]bool, len(lines))
	for i, e := range lines {
		if len(e.NodeIDs) != 3 {
			t.Fatalf("line %s has %d points", e.ID, len(e.NodeIDs))
		}
		sets[i] = map[string]bool{}
		for _, id := range e.NodeIDs {
			sets[i][id] = true
		}
	}

	nodes := m.Nodes()
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			count := 0
			for _, s := range sets {
				if s[nodes[i].ID] && s[nodes[j].ID] {
					count++
				}
			}
			if count != 1 {
				t.Errorf("points %s,%s share %d lines; want 1", nodes[i].ID, nodes[j].ID, count)
			}
		}
	}
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			count := 0
			for id := range sets[i] {
				if sets[j][id] {
					count++
				}
			}
			if count != 1 {
				t.Errorf("lines %s,%s meet in %d points; want 1", lines[i].ID, lines[j].ID, count)
			}
		}
	}
}

func TestFanoFigure(t *testing.T) {
	m := Fano(800, 600)
	pos := func(id string) geometry.Point {
		n, ok := m.Node(id)
		if !ok {
			t.Fatalf("missing %s", id)
		}
		return n.Pos
	}

	// Every line other than the circle is straight.
	for _, e := range m.Edges() {
		if e.ID == "l4" {
			continue
		}
		a, b, c := pos(e.NodeIDs[0]), pos(e.NodeIDs[1]), pos(e.NodeIDs[2])
		cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		if cross > 1e-6 || cross < -1e-6 {
			t.Errorf("line %s is not collinear (cross %v)", e.ID, cross)
		}
	}
	if got, want := pos("p3"), geometry.Pt(400, 60); got != want {
		t.Errorf("apex = %v, want %v", got, want)
	}
}

func TestStates(t *testing.T) {
	m, err := States(StatesOptions{Depth: 2, Branching: 2})
	if err != nil {
		t.Fatalf("States() error: %v", err)
	}
	if m.NodeCount() != 7 || m.EdgeCount() != 3 {
		t.Fatalf("States() = %d states, %d edges; want 7, 3", m.NodeCount(), m.EdgeCount())
	}

	e, ok := m.Edge("t:s.1")
	if !ok {
		t.Fatal("missing edge t:s.1")
	}
	if want := []string{"s.1", "s.1.0", "s.1.1"}; !reflect.DeepEqual(e.NodeIDs, want) {
		t.Errorf("edge members = %v, want %v", e.NodeIDs, want)
	}

	levels := layout.Levels(m)
	for id, want := range map[string]int{"s": 0, "s.0": 1, "s.1": 1, "s.0.1": 2, "s.1.0": 2} {
		if levels[id] != want {
			t.Errorf("level[%s] = %d, want %d", id, levels[id], want)
		}
	}
	if err := layout.Apply(context.Background(), m, layout.Hierarchical, layout.DefaultOptions()); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
}

func TestStatesDefaults(t *testing.T) {
	m, err := States(StatesOptions{Depth: -1, Prefix: "q"})
	if err != nil {
		t.Fatalf("States() error: %v", err)
	}
	if m.NodeCount() != 1 || m.EdgeCount() != 0 {
		t.Errorf("depth 0 should be a lone root, got %d nodes %d edges", m.NodeCount(), m.EdgeCount())
	}
	if _, ok := m.Node("q"); !ok {
		t.Error("root should use the prefix as its id")
	}
}

func TestStatesTooLarge(t *testing.T) {
	_, err := States(StatesOptions{Depth: 20, Branching: 3})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("States() error = %v, want INVALID_INPUT", err)
	}
}
