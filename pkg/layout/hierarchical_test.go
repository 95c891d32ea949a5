package layout

import (
	"context"
	"testing"

	"github.com/matzehuels/hyperview/pkg/geometry"
)

func TestLevels(t *testing.T) {
	order := []string{"r", "a", "b", "c", "x", "y", "solo"}
	m := build(t, map[string]geometry.Point{}, order,
		[]string{"r", "a", "b"},
		[]string{"a", "c"},
		[]string{"x", "y"},
		[]string{"y", "x"},
		[]string{"c", "ghost"},
	)

	want := map[string]int{"r": 0, "a": 1, "b": 1, "c": 2, "x": 0, "y": 1, "solo": 0}
	got := Levels(m)
	if len(got) != len(want) {
		t.Fatalf("Levels() = %v, want %v", got, want)
	}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("level[%s] = %d, want %d", id, got[id], w)
		}
	}
}

func TestLevelsTerminatesOnCycle(t *testing.T) {
	order := []string{"a", "b", "c"}
	m := build(t, map[string]geometry.Point{}, order,
		[]string{"a", "b"},
		[]string{"b", "c"},
		[]string{"c", "a"},
	)

	got := Levels(m)
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("level[%s] = %d, want %d", id, got[id], w)
		}
	}
}

func TestHierarchicalBands(t *testing.T) {
	order := []string{"r", "a", "b", "c"}
	m := build(t, map[string]geometry.Point{}, order,
		[]string{"r", "a", "b"},
		[]string{"a", "c"},
	)
	opts := DefaultOptions()
	if err := Apply(context.Background(), m, Hierarchical, opts); err != nil {
		t.Fatal(err)
	}

	r, a, b, c := pos(m, "r"), pos(m, "a"), pos(m, "b"), pos(m, "c")
	if a.Y != b.Y {
		t.Errorf("a and b share a level but y differs: %v vs %v", a.Y, b.Y)
	}
	if !(r.Y < a.Y && a.Y < c.Y) {
		t.Errorf("levels not stacked top to bottom: r=%v a=%v c=%v", r.Y, a.Y, c.Y)
	}
	if r.X != opts.Center().X || c.X != opts.Center().X {
		t.Errorf("single-node bands should be centered: r=%v c=%v", r, c)
	}
	if mid := (a.X + b.X) / 2; mid != opts.Center().X {
		t.Errorf("band of a,b not centered: %v", mid)
	}
	if b.X-a.X != opts.Spacing {
		t.Errorf("band gap = %v, want %v", b.X-a.X, opts.Spacing)
	}
}

func TestHierarchicalFitsWideBand(t *testing.T) {
	m := line(30)
	opts := DefaultOptions()
	if err := Apply(context.Background(), m, Hierarchical, opts); err != nil {
		t.Fatal(err)
	}
	bounds := opts.Bounds()
	for _, n := range m.Nodes() {
		if !bounds.Contains(n.Pos) {
			t.Errorf("%s = %v outside %v", n.ID, n.Pos, bounds)
		}
	}
}
