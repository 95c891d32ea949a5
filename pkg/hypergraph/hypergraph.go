package hypergraph

import (
	"errors"
	"slices"

	"github.com/matzehuels/hyperview/pkg/geometry"
)

var (
	// ErrInvalidNodeID is returned by [Model.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidEdgeID is returned by [Model.AddEdge] when the hyperedge ID
	// is empty.
	ErrInvalidEdgeID = errors.New("hyperedge ID must not be empty")

	// ErrTooFewMembers is returned by [Model.AddEdge] when a hyperedge lists
	// fewer than two node IDs.
	ErrTooFewMembers = errors.New("hyperedge must reference at least two nodes")

	// ErrDuplicateMember is returned by [Model.AddEdge] when a hyperedge
	// lists the same node ID more than once.
	ErrDuplicateMember = errors.New("hyperedge references a node more than once")

	// ErrNonFinitePosition is returned by [Model.AddNode] when the node
	// position contains NaN or an infinity.
	ErrNonFinitePosition = errors.New("node position must be finite")
)

// Style defaults applied by AddNode and AddEdge when a field is left zero.
const (
	DefaultNodeColor = "#4c78a8"
	DefaultNodeSize  = 10.0
	DefaultEdgeColor = "#888888"
	DefaultEdgeWidth = 1.5
)

// Node is a point entity with a position, label and display style.
//
// Data is an opaque payload supplied by the caller; the engine never
// inspects it.
type Node struct {
	ID    string
	Label string
	Pos   geometry.Point
	Data  any
	Style NodeStyle
}

// NodeStyle controls how a node is drawn and hit-tested.
// Size is the node's radius for circles and its half-extent for the other
// shapes.
type NodeStyle struct {
	Color string
	Size  float64
	Shape Shape
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Hyperedge is a relation connecting two or more nodes.
//
// NodeIDs are weak references: they are resolved against the owning
// [Model] every time the edge is used, and a member that no longer exists
// is simply skipped.
type Hyperedge struct {
	ID      string
	Label   string
	NodeIDs []string
	Data    any
	Style   EdgeStyle
}

// EdgeStyle controls how a hyperedge is drawn. It has no effect on layout.
type EdgeStyle struct {
	Color   string
	Width   float64
	Pattern Pattern
}

// DisplayLabel returns the label if set, otherwise the ID.
func (e *Hyperedge) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// Resolved pairs a live hyperedge with the nodes its IDs currently resolve
// to, in NodeIDs order.
type Resolved struct {
	Edge    *Hyperedge
	Members []*Node
}

// Positions returns the member positions in order.
func (r Resolved) Positions() []geometry.Point {
	pts := make([]geometry.Point, len(r.Members))
	for i, n := range r.Members {
		pts[i] = n.Pos
	}
	return pts
}

// Centroid returns the mean position of the resolved members.
func (r Resolved) Centroid() geometry.Point {
	return geometry.Centroid(r.Positions())
}

// Model is the in-memory set of nodes and hyperedges for one view.
//
// Nodes and hyperedges are stored in ID-keyed maps. An insertion-order
// index is kept alongside so that strategies depending on node order are
// deterministic; upserting an existing ID keeps its original slot.
//
// The zero value is not usable - use New to create a valid Model.
// Model is not safe for concurrent use without external synchronization.
type Model struct {
	nodes     map[string]*Node
	edges     map[string]*Hyperedge
	nodeOrder []string
	edgeOrder []string
}

// New creates an empty Model.
func New() *Model {
	return &Model{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Hyperedge),
	}
}

// AddNode inserts n, or replaces the node with the same ID.
//
// Replacement is intentional last-write-wins upsert: callers feeding the
// model from an external source may re-send the same node freely. Zero
// style fields are filled with the package defaults.
func (m *Model) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if !n.Pos.IsFinite() {
		return ErrNonFinitePosition
	}
	if n.Style.Color == "" {
		n.Style.Color = DefaultNodeColor
	}
	if n.Style.Size <= 0 {
		n.Style.Size = DefaultNodeSize
	}
	if n.Style.Shape == "" {
		n.Style.Shape = ShapeCircle
	}
	if _, exists := m.nodes[n.ID]; !exists {
		m.nodeOrder = append(m.nodeOrder, n.ID)
	}
	m.nodes[n.ID] = &n
	return nil
}

// AddEdge inserts e, or replaces the hyperedge with the same ID (the same
// upsert semantics as AddNode).
//
// Members do not have to exist yet; unresolved IDs are skipped at use
// time. AddEdge copies NodeIDs so later changes to the caller's slice do
// not leak into the model.
func (m *Model) AddEdge(e Hyperedge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if len(e.NodeIDs) < 2 {
		return ErrTooFewMembers
	}
	seen := make(map[string]struct{}, len(e.NodeIDs))
	for _, id := range e.NodeIDs {
		if id == "" {
			return ErrInvalidNodeID
		}
		if _, dup := seen[id]; dup {
			return ErrDuplicateMember
		}
		seen[id] = struct{}{}
	}
	e.NodeIDs = slices.Clone(e.NodeIDs)
	if e.Style.Color == "" {
		e.Style.Color = DefaultEdgeColor
	}
	if e.Style.Width <= 0 {
		e.Style.Width = DefaultEdgeWidth
	}
	if e.Style.Pattern == "" {
		e.Style.Pattern = PatternSolid
	}
	if _, exists := m.edges[e.ID]; !exists {
		m.edgeOrder = append(m.edgeOrder, e.ID)
	}
	m.edges[e.ID] = &e
	return nil
}

// RemoveNode removes the node and every hyperedge that references it.
// Removing an unknown ID is a no-op. It returns the IDs of the hyperedges
// removed by the cascade.
func (m *Model) RemoveNode(id string) []string {
	if _, ok := m.nodes[id]; !ok {
		return nil
	}
	delete(m.nodes, id)
	m.nodeOrder = slices.DeleteFunc(m.nodeOrder, func(s string) bool { return s == id })

	var evicted []string
	for _, eid := range m.edgeOrder {
		if slices.Contains(m.edges[eid].NodeIDs, id) {
			evicted = append(evicted, eid)
		}
	}
	for _, eid := range evicted {
		m.RemoveEdge(eid)
	}
	return evicted
}

// RemoveEdge removes the hyperedge. Removing an unknown ID is a no-op.
func (m *Model) RemoveEdge(id string) {
	if _, ok := m.edges[id]; !ok {
		return
	}
	delete(m.edges, id)
	m.edgeOrder = slices.DeleteFunc(m.edgeOrder, func(s string) bool { return s == id })
}

// Clear empties both collections.
func (m *Model) Clear() {
	clear(m.nodes)
	clear(m.edges)
	m.nodeOrder = nil
	m.edgeOrder = nil
}

// Node returns the node with the given ID and true, or nil and false if
// not found. The returned pointer refers to the node held by the model;
// use SetPosition to move it.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Edge returns the hyperedge with the given ID and true, or nil and false
// if not found.
func (m *Model) Edge(id string) (*Hyperedge, bool) {
	e, ok := m.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order.
func (m *Model) Nodes() []*Node {
	nodes := make([]*Node, len(m.nodeOrder))
	for i, id := range m.nodeOrder {
		nodes[i] = m.nodes[id]
	}
	return nodes
}

// Edges returns all hyperedges in insertion order, including dead ones.
func (m *Model) Edges() []*Hyperedge {
	edges := make([]*Hyperedge, len(m.edgeOrder))
	for i, id := range m.edgeOrder {
		edges[i] = m.edges[id]
	}
	return edges
}

// NodeCount returns the number of nodes in the model.
func (m *Model) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of hyperedges in the model.
func (m *Model) EdgeCount() int { return len(m.edges) }

// NodeIndex returns the insertion-order index of the node, or -1.
func (m *Model) NodeIndex(id string) int {
	return slices.Index(m.nodeOrder, id)
}

// Members resolves e's node IDs against the model, in order, skipping IDs
// that no longer exist.
func (m *Model) Members(e *Hyperedge) []*Node {
	members := make([]*Node, 0, len(e.NodeIDs))
	for _, id := range e.NodeIDs {
		if n, ok := m.nodes[id]; ok {
			members = append(members, n)
		}
	}
	return members
}

// Resolve returns every live hyperedge (two or more resolvable members)
// with its members, in insertion order. Dead hyperedges are skipped but
// stay in the model.
func (m *Model) Resolve() []Resolved {
	out := make([]Resolved, 0, len(m.edgeOrder))
	for _, eid := range m.edgeOrder {
		e := m.edges[eid]
		members := m.Members(e)
		if len(members) < 2 {
			continue
		}
		out = append(out, Resolved{Edge: e, Members: members})
	}
	return out
}

// SetPosition moves the node to p. It reports false, leaving the node
// untouched, if the node does not exist or p is not finite.
func (m *Model) SetPosition(id string, p geometry.Point) bool {
	n, ok := m.nodes[id]
	if !ok || !p.IsFinite() {
		return false
	}
	n.Pos = p
	return true
}

// Translate moves every node by d.
func (m *Model) Translate(d geometry.Point) {
	m.TransformPositions(func(p geometry.Point) geometry.Point { return p.Add(d) })
}

// TransformPositions replaces every node position with fn(position).
// Results that are not finite are discarded, keeping the old position.
func (m *Model) TransformPositions(fn func(geometry.Point) geometry.Point) {
	for _, id := range m.nodeOrder {
		m.SetPosition(id, fn(m.nodes[id].Pos))
	}
}

// Bounds returns the smallest rectangle containing every node position.
// It returns the zero Rect for an empty model.
func (m *Model) Bounds() geometry.Rect {
	if len(m.nodeOrder) == 0 {
		return geometry.Rect{}
	}
	first := m.nodes[m.nodeOrder[0]].Pos
	r := geometry.Rect{Min: first, Max: first}
	for _, id := range m.nodeOrder[1:] {
		p := m.nodes[id].Pos
		r = r.Union(geometry.Rect{Min: p, Max: p})
	}
	return r
}

// Clone returns a deep copy of the model structure. Data payloads are
// shared, not copied.
func (m *Model) Clone() *Model {
	c := New()
	for _, n := range m.Nodes() {
		cp := *n
		c.nodes[cp.ID] = &cp
	}
	for _, e := range m.Edges() {
		cp := *e
		cp.NodeIDs = slices.Clone(e.NodeIDs)
		c.edges[cp.ID] = &cp
	}
	c.nodeOrder = slices.Clone(m.nodeOrder)
	c.edgeOrder = slices.Clone(m.edgeOrder)
	return c
}
