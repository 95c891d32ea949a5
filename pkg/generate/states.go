package generate

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// MaxStates bounds the size of a States tree.
const MaxStates = 10000

// StatesOptions configures States.
type StatesOptions struct {
	Depth     int    // levels below the root
	Branching int    // children per state; values below 1 mean 2
	Prefix    string // id prefix; empty means "s"
}

// States builds a hierarchical state sequence. The root is Prefix and each
// child appends ".k" to its parent's id. Every state with children forms
// one hyperedge "t:<parent>" listing the parent first, so the hierarchical
// layout treats the parent as its source.
//
// Node positions are left at the origin; apply a layout afterwards. It fails
// when the tree would exceed MaxStates states.
func States(opts StatesOptions) (*hypergraph.Model, error) {
	if opts.Depth < 0 {
		opts.Depth = 0
	}
	if opts.Branching < 1 {
		opts.Branching = 2
	}
	if strings.TrimSpace(opts.Prefix) == "" {
		opts.Prefix = "s"
	}

	total, level := 1, 1
	for range opts.Depth {
		level *= opts.Branching
		total += level
		if total > MaxStates {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"state tree of depth %d and branching %d exceeds %d states", opts.Depth, opts.Branching, MaxStates)
		}
	}

	m := hypergraph.New()
	_ = m.AddNode(hypergraph.Node{ID: opts.Prefix, Label: "state 0"})
	frontier := []string{opts.Prefix}
	for d := 1; d <= opts.Depth; d++ {
		var next []string
		for _, parent := range frontier {
			members := []string{parent}
			for k := range opts.Branching {
				id := fmt.Sprintf("%s.%d", parent, k)
				_ = m.AddNode(hypergraph.Node{
					ID:    id,
					Label: fmt.Sprintf("state %d", m.NodeCount()),
					Style: hypergraph.NodeStyle{Color: Palette[d%len(Palette)]},
				})
				members = append(members, id)
				next = append(next, id)
			}
			_ = m.AddEdge(hypergraph.Hyperedge{ID: "t:" + parent, NodeIDs: members})
		}
		frontier = next
	}
	return m, nil
}
