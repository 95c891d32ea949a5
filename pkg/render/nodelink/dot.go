package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/layout"
	"github.com/matzehuels/hyperview/pkg/render"
)

// Options configures DOT export.
type Options struct {
	// Height of the canvas the positions refer to. Graphviz puts the origin
	// at the bottom-left, so y is flipped against it. Zero uses the lowest
	// node position.
	Height float64

	// Detailed adds hyperedge labels at their junction points and node IDs
	// under node labels.
	Detailed bool
}

// HubID returns the ID of the synthetic junction node for an n-ary
// hyperedge.
func HubID(edgeID string) string { return "hub:" + edgeID }

// ToDOT converts a model to an undirected Graphviz graph with pinned
// positions.
//
// Two-member hyperedges become one edge. Hyperedges with three or more
// members get a point-shaped junction node at their centroid, connected to
// every member, matching the star the renderer draws. Dead hyperedges are
// skipped.
func ToDOT(m *hypergraph.Model, opts Options) string {
	height := opts.Height
	if height <= 0 {
		height = m.Bounds().Max.Y
	}
	pos := func(x, y float64) string {
		return fmt.Sprintf("%s,%s!", num(x), num(height-y))
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			"shape=" + dotShape(n.Style.Shape),
			"width=" + num(2*n.Style.Size/72),
			fmt.Sprintf("fillcolor=%q", render.Hex(render.ParseColor(n.Style.Color, render.DefaultNodeColor))),
			fmt.Sprintf("pos=%q", pos(n.Pos.X, n.Pos.Y)),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range m.Resolve() {
		attrs := edgeAttrs(r.Edge)
		if len(r.Members) == 2 {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", r.Members[0].ID, r.Members[1].ID, attrs)
			continue
		}
		hub := HubID(r.Edge.ID)
		c := layout.AttractionTarget(r.Members)
		hubAttrs := []string{"shape=point", "width=0.08", fmt.Sprintf("pos=%q", pos(c.X, c.Y))}
		if opts.Detailed && r.Edge.Label != "" {
			hubAttrs = append(hubAttrs, fmt.Sprintf("xlabel=%q", r.Edge.Label))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", hub, strings.Join(hubAttrs, ", "))
		for _, n := range r.Members {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", hub, n.ID, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *hypergraph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if detailed && n.Label != "" && n.Label != n.ID {
		label += "\n" + n.ID
	}
	return label
}

func edgeAttrs(e *hypergraph.Hyperedge) string {
	attrs := []string{
		fmt.Sprintf("color=%q", render.Hex(render.ParseColor(e.Style.Color, render.DefaultEdgeColor))),
		"penwidth=" + num(e.Style.Width),
	}
	if e.Style.Pattern != hypergraph.PatternSolid && e.Style.Pattern != "" {
		attrs = append(attrs, "style="+string(e.Style.Pattern))
	}
	return strings.Join(attrs, ", ")
}

func dotShape(s hypergraph.Shape) string {
	switch s {
	case hypergraph.ShapeSquare:
		return "box"
	case hypergraph.ShapeTriangle:
		return "triangle"
	case hypergraph.ShapeDiamond:
		return "diamond"
	}
	return "circle"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz. The neato engine is
// used so pinned positions are honored.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which carries pt units,
// with a plain unitless one of the same extent.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
