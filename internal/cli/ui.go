package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleHighlight is used for the viewer status line.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	// StyleDim is used for secondary text and the viewer key help.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleWarning is used for failed reloads in the viewer.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// report writes the styled summary of a command to w, which is the
// command's OutOrStdout so tests can capture it.
type report struct {
	w io.Writer
}

func (r report) success(format string, args ...any) {
	fmt.Fprintln(r.w, styleOK.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (r report) info(format string, args ...any) {
	fmt.Fprintln(r.w, styleInfo.Render("›")+" "+fmt.Sprintf(format, args...))
}

func (r report) detail(format string, args ...any) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (r report) file(path string) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// graph prints one line of hypergraph statistics, for example
// "7 nodes · 7 hyperedges · max arity 3 · cached".
func (r report) graph(m *hypergraph.Model, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", m.NodeCount()),
		fmt.Sprintf("%d hyperedges", m.EdgeCount()),
	}
	if a := maxArity(m); a > 0 {
		parts = append(parts, fmt.Sprintf("max arity %d", a))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleInfo.Render("fresh"))
	}
	fmt.Fprintln(r.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// next suggests the follow-up hyperview command.
func (r report) next(description, args string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, StyleDim.Render(description+":")+" "+styleCommand.Render(appName+" "+args))
}

func maxArity(m *hypergraph.Model) int {
	n := 0
	for _, e := range m.Edges() {
		n = max(n, len(e.NodeIDs))
	}
	return n
}
