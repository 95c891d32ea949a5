package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/generate"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	hio "github.com/matzehuels/hyperview/pkg/io"
)

// generateCommand creates the generate command and its generator subcommands.
func (c *CLI) generateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample hypergraph",
		Long: `Generate a sample hypergraph as graph.json.

Writes to stdout unless --output is given. Random and Fano graphs come with
positions; state trees are left at the origin for 'layout -a hierarchical'.`,
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	cmd.AddCommand(c.generateRandomCommand(&output))
	cmd.AddCommand(c.generateFanoCommand(&output))
	cmd.AddCommand(c.generateStatesCommand(&output))

	return cmd
}

func (c *CLI) generateRandomCommand(output *string) *cobra.Command {
	opts := generate.DefaultRandomOptions()

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Random hypergraph with mixed shapes and edge patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateCanvasSize(opts.Width, opts.Height); err != nil {
				return err
			}
			return c.writeGenerated(cmd.Context(), cmd.OutOrStdout(), generate.Random(opts), *output)
		},
	}

	cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", opts.Nodes, "number of nodes")
	cmd.Flags().IntVarP(&opts.Edges, "edges", "e", opts.Edges, "number of hyperedges")
	cmd.Flags().IntVar(&opts.MaxArity, "max-arity", opts.MaxArity, "maximum nodes per hyperedge")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for reproducible graphs")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")

	return cmd
}

func (c *CLI) generateFanoCommand(output *string) *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "fano",
		Short: "Fano plane: 7 points, 7 three-point lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateCanvasSize(width, height); err != nil {
				return err
			}
			return c.writeGenerated(cmd.Context(), cmd.OutOrStdout(), generate.Fano(width, height), *output)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 800, "canvas width")
	cmd.Flags().Float64Var(&height, "height", 600, "canvas height")

	return cmd
}

func (c *CLI) generateStatesCommand(output *string) *cobra.Command {
	opts := generate.StatesOptions{Depth: 3, Branching: 2}

	cmd := &cobra.Command{
		Use:   "states",
		Short: "State tree with one hyperedge per transition fan-out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := generate.States(opts)
			if err != nil {
				return err
			}
			return c.writeGenerated(cmd.Context(), cmd.OutOrStdout(), m, *output)
		},
	}

	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", opts.Depth, "levels below the root")
	cmd.Flags().IntVarP(&opts.Branching, "branching", "b", opts.Branching, "children per state")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "s", "state id prefix")

	return cmd
}

// writeGenerated writes m to output, or to w when output is empty.
func (c *CLI) writeGenerated(ctx context.Context, w io.Writer, m *hypergraph.Model, output string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Generated graph: %d nodes, %d edges", m.NodeCount(), m.EdgeCount())

	if output == "" {
		return hio.WriteJSON(m, w)
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if err := hio.ExportJSON(m, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	out := report{w: w}
	out.success("Generated graph")
	out.file(output)
	out.graph(m, false)
	out.next("Lay out", "layout "+output)
	return nil
}
