package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [map]",
		Short: "Compute node positions for a prerequisite map",
		Long: `Compute node positions for a prerequisite map.

Stored positions are kept when they look intentional; the map is laid out
again when nodes overlap or sit at the default position (see 'check').
Use --force to always recompute.

By default the layout is written to <map>.layout.json. With --write the
computed positions are stored back into the map file instead.

Computed layouts are cached by the map's structure, so re-running after
moving nodes by hand is cheap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags, output, write)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "layout file, .json or .yaml (default: <map>.layout.json, - for stdout)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store positions in the map file instead of writing a layout file")
	cmd.MarkFlagsMutuallyExclusive("output", "write")

	return cmd
}

// runLayout loads the map, lays it out, and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags, output string, write bool) error {
	m, err := pipeline.LoadMap(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Layout(ctx, m, c.options(flags))
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !res.Validation.Valid {
		c.printWarning("Map has %d structural issue(s); positions were still computed", len(res.Validation.Issues))
		for _, msg := range res.Validation.Errors {
			c.printDetail("%s", msg)
		}
	}

	switch {
	case write && !res.Recomputed:
		c.printInfo("Stored positions kept; %s unchanged", input)
	case write:
		if err := graph.WriteMapFile(res.Map, input); err != nil {
			return fmt.Errorf("write map %s: %w", input, err)
		}
		c.printSuccess("Positions written")
		c.printFile(input)
	case output == "-":
		if err := graph.WriteLayout(res.Wire(), c.out, graph.FormatJSON); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
		return nil
	default:
		if output == "" {
			output = outputBase(input) + ".layout.json"
		}
		if err := graph.WriteLayoutFile(res.Wire(), output); err != nil {
			return fmt.Errorf("write layout %s: %w", output, err)
		}
		c.printSuccess("Layout complete")
		c.printFile(output)
	}

	c.printStats(res.Stats.NodeCount, res.Stats.EdgeCount, statusOf(res))
	c.printNextStep("Render", appName+" render "+input)
	return nil
}

func statusOf(res *pipeline.Result) layoutStatus {
	switch {
	case res.CacheHit:
		return statusCached
	case res.Recomputed:
		return statusComputed
	default:
		return statusKept
	}
}
