package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// renderCommand creates the render command, which lays out a map and writes
// one diagram per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  string
		formats string
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [map]",
		Short: "Render a prerequisite map to SVG, PNG or DOT",
		Long: `Render a prerequisite map to SVG, PNG or DOT.

The map is laid out exactly as by 'layout' and drawn with graphviz, with
every node pinned to its position. Nodes on a prerequisite cycle and the
edges between them are drawn in red.

Each format is written to <output>.<format>; the output base defaults to the
map path without its extension. With -o - and a single dot format the DOT
source is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro := c.options(flags)
			ro.Formats = parseFormats(formats)
			ro.Width, ro.Height, ro.Detailed = opts.Width, opts.Height, opts.Detailed
			return c.runRender(cmd.Context(), args[0], ro, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: map path without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width in inches (default 12)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height in inches (default 8)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label nodes with ID and depth")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	toStdout := output == "-"
	if toStdout && (len(opts.Formats) != 1 || opts.Formats[0] != "dot") {
		return errors.New(errors.ErrCodeInvalidInput, "-o - prints to stdout and needs exactly one format: dot")
	}
	m, err := pipeline.LoadMap(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, c.spin, "Rendering...")
	spin.Start()
	res, err := runner.Execute(ctx, m, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		_, err := c.out.Write(res.Artifacts["dot"])
		return err
	}

	base := output
	if base == "" {
		base = outputBase(input)
	}
	c.printSuccess("Rendered %s", input)
	for _, f := range opts.Formats {
		path := base + "." + f
		if err := os.WriteFile(path, res.Artifacts[f], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.printFile(path)
	}
	c.printStats(res.Stats.NodeCount, res.Stats.EdgeCount, statusOf(res))
	if n := len(res.Layout.Cyclic); n > 0 {
		c.printWarning("%d node(s) on prerequisite cycles are drawn in red", n)
	} else if !res.Validation.Valid {
		c.printWarning("Dangling prerequisites are not drawn; run '%s validate %s'", appName, input)
	}
	return nil
}
