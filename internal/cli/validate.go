package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// validateCommand creates the validate command, which exits non-zero when
// the map has cycles or dangling prerequisites.
func (c *CLI) validateCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [map]",
		Short: "Report circular and dangling prerequisites",
		Long: `Report circular and dangling prerequisites.

Every prerequisite ID that matches no node is reported first, followed by
each circular prerequisite chain. The command exits with a non-zero status
when any issue is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, asJSON bool) error {
	m, err := pipeline.LoadMap(input)
	if err != nil {
		return err
	}
	g, err := pipeline.BuildGraph(m)
	if err != nil {
		return err
	}

	v := pipeline.NewRunner(nil, nil, c.Logger).Validate(ctx, g)

	if asJSON {
		data, err := json.MarshalIndent(graph.FromValidation(v), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, string(data))
	} else {
		c.printValidation(v)
	}

	if !v.Valid {
		return errors.New(errors.ErrCodeInvalidGraph, "%s has %d structural issue(s)", input, len(v.Issues))
	}
	return nil
}

// checkCommand creates the check command, which reports whether the stored
// positions of a map should be recomputed.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		heuristic string
		exitCode  bool
	)

	cmd := &cobra.Command{
		Use:   "check [map]",
		Short: "Report whether stored positions need a new layout",
		Long: `Report whether stored positions need a new layout.

The overlap heuristic (course and quest maps) fires when any node sits at
the default position (50,50) or two nodes are closer than 10 units. The
majority heuristic (program and curriculum maps) fires when more than half
of the nodes sit at the default position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0], heuristic, exitCode)
		},
	}
	cmd.Flags().StringVar(&heuristic, "heuristic", "", "overlap or majority (default: by map kind)")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when a layout is needed")

	return cmd
}

func (c *CLI) runCheck(input, heuristic string, exitCode bool) error {
	m, err := pipeline.LoadMap(input)
	if err != nil {
		return err
	}
	g, err := pipeline.BuildGraph(m)
	if err != nil {
		return err
	}

	if heuristic == "" {
		heuristic = c.Config.Heuristic
	}
	opts := pipeline.Options{Heuristic: heuristic}
	if err := opts.ValidateForLayout(m.EffectiveKind()); err != nil {
		return err
	}

	c.printKeyValue("kind", string(m.EffectiveKind()))
	c.printKeyValue("heuristic", opts.Heuristic)
	if !layout.NeedsLayout(g.Nodes(), layout.Heuristic(opts.Heuristic)) {
		c.printSuccess("Stored positions look fine")
		return nil
	}

	c.printWarning("Stored positions need a new layout")
	c.printNextStep("Fix", appName+" layout --write "+input)
	if exitCode {
		return errors.New(errors.ErrCodeInvalidPosition, "%s needs a new layout", input)
	}
	return nil
}
