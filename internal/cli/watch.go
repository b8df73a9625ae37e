package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// defaultDebounce collapses the bursts of events editors emit on save.
const defaultDebounce = 300 * time.Millisecond

// watchCommand creates the watch command, which re-validates and re-lays-out
// a map every time it is saved.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [map]",
		Short: "Re-validate and re-lay-out a map whenever it changes",
		Long: `Re-validate and re-lay-out a map whenever it changes.

The layout is written to <map>.layout.json (or -o) after every save. The
map file itself is never modified. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = outputBase(input) + ".layout.json"
			}
			return c.runWatch(cmd.Context(), input, output, flags, debounce)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "layout file (default: <map>.layout.json)")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before a change is processed")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input, output string, flags layoutFlags, debounce time.Duration) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(flags)
	update := func(ctx context.Context) {
		if err := c.relayout(ctx, runner, input, output, opts); err != nil {
			c.printError("%v", err)
		}
	}

	update(ctx)
	c.printInfo("Watching %s", input)

	w := &mapWatcher{path: input, debounce: debounce, onChange: update, logger: c.Logger}
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// relayout runs one validate and layout pass and writes the layout file.
func (c *CLI) relayout(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	m, err := pipeline.LoadMap(input)
	if err != nil {
		return err
	}
	res, err := runner.Layout(ctx, m, opts)
	if err != nil {
		return err
	}
	if err := graph.WriteLayoutFile(res.Wire(), output); err != nil {
		return fmt.Errorf("write layout %s: %w", output, err)
	}

	c.printValidation(res.Validation)
	c.printFile(output)
	c.printStats(res.Stats.NodeCount, res.Stats.EdgeCount, statusOf(res))
	return nil
}

// mapWatcher calls onChange once a file has been quiet for the debounce
// period after a write. The parent directory is watched so that editors
// which save by renaming a temp file are still seen.
type mapWatcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context)
	logger   *log.Logger
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *mapWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("map watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("map watcher add %s: %w", filepath.Dir(target), err)
	}

	debounce := w.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	tick := time.NewTicker(debounce / 4)
	defer tick.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "path", w.path, "error", err)
			}

		case <-tick.C:
			if pending.IsZero() || time.Since(pending) < debounce {
				continue
			}
			pending = time.Time{}
			w.onChange(ctx)
		}
	}
}
