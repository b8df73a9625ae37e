// Package pipeline provides the load → validate → layout → render flow
// shared by every coursemap command.
//
// By centralizing this logic, the CLI subcommands and the watch loop behave
// identically: the same defaults, the same cache keys, the same log lines.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: report cycles and dangling prerequisites as data
//  2. Layout: keep stored positions, or recompute them when the
//     layout-needed heuristic fires (or when forced)
//  3. Render: produce SVG, PNG or DOT diagrams of the layout
//
// Validation never blocks layout. A map with cycles still gets positions;
// the cyclic nodes are flagged on the layout for renderers.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	m, err := pipeline.LoadMap("program.yaml")
//	result, err := runner.Execute(ctx, m, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	v := runner.Validate(ctx, g)
//	result, err := runner.Layout(ctx, m, opts)
//	artifacts, err := runner.Render(ctx, result, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Watch
// =============================================================================

const (
	// DefaultPrecision is the number of decimals kept in coordinates.
	DefaultPrecision = layout.DefaultPrecision

	// MaxPrecision bounds the precision option.
	MaxPrecision = 6

	// DefaultFormat is the render format used when none is requested.
	DefaultFormat = string(nodelink.FormatSVG)
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	string(nodelink.FormatSVG): true,
	string(nodelink.FormatPNG): true,
	string(nodelink.FormatDOT): true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. Zero values select defaults; the mode
// and heuristic default to the conventions of the map's kind.
type Options struct {
	// Layout
	Mode      string // "row" or "column"; empty uses the kind default
	Heuristic string // "overlap" or "majority"; empty uses the kind default
	Precision int    // decimals kept in coordinates; 0 uses DefaultPrecision
	Force     bool   // recompute even when stored positions look fine
	Refresh   bool   // ignore cached layouts and artifacts

	// Render
	Formats  []string
	Width    float64 // canvas width in inches; 0 uses nodelink.DefaultWidth
	Height   float64 // canvas height in inches; 0 uses nodelink.DefaultHeight
	Detailed bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// SetLayoutDefaults fills in the mode, heuristic and precision for a map
// of the given kind.
func (o *Options) SetLayoutDefaults(kind graph.Kind) {
	if o.Mode == "" {
		o.Mode = string(kind.DefaultMode())
	}
	if o.Heuristic == "" {
		o.Heuristic = string(kind.DefaultHeuristic())
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
}

// ValidateForLayout applies layout defaults and checks the layout options.
func (o *Options) ValidateForLayout(kind graph.Kind) error {
	o.SetLayoutDefaults(kind)
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateHeuristic(o.Heuristic); err != nil {
		return err
	}
	return ValidatePrecision(o.Precision)
}

// SetRenderDefaults fills in the render formats.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
}

// ValidateForRender applies render defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// layoutOptions translates the resolved options for pkg/layout.
func (o *Options) layoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithMode(layout.Mode(o.Mode)),
		layout.WithPrecision(o.Precision),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:      o.Mode,
		Precision: o.Precision,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Width:    o.Width,
		Height:   o.Height,
		Detailed: o.Detailed,
	}
}

// nodelinkOptions translates the render options for pkg/render/nodelink.
func (o *Options) nodelinkOptions() nodelink.Options {
	return nodelink.Options{Width: o.Width, Height: o.Height, Detailed: o.Detailed}
}

// =============================================================================
// Validation
// =============================================================================

// ValidateMode checks that mode is a known layout mode.
func ValidateMode(mode string) error {
	if _, err := layout.ParseMode(mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid layout mode")
	}
	return nil
}

// ValidateHeuristic checks that h is a known layout-needed heuristic.
func ValidateHeuristic(h string) error {
	if _, err := layout.ParseHeuristic(h); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidHeuristic, err, "invalid heuristic")
	}
	return nil
}

// ValidatePrecision checks that p is within [1, MaxPrecision].
func ValidatePrecision(p int) error {
	if p < 1 || p > MaxPrecision {
		return errors.New(errors.ErrCodeInvalidInput, "precision %d out of range [1,%d]", p, MaxPrecision)
	}
	return nil
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png or dot)", f)
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result holds everything a pipeline run produced.
type Result struct {
	// RunID identifies this run in logs and metrics.
	RunID string

	Kind  graph.Kind
	Graph *dag.Graph

	// Map is the input map with the layout's positions written back when
	// the layout was recomputed, and the input unchanged otherwise.
	Map graph.Map

	Layout     *layout.Layout
	Validation dag.Validation

	// NeedsLayout is the heuristic's verdict on the stored positions.
	NeedsLayout bool
	// Recomputed reports whether positions were computed rather than kept.
	Recomputed bool
	// CacheHit reports whether the computed layout came from the cache.
	CacheHit bool

	Artifacts map[string][]byte
	Stats     Stats
}

// Stats records sizes and timings of a run.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ValidateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// Wire converts the result to its serialization format, including the
// validation report.
func (r *Result) Wire() graph.Layout {
	return graph.FromLayout(r.Kind, r.Layout, &r.Validation)
}
