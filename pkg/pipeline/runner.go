package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, provided the cache is safe for
// concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, the default charmbracelet logger is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs validate → layout → render. Rendering is skipped when
// opts.Formats is empty.
func (r *Runner) Execute(ctx context.Context, m graph.Map, opts Options) (*Result, error) {
	result, err := r.Layout(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if len(opts.Formats) == 0 {
		return result, nil
	}

	start := time.Now()
	artifacts, err := r.Render(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)

	r.logger(opts).Info("rendered outputs",
		"run", result.RunID,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Validate reports dangling prerequisites and cycles in g. It never fails.
func (r *Runner) Validate(ctx context.Context, g *dag.Graph) dag.Validation {
	start := time.Now()
	v := g.Validate()
	observability.Pipeline().OnValidate(ctx, g.NodeCount(), len(v.Issues), time.Since(start))
	return v
}

// Layout validates the map and decides whether its stored positions are
// kept or recomputed.
//
// Positions are recomputed when the layout-needed heuristic fires or
// opts.Force is set. Recomputed layouts are cached by the map's structure
// (IDs, titles and prerequisites) and the layout options, so moving a node
// by hand does not invalidate the entry.
func (r *Runner) Layout(ctx context.Context, m graph.Map, opts Options) (*Result, error) {
	kind := m.EffectiveKind()
	if err := opts.ValidateForLayout(kind); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	g, err := BuildGraph(m)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Kind:  kind,
		Graph: g,
		Map:   m,
		Stats: Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}

	start := time.Now()
	result.Validation = r.Validate(ctx, g)
	result.Stats.ValidateTime = time.Since(start)

	logger.Info("validated map",
		"run", result.RunID,
		"kind", kind,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"issues", len(result.Validation.Issues))
	for _, msg := range result.Validation.Errors {
		logger.Debug("validation issue", "run", result.RunID, "message", msg)
	}

	result.NeedsLayout = layout.NeedsLayout(g.Nodes(), layout.Heuristic(opts.Heuristic))
	if !result.NeedsLayout && !opts.Force {
		result.Layout = layout.Stored(g, opts.layoutOptions()...)
		result.Layout.MarkCyclic(result.Validation)
		observability.Pipeline().OnLayoutSkipped(ctx, opts.Mode)
		logger.Info("kept stored positions", "run", result.RunID, "heuristic", opts.Heuristic)
		return result, nil
	}

	start = time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Mode, g.NodeCount())
	l, hit, err := r.computeLayout(ctx, m, g, opts)
	result.Stats.LayoutTime = time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Mode, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	l.MarkCyclic(result.Validation)

	result.Layout = l
	result.Recomputed = true
	result.CacheHit = hit
	result.Map = m.WithPositions(l)

	logger.Info("computed layout",
		"run", result.RunID,
		"mode", opts.Mode,
		"max_depth", l.MaxDepth,
		"cyclic", len(l.Cyclic),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// computeLayout returns the layout for g, from the cache when possible.
func (r *Runner) computeLayout(ctx context.Context, m graph.Map, g *dag.Graph, opts Options) (*layout.Layout, bool, error) {
	structure, err := cache.HashJSON(structureOf(m))
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(structure, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data, graph.FormatJSON); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached.ToLayout(), true, nil
			}
			// Undecodable entry: fall through and overwrite it
		} else if err != nil {
			r.logger(opts).Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	l := layout.Build(g, opts.layoutOptions()...)

	if data, err := graph.MarshalLayout(graph.FromLayout("", l, nil), graph.FormatJSON); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.logger(opts).Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return l, false, nil
}

// mapStructure is the position-independent part of a map.
type mapStructure struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Prerequisites []string `json:"prerequisites"`
}

func structureOf(m graph.Map) []mapStructure {
	out := make([]mapStructure, len(m.Nodes))
	for i, n := range m.Nodes {
		out[i] = mapStructure{ID: n.ID, Title: n.Title, Prerequisites: n.Prerequisites}
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
