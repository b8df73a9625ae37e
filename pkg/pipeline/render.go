package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/graph"
	"github.com/matzehuels/coursemap/pkg/observability"
	"github.com/matzehuels/coursemap/pkg/render/nodelink"
)

// Render produces one artifact per requested format for the result's
// layout. Artifacts are cached by the serialized layout and the render
// options; a run is served from the cache only when every format hits.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if res == nil || res.Layout == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layout to render")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.render(ctx, res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	// Edges are not part of the layout, so the map structure joins the key.
	layoutHash, err := cache.HashJSON([]any{
		graph.FromLayout(res.Kind, res.Layout, nil),
		structureOf(res.Map),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash layout for cache key")
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, f := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f)))
			if err != nil || !hit {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	dot := nodelink.ToDOT(res.Layout, res.Graph, opts.nodelinkOptions())
	for _, f := range opts.Formats {
		data, err := nodelink.Render(ctx, dot, nodelink.Format(f))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", f)
		}
		artifacts[f] = data

		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f)), data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return artifacts, nil
}
