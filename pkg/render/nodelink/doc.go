// Package nodelink renders computed curriculum layouts as node-link
// diagrams.
//
// # Overview
//
// Positions come from pkg/layout, not from Graphviz: every node is pinned
// with pos="x,y!" and the neato engine only routes the edges. The diagram
// therefore looks exactly like the map the web application shows.
//
// # Usage
//
//	l := layout.Build(g, layout.WithMode(layout.ModeRow))
//	l.MarkCyclic(g.Validate())
//	dot := nodelink.ToDOT(l, g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Formats
//
//   - svg: rendered in-process, viewBox normalized for embedding
//   - png: rendered in-process
//   - dot: the DOT source, for external Graphviz tools
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz as
// WebAssembly and needs no system installation.
package nodelink
