// Package pkg provides the libraries behind coursemap, a layout and
// validation engine for prerequisite maps.
//
// # Overview
//
// A curriculum map is a set of courses, modules or program stages, each
// listing the nodes that must precede it. The packages below turn such a
// map into deterministic positions in a normalized [0,100] canvas and
// report circular or dangling prerequisites:
//
//  1. [dag] - Prerequisite graph and structural validation
//  2. [dag/transform] - Depth calculation and layer assignment
//  3. [layout] - Position planning and the layout-needed heuristics
//  4. [graph] - JSON/YAML wire format for maps and layouts
//  5. [pipeline] - Orchestration (validate → layout → render) with caching
//
// # Architecture
//
//	map file (.json / .yaml)
//	         ↓
//	    [graph] package (decode, convert to dag.Graph)
//	         ↓
//	    [dag] package (Validate: dangling references, cycles)
//	         ↓
//	    [dag/transform] package (Depths, AssignLayers)
//	         ↓
//	    [layout] package (Build in column or row mode)
//	         ↓
//	    [render/nodelink] package (DOT → SVG/PNG)
//
// Supporting packages:
//
//   - [cache]: file, Redis and null caches for layouts and renders
//   - [errors]: coded errors and input sanitizers
//   - [observability]: pipeline and cache hooks, with a Prometheus backend
//   - [buildinfo]: version information injected at build time
//
// # Quick Start
//
//	m, _ := pipeline.LoadMap("program.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Layout(ctx, m, pipeline.Options{})
//	for _, msg := range res.Validation.Errors {
//	    fmt.Println(msg)
//	}
//	_ = graph.WriteMapFile(res.Map, "program.yaml")
package pkg
