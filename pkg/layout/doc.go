// Package layout computes normalized 2D positions for prerequisite maps.
//
// # Overview
//
// [Build] turns a [dag.Graph] into a [Layout]: every node receives X and Y
// coordinates in [0,100], derived from its prerequisite depth and its order
// within its depth layer. One planner serves both map conventions, selected
// with [WithMode]:
//
//   - [ModeColumn]: depth runs left to right, layers spread top to bottom
//   - [ModeRow]: depth runs top to bottom, layers spread left to right
//
// The axes can be tuned further with [WithDepthAxis], [WithSpreadAxis] and
// [WithPrecision].
//
// # Layout-Needed Heuristic
//
// [NeedsLayout] inspects stored positions and advises whether a map should
// be laid out again, for example because every node still sits at the
// default (50,50) or because manual edits left nodes on top of each other.
//
// # Usage
//
//	l := layout.Build(g, layout.WithMode(layout.ModeRow))
//	for _, p := range l.Placements {
//	    fmt.Println(p.ID, p.X, p.Y)
//	}
//	nodes := l.Apply(g) // copies with X/Y set, ready to persist
//
// Build is a pure function: it performs no I/O, keeps no state between calls
// and is safe for concurrent use.
package layout
