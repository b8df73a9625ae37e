// Package graph provides the wire format for curriculum maps and their
// computed layouts.
//
// # Architecture
//
// The package sits at the serialization boundary between files and the
// layout engine:
//
//   - [Map], [Layout]: serialization types (this package)
//   - pkg/dag.Graph: internal prerequisite graph
//   - pkg/layout.Layout: internal computed positions
//
// Use [ToGraph], [FromLayout] and [Layout.ToLayout] to convert between them.
//
// # Map Format
//
// A map is an ordered list of nodes. Coordinates are optional and
// normalized to [0,100]:
//
//	{
//	  "kind": "program",
//	  "nodes": [
//	    {"id": "cs101", "title": "Intro"},
//	    {"id": "cs201", "title": "Data Structures", "prerequisites": ["cs101"], "x": 50, "y": 47.5}
//	  ]
//	}
//
// The same structure can be written as YAML. [ReadMapFile] and
// [WriteMapFile] pick the encoding from the file extension.
//
// # Kinds
//
// The kind selects the conventional layout mode and heuristic:
//
//	program, curriculum    → row mode, majority heuristic
//	course-map, quest-map  → column mode, overlap heuristic
//
// Maps without a kind are treated as course maps.
package graph
