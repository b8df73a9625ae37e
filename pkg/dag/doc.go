// Package dag provides the prerequisite graph used by curriculum maps.
//
// # Overview
//
// Courses and modules declare the nodes that must precede them as an ordered
// list of prerequisite IDs. This package stores those nodes in insertion
// order and answers structural questions about them. The name reflects the
// intended shape of the data: prerequisite relations should form a directed
// acyclic graph, but the [Graph] type tolerates cycles and
// unknown references because curriculum data is edited by hand.
//
// # Basic Usage
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "intro", Title: "Intro"})
//	_ = g.AddNode(dag.Node{ID: "algo", Title: "Algorithms", Prerequisites: []string{"intro"}})
//
// # Validation
//
// [Graph.Validate] reports two kinds of problems as data:
//
//   - Dangling references: a prerequisite ID that matches no node
//   - Cycles: a circular prerequisite chain, reported with the full path
//
// Validation never returns a Go error. Callers decide whether an invalid
// graph blocks a save; layout still completes for invalid graphs.
//
// # Ordering
//
// Every operation that iterates the graph follows insertion order, so the
// same input always yields the same diagnostics in the same order.
package dag
