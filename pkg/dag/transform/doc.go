// Package transform computes the layered structure of a prerequisite graph.
//
// # Depth
//
// [Depth] and [Depths] compute, for each node, the length of the longest
// prerequisite chain ending at it. Depth 0 nodes have no prerequisites.
// Results are memoized across the whole node set, so the cost is O(V + E).
//
// Cycles do not break the computation: an edge that points back into the
// current traversal path is ignored, so cyclic nodes fall back towards 0. The resulting depths are
// usable for drawing but not meaningful for nodes on a cycle; run
// [dag.Graph.Validate] to report the cycle itself.
//
// # Layer Assignment
//
// [AssignLayers] buckets nodes by depth into contiguous layers
// 0..maxDepth, preserving input order within each layer:
//
//	depths := transform.Depths(g)
//	layers := transform.AssignLayers(g, depths)
//	for depth, layer := range layers {
//	    fmt.Println(depth, dag.NodeIDs(layer))
//	}
package transform
