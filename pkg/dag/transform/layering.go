package transform

import "github.com/matzehuels/coursemap/pkg/dag"

// AssignLayers groups nodes by depth into layers 0 through the maximum depth.
//
// The returned slice always has MaxDepth(depths)+1 entries, one per depth,
// even if some depth has no node. Within a layer nodes keep their insertion
// order in g; no other sort key is applied, which keeps layouts stable
// across runs on the same input.
//
// Nodes missing from depths are placed in layer 0. An empty graph yields a
// nil result.
func AssignLayers(g *dag.Graph, depths map[string]int) [][]*dag.Node {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	maxDepth := 0
	for _, n := range nodes {
		maxDepth = max(maxDepth, depths[n.ID])
	}

	layers := make([][]*dag.Node, maxDepth+1)
	for _, n := range nodes {
		d := depths[n.ID]
		layers[d] = append(layers[d], n)
	}
	return layers
}
