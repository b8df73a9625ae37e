package transform

import "github.com/matzehuels/coursemap/pkg/dag"

// depthFrame is one pending node on the explicit traversal stack.
type depthFrame struct {
	id      string
	prereqs []string
	next    int // index of the next prerequisite to resolve
	best    int // deepest resolved prerequisite so far, -1 if none
}

// Depth returns the length of the longest prerequisite chain ending at id.
//
// A node without prerequisites, or an ID that matches no node, has depth 0.
// Otherwise depth is one more than the deepest prerequisite. memo is shared
// across calls so that a node reachable from many others is resolved once;
// it must not be nil.
//
// # Cycles
//
// Depth tracks the nodes on the current traversal path. A prerequisite that
// is still on the path is not recursed into and counts as depth 0, so a node
// whose only prerequisite closes a cycle (including itself) gets depth 1. This
// guarantees termination, but depths of nodes on or above a cycle depend on
// traversal order. [dag.Graph.Validate]
// is the authority on whether cycles exist.
//
// The traversal uses an explicit stack, so graph depth never bounds the Go
// call stack.
func Depth(g *dag.Graph, id string, memo map[string]int) int {
	if d, ok := memo[id]; ok {
		return d
	}

	visiting := make(map[string]bool)
	var stack []*depthFrame

	// resolve returns the depth of id if it is known without descending,
	// otherwise pushes a frame for it. Back edges resolve to 0.
	resolve := func(id string) (int, bool) {
		if d, ok := memo[id]; ok {
			return d, true
		}
		if visiting[id] {
			return 0, true
		}
		n, ok := g.Node(id)
		if !ok || len(n.Prerequisites) == 0 {
			memo[id] = 0
			return 0, true
		}
		visiting[id] = true
		stack = append(stack, &depthFrame{id: id, prereqs: n.Prerequisites, best: -1})
		return 0, false
	}

	if d, ok := resolve(id); ok {
		return d
	}

	for {
		top := stack[len(stack)-1]
		if top.next < len(top.prereqs) {
			p := top.prereqs[top.next]
			top.next++
			if d, ok := resolve(p); ok {
				top.best = max(top.best, d)
			}
			continue
		}

		d := top.best + 1
		memo[top.id] = d
		delete(visiting, top.id)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return d
		}
		parent := stack[len(stack)-1]
		parent.best = max(parent.best, d)
	}
}

// Depths computes [Depth] for every node in insertion order with a single
// shared memo. The result holds exactly one entry per node.
func Depths(g *dag.Graph) map[string]int {
	nodes := g.Nodes()
	memo := make(map[string]int, len(nodes))
	depths := make(map[string]int, len(nodes))
	for _, n := range nodes {
		depths[n.ID] = Depth(g, n.ID, memo)
	}
	return depths
}

// MaxDepth returns the largest value in depths, or 0 if depths is empty.
func MaxDepth(depths map[string]int) int {
	m := 0
	for _, d := range depths {
		m = max(m, d)
	}
	return m
}
