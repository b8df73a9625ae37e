package dag

import (
	"fmt"
	"strings"
)

// IssueKind classifies a structural problem found by [Graph.Validate].
type IssueKind int

const (
	// IssueDangling marks a prerequisite ID that matches no node.
	IssueDangling IssueKind = iota
	// IssueCycle marks a circular prerequisite chain.
	IssueCycle
)

// String returns the kind name used in machine-readable output.
func (k IssueKind) String() string {
	switch k {
	case IssueDangling:
		return "dangling"
	case IssueCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Issue is one structural problem in a prerequisite graph.
type Issue struct {
	Kind IssueKind
	// NodeID is the node that holds the offending reference. For cycles it is
	// the node whose prerequisite closed the loop.
	NodeID string
	// MissingID is the unknown prerequisite (dangling issues only).
	MissingID string
	// Path lists the node IDs of a cycle in traversal order, with the first
	// node repeated at the end (cycle issues only).
	Path []string
	// Message is the human-readable diagnostic.
	Message string
}

// Validation is the result of [Graph.Validate]. Problems are reported as
// data; a graph with cycles or dangling references is still laid out.
type Validation struct {
	Valid  bool
	Errors []string
	Issues []Issue
}

// CycleMembers returns the IDs of every node that appears on a reported
// cycle, in order of first appearance.
func (v Validation) CycleMembers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, is := range v.Issues {
		if is.Kind != IssueCycle {
			continue
		}
		for _, id := range is.Path {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// cycleArrow joins the titles of a cycle path.
const cycleArrow = " → "

// Validate checks the graph for prerequisite IDs that match no node and for
// circular prerequisite chains.
//
// Dangling references are reported first, in node order and then in
// prerequisite order. Cycles are found with a depth-first search started from
// each unvisited node in insertion order; when the search reaches a node that
// is still on the current path, the cycle is reported with its full path and
// the search from that root stops. Every node is still visited, so disjoint
// cycles each produce an issue.
//
// Validate never fails and runs in O(N+E).
func (g *Graph) Validate() Validation {
	var issues []Issue
	issues = append(issues, g.danglingIssues()...)
	issues = append(issues, g.cycleIssues()...)

	v := Validation{Valid: len(issues) == 0, Issues: issues}
	if len(issues) > 0 {
		v.Errors = make([]string, len(issues))
		for i, is := range issues {
			v.Errors[i] = is.Message
		}
	}
	return v
}

func (g *Graph) danglingIssues() []Issue {
	var issues []Issue
	for _, n := range g.nodes {
		for _, p := range n.Prerequisites {
			if g.Has(p) {
				continue
			}
			issues = append(issues, Issue{
				Kind:      IssueDangling,
				NodeID:    n.ID,
				MissingID: p,
				Message:   fmt.Sprintf("\"%s\" references non-existent prerequisite ID: %s", n.Label(), p),
			})
		}
	}
	return issues
}

func (g *Graph) cycleIssues() []Issue {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var (
		path   []string
		issues []Issue
	)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		n, ok := g.index[id]
		if !ok {
			return false
		}
		color[id] = gray
		path = append(path, id)

		found := false
		for _, p := range n.Prerequisites {
			switch color[p] {
			case gray:
				issues = append(issues, g.cycleIssue(id, p, path))
				found = true
			case white:
				found = dfs(p)
			}
			if found {
				break
			}
		}

		color[id] = black
		path = path[:len(path)-1]
		return found
	}

	for _, n := range g.nodes {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return issues
}

// cycleIssue builds the issue for the back edge from -> to, where to is on
// the current path.
func (g *Graph) cycleIssue(from, to string, path []string) Issue {
	start := 0
	for i, id := range path {
		if id == to {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, to)

	labels := make([]string, len(cycle))
	for i, id := range cycle {
		labels[i] = g.label(id)
	}
	return Issue{
		Kind:    IssueCycle,
		NodeID:  from,
		Path:    cycle,
		Message: "Circular dependency detected: " + strings.Join(labels, cycleArrow),
	}
}

func (g *Graph) label(id string) string {
	if n, ok := g.index[id]; ok {
		return n.Label()
	}
	return id
}
