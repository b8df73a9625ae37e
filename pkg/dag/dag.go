package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// DefaultPosition is the coordinate assigned to nodes that were never laid
// out. Stored maps default both axes to this value.
const DefaultPosition = 50.0

// Node is a course or module in a prerequisite graph.
//
// Prerequisites lists the IDs of nodes that must precede this one, in the
// order the author entered them. The list may reference IDs that are not
// part of the graph; [Graph.Validate] reports those instead of dropping them.
//
// X and Y are normalized coordinates in [0,100]. Positioned is false when
// the caller had no stored coordinates, in which case X and Y are ignored and
// the node is treated as sitting at [DefaultPosition].
type Node struct {
	ID            string
	Title         string
	Prerequisites []string

	X, Y       float64
	Positioned bool
}

// Label returns the title used in diagnostics, falling back to the ID.
func (n Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Position returns the node's coordinates, substituting [DefaultPosition]
// for nodes that were never positioned.
func (n Node) Position() (x, y float64) {
	if !n.Positioned {
		return DefaultPosition, DefaultPosition
	}
	return n.X, n.Y
}

// Graph is an ordered set of nodes connected by prerequisite references.
//
// Unlike a strict DAG, a Graph accepts cycles and references to unknown
// nodes: curriculum data is edited by hand and the layout engine must always
// produce something renderable. Insertion order is preserved and drives every
// deterministic ordering decision downstream.
//
// The zero value is not usable - use [New] or [FromNodes].
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes []*Node
	index map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]*Node)}
}

// FromNodes builds a graph from nodes in the given order.
// Returns the first error from [Graph.AddNode].
func FromNodes(nodes []Node) (*Graph, error) {
	g := New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode appends a node to the graph. The prerequisite slice is copied so
// later changes by the caller do not leak into the graph.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	n.Prerequisites = slices.Clone(n.Prerequisites)
	node := &n
	g.nodes = append(g.nodes, node)
	g.index[n.ID] = node
	return nil
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Prerequisites returns the prerequisite IDs of a node, or nil if the node
// does not exist. The slice must be treated as read-only.
func (g *Graph) Prerequisites(id string) []string {
	if n, ok := g.index[id]; ok {
		return n.Prerequisites
	}
	return nil
}

// Dependents returns the IDs of nodes that list id as a prerequisite,
// in insertion order.
func (g *Graph) Dependents(id string) []string {
	var out []string
	for _, n := range g.nodes {
		if slices.Contains(n.Prerequisites, id) {
			out = append(out, n.ID)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of prerequisite references, including
// references to unknown nodes.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.Prerequisites)
	}
	return count
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make([]*Node, 0, len(g.nodes)),
		index: make(map[string]*Node, len(g.nodes)),
	}
	for _, n := range g.nodes {
		cp := *n
		cp.Prerequisites = slices.Clone(n.Prerequisites)
		c.nodes = append(c.nodes, &cp)
		c.index[cp.ID] = &cp
	}
	return c
}

// PosMap creates a position lookup map from a slice of node IDs.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
