package graph

import (
	"fmt"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/layout"
)

// =============================================================================
// Kind - Map Flavors
// =============================================================================

// Kind names the flavor of a curriculum map. It decides which layout mode
// and which layout-needed heuristic apply when the caller does not choose.
type Kind string

// Map kinds.
const (
	KindProgram    Kind = "program"
	KindCurriculum Kind = "curriculum"
	KindQuestMap   Kind = "quest-map"
	KindCourseMap  Kind = "course-map"
)

// DefaultKind is assumed for maps that do not declare a kind.
const DefaultKind = KindCourseMap

// ParseKind converts a string to a Kind. The empty string yields [DefaultKind].
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return DefaultKind, nil
	case KindProgram, KindCurriculum, KindQuestMap, KindCourseMap:
		return k, nil
	default:
		return "", fmt.Errorf("invalid kind: %q (must be one of: program, curriculum, quest-map, course-map)", s)
	}
}

// DefaultMode returns the layout mode conventionally used for this kind.
// Programs and curricula read top to bottom; course and quest maps read
// left to right.
func (k Kind) DefaultMode() layout.Mode {
	switch k {
	case KindProgram, KindCurriculum:
		return layout.ModeRow
	default:
		return layout.ModeColumn
	}
}

// DefaultHeuristic returns the layout-needed rule conventionally used for
// this kind.
func (k Kind) DefaultHeuristic() layout.Heuristic {
	switch k {
	case KindProgram, KindCurriculum:
		return layout.HeuristicMajority
	default:
		return layout.HeuristicOverlap
	}
}

// =============================================================================
// Map - Input Format
// =============================================================================

// Map is the canonical serialization format for a curriculum map: an
// ordered list of nodes with their prerequisites and stored positions.
//
// Node order is significant. It drives layer ordering in the layout and
// the order of validation messages.
type Map struct {
	Kind  Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node is one course, module or quest in a [Map].
//
// X and Y are optional. A node with neither coordinate has never been laid
// out; a node with only one of them treats the missing axis as 50.
type Node struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	X             *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y             *float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// EffectiveKind returns the declared kind, or [DefaultKind].
func (m Map) EffectiveKind() Kind {
	if m.Kind == "" {
		return DefaultKind
	}
	return m.Kind
}

// ToGraph converts a Map to a prerequisite graph, preserving node order.
// Returns an error for empty or duplicate node IDs.
func ToGraph(m Map) (*dag.Graph, error) {
	g := dag.New()
	for i, n := range m.Nodes {
		if err := g.AddNode(nodeToDAG(n)); err != nil {
			return nil, fmt.Errorf("add node %d (%q): %w", i, n.ID, err)
		}
	}
	return g, nil
}

// WithPositions returns a copy of m whose node coordinates are replaced by
// the layout's placements. Nodes missing from the layout keep their stored
// coordinates.
func (m Map) WithPositions(l *layout.Layout) Map {
	out := Map{Kind: m.Kind, Nodes: make([]Node, len(m.Nodes))}
	copy(out.Nodes, m.Nodes)
	for i, n := range out.Nodes {
		if p, ok := l.Placement(n.ID); ok {
			x, y := p.X, p.Y
			out.Nodes[i].X, out.Nodes[i].Y = &x, &y
		}
	}
	return out
}

func nodeToDAG(n Node) dag.Node {
	d := dag.Node{
		ID:            n.ID,
		Title:         n.Title,
		Prerequisites: n.Prerequisites,
	}
	if n.X != nil || n.Y != nil {
		d.Positioned = true
		d.X, d.Y = orDefault(n.X), orDefault(n.Y)
	}
	return d
}

func orDefault(v *float64) float64 {
	if v == nil {
		return dag.DefaultPosition
	}
	return *v
}

// =============================================================================
// Layout - Output Format
// =============================================================================

// Layout is the serialization format for a computed layout together with
// the validation report of the map it was computed from.
type Layout struct {
	Kind       Kind         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Mode       layout.Mode  `json:"mode" yaml:"mode"`
	MaxDepth   int          `json:"max_depth" yaml:"max_depth"`
	Nodes      []LayoutNode `json:"nodes" yaml:"nodes"`
	Cyclic     []string     `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`
	Validation *Validation  `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// LayoutNode is the computed position of one node. Depth is informational
// and never written back into a [Map].
type LayoutNode struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title,omitempty" yaml:"title,omitempty"`
	Depth int     `json:"depth" yaml:"depth"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Validation is the serialized form of [dag.Validation].
type Validation struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Issues []Issue  `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Issue is the serialized form of [dag.Issue].
type Issue struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Node    string   `json:"node" yaml:"node"`
	Missing string   `json:"missing,omitempty" yaml:"missing,omitempty"`
	Path    []string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string   `json:"message" yaml:"message"`
}

// FromLayout converts a computed layout to its serialization format.
// A nil validation is omitted from the output.
func FromLayout(kind Kind, l *layout.Layout, v *dag.Validation) Layout {
	out := Layout{
		Kind:     kind,
		Mode:     l.Mode,
		MaxDepth: l.MaxDepth,
		Nodes:    make([]LayoutNode, len(l.Placements)),
		Cyclic:   l.Cyclic,
	}
	for i, p := range l.Placements {
		out.Nodes[i] = LayoutNode{ID: p.ID, Title: p.Title, Depth: p.Depth, X: p.X, Y: p.Y}
	}
	if v != nil {
		sv := FromValidation(*v)
		out.Validation = &sv
	}
	return out
}

// ToLayout converts a serialized layout back to the internal form, for
// example after reading it from a cache.
func (l Layout) ToLayout() *layout.Layout {
	out := &layout.Layout{
		Mode:       l.Mode,
		MaxDepth:   l.MaxDepth,
		Placements: make([]layout.Placement, len(l.Nodes)),
		Cyclic:     l.Cyclic,
	}
	for i, n := range l.Nodes {
		out.Placements[i] = layout.Placement{ID: n.ID, Title: n.Title, Depth: n.Depth, X: n.X, Y: n.Y}
	}
	return out
}

// FromValidation converts a validation result to its serialization format.
func FromValidation(v dag.Validation) Validation {
	out := Validation{Valid: v.Valid, Errors: v.Errors}
	for _, is := range v.Issues {
		out.Issues = append(out.Issues, Issue{
			Kind:    is.Kind.String(),
			Node:    is.NodeID,
			Missing: is.MissingID,
			Path:    is.Path,
			Message: is.Message,
		})
	}
	return out
}
