package layout

import (
	"math"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
)

// Placement is the computed position of one node.
type Placement struct {
	ID    string
	Title string
	Depth int
	X, Y  float64
}

// Layout is the result of [Build]. Placements are ordered layer by layer,
// and by input order within a layer.
type Layout struct {
	Mode       Mode
	MaxDepth   int
	Placements []Placement
	// Cyclic lists nodes whose depth came from the cycle fallback. It is
	// filled by [Layout.MarkCyclic]; Build itself never sets it.
	Cyclic []string
}

// Build computes positions for every node in g.
//
// Nodes are grouped into layers by prerequisite depth, then each layer is
// placed along the depth axis and its members spread along the other axis:
//
//	Column mode: x = 100/(maxDepth+2) * (depth+1); y_i = i * 100/(n+1)
//	Row mode:    y = 10 + depth/maxDepth * 75 (50 when maxDepth is 0);
//	             x = 50 for a single node, else 15 + i/(n-1) * 70
//
// All coordinates are rounded to the configured precision and clamped to
// [0,100]. Build does not read or modify the stored positions in g and
// always returns the same layout for the same graph and options. An empty
// graph yields a layout with no placements.
func Build(g *dag.Graph, opts ...Option) *Layout {
	cfg := newConfig(opts)
	l := &Layout{Mode: cfg.mode}
	if g.NodeCount() == 0 {
		return l
	}

	depths := transform.Depths(g)
	layers := transform.AssignLayers(g, depths)
	l.MaxDepth = len(layers) - 1
	l.Placements = make([]Placement, 0, g.NodeCount())

	for depth, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		along := cfg.depth.place(depth, len(layers))
		for i, n := range layer {
			across := cfg.spread.place(i, len(layer))
			x, y := along, across
			if cfg.mode == ModeRow {
				x, y = across, along
			}
			l.Placements = append(l.Placements, Placement{
				ID:    n.ID,
				Title: n.Title,
				Depth: depth,
				X:     round(x, cfg.precision),
				Y:     round(y, cfg.precision),
			})
		}
	}
	return l
}

// Stored builds a layout from the positions already held by the nodes of g,
// for maps whose stored coordinates are kept. Depths and layer order are
// computed exactly as in [Build]; unpositioned nodes sit at (50,50).
// Coordinates are taken as stored, without rounding.
func Stored(g *dag.Graph, opts ...Option) *Layout {
	cfg := newConfig(opts)
	l := &Layout{Mode: cfg.mode}
	if g.NodeCount() == 0 {
		return l
	}

	depths := transform.Depths(g)
	layers := transform.AssignLayers(g, depths)
	l.MaxDepth = len(layers) - 1
	l.Placements = make([]Placement, 0, g.NodeCount())
	for depth, layer := range layers {
		for _, n := range layer {
			x, y := n.Position()
			l.Placements = append(l.Placements, Placement{
				ID:    n.ID,
				Title: n.Title,
				Depth: depth,
				X:     x,
				Y:     y,
			})
		}
	}
	return l
}

// Apply returns copies of the graph's nodes, in insertion order, with the
// layout's positions written into X and Y. Nodes absent from the layout
// keep their stored coordinates. g is not modified.
func (l *Layout) Apply(g *dag.Graph) []dag.Node {
	pos := l.index()
	nodes := g.Nodes()
	out := make([]dag.Node, len(nodes))
	for i, n := range nodes {
		out[i] = *n
		if p, ok := pos[n.ID]; ok {
			out[i].X, out[i].Y = p.X, p.Y
			out[i].Positioned = true
		}
	}
	return out
}

// Placement returns the placement of the node with the given ID.
func (l *Layout) Placement(id string) (Placement, bool) {
	for _, p := range l.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// MarkCyclic records which placed nodes sit on a reported cycle so that
// renderers can flag them instead of trusting their depth.
func (l *Layout) MarkCyclic(v dag.Validation) {
	l.Cyclic = nil
	pos := l.index()
	for _, id := range v.CycleMembers() {
		if _, ok := pos[id]; ok {
			l.Cyclic = append(l.Cyclic, id)
		}
	}
}

func (l *Layout) index() map[string]Placement {
	m := make(map[string]Placement, len(l.Placements))
	for _, p := range l.Placements {
		m[p.ID] = p
	}
	return m
}

// round rounds v to the given number of decimals and clamps it to [0,100].
func round(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	v = math.Round(v*scale) / scale
	return math.Min(100, math.Max(0, v))
}
