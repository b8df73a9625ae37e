package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/coursemap/pkg/dag"
)

// Heuristic selects the rule used by [NeedsLayout].
type Heuristic string

const (
	// HeuristicOverlap flags a map if any node sits at the default position
	// or any two nodes are closer than [OverlapThreshold].
	// Used by module course maps and quest maps.
	HeuristicOverlap Heuristic = "overlap"
	// HeuristicMajority flags a map if more than half of its nodes sit at
	// the default position. Used by program and curriculum maps.
	HeuristicMajority Heuristic = "majority"
)

// ParseHeuristic converts a string to a Heuristic, rejecting unknown values.
func ParseHeuristic(s string) (Heuristic, error) {
	switch h := Heuristic(s); h {
	case HeuristicOverlap, HeuristicMajority:
		return h, nil
	default:
		return "", fmt.Errorf("invalid heuristic: %q (must be one of: overlap, majority)", s)
	}
}

// OverlapThreshold is the Euclidean distance below which two nodes are
// considered overlapping.
const OverlapThreshold = 10.0

// defaultTolerance absorbs rounding when comparing against the default
// position. It is half of the smallest step at DefaultPrecision.
const defaultTolerance = 0.005

// NeedsLayout reports whether stored positions look degenerate enough that
// the caller should recompute the layout. Unpositioned nodes count as sitting
// at the default position (50,50). An empty node list never needs layout.
//
// The result is advisory: it never prevents [Build] from running.
func NeedsLayout(nodes []*dag.Node, h Heuristic) bool {
	if len(nodes) == 0 {
		return false
	}
	switch h {
	case HeuristicMajority:
		return majorityAtDefault(nodes)
	default:
		return anyAtDefault(nodes) || Overlapping(nodes, OverlapThreshold)
	}
}

// Overlapping reports whether any two nodes are closer than threshold.
func Overlapping(nodes []*dag.Node, threshold float64) bool {
	for i := 0; i < len(nodes); i++ {
		xi, yi := nodes[i].Position()
		for j := i + 1; j < len(nodes); j++ {
			xj, yj := nodes[j].Position()
			if math.Hypot(xi-xj, yi-yj) < threshold {
				return true
			}
		}
	}
	return false
}

func atDefault(n *dag.Node) bool {
	x, y := n.Position()
	return math.Abs(x-dag.DefaultPosition) <= defaultTolerance &&
		math.Abs(y-dag.DefaultPosition) <= defaultTolerance
}

func anyAtDefault(nodes []*dag.Node) bool {
	for _, n := range nodes {
		if atDefault(n) {
			return true
		}
	}
	return false
}

func majorityAtDefault(nodes []*dag.Node) bool {
	count := 0
	for _, n := range nodes {
		if atDefault(n) {
			count++
		}
	}
	return float64(count) > float64(len(nodes))*0.5
}
