package layout

import (
	"testing"

	"github.com/matzehuels/coursemap/pkg/dag"
)

func at(id string, x, y float64) *dag.Node {
	return &dag.Node{ID: id, X: x, Y: y, Positioned: true}
}

func TestNeedsLayout_Overlap(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*dag.Node
		want  bool
	}{
		{"empty", nil, false},
		{"one at default", []*dag.Node{at("a", 10, 10), at("b", 50, 50)}, true},
		{"unpositioned counts as default", []*dag.Node{at("a", 10, 10), {ID: "b"}}, true},
		{"overlapping pair", []*dag.Node{at("a", 10, 10), at("b", 15, 15)}, true},
		{"exactly at threshold", []*dag.Node{at("a", 10, 10), at("b", 20, 10)}, false},
		{"well spread", []*dag.Node{at("a", 10, 10), at("b", 80, 80), at("c", 10, 80)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsLayout(tt.nodes, HeuristicOverlap); got != tt.want {
				t.Errorf("NeedsLayout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsLayout_Majority(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*dag.Node
		want  bool
	}{
		{"empty", nil, false},
		{"all default", []*dag.Node{at("a", 50, 50), at("b", 50, 50)}, true},
		{"half default is not more than half", []*dag.Node{at("a", 50, 50), at("b", 10, 10)}, false},
		{"two of three unpositioned", []*dag.Node{{ID: "a"}, {ID: "b"}, at("c", 10, 10)}, true},
		{"overlap alone does not trigger", []*dag.Node{at("a", 10, 10), at("b", 11, 11)}, false},
		{"near default within rounding", []*dag.Node{at("a", 50.004, 49.996)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsLayout(tt.nodes, HeuristicMajority); got != tt.want {
				t.Errorf("NeedsLayout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsLayout_ClearsAfterLayout(t *testing.T) {
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "a", X: 50, Y: 50, Positioned: true},
		{ID: "b", Prerequisites: []string{"a"}, X: 50, Y: 50, Positioned: true},
		{ID: "c", Prerequisites: []string{"a"}, X: 50, Y: 50, Positioned: true},
		{ID: "d", Prerequisites: []string{"b", "c"}, X: 50, Y: 50, Positioned: true},
	})

	for _, tc := range []struct {
		mode Mode
		h    Heuristic
	}{
		{ModeRow, HeuristicMajority},
		{ModeRow, HeuristicOverlap},
		{ModeColumn, HeuristicMajority},
		{ModeColumn, HeuristicOverlap},
	} {
		if !NeedsLayout(g.Nodes(), tc.h) {
			t.Fatalf("%s: NeedsLayout() = false before layout", tc.h)
		}
		laid, _ := dag.FromNodes(Build(g, WithMode(tc.mode)).Apply(g))
		if NeedsLayout(laid.Nodes(), tc.h) {
			t.Errorf("%s/%s: NeedsLayout() = true after layout", tc.mode, tc.h)
		}
	}
}

func TestParseHeuristic(t *testing.T) {
	if _, err := ParseHeuristic("overlap"); err != nil {
		t.Errorf("ParseHeuristic(overlap) error = %v", err)
	}
	if _, err := ParseHeuristic("sometimes"); err == nil {
		t.Error("ParseHeuristic(sometimes) should fail")
	}
}
