package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursemap/pkg/dag"
)

func graphOf(t *testing.T, nodes ...dag.Node) *dag.Graph {
	t.Helper()
	g, err := dag.FromNodes(nodes)
	if err != nil {
		t.Fatalf("FromNodes() error = %v", err)
	}
	return g
}

func chain(t *testing.T) *dag.Graph {
	return graphOf(t,
		dag.Node{ID: "a", Title: "A"},
		dag.Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
		dag.Node{ID: "c", Title: "C", Prerequisites: []string{"b"}},
	)
}

func diamond(t *testing.T) *dag.Graph {
	return graphOf(t,
		dag.Node{ID: "a", Title: "A"},
		dag.Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
		dag.Node{ID: "c", Title: "C", Prerequisites: []string{"a"}},
		dag.Node{ID: "d", Title: "D", Prerequisites: []string{"b", "c"}},
	)
}

func TestBuild_RowLinearChain(t *testing.T) {
	l := Build(chain(t), WithMode(ModeRow))

	want := []Placement{
		{ID: "a", Title: "A", Depth: 0, X: 50, Y: 10},
		{ID: "b", Title: "B", Depth: 1, X: 50, Y: 47.5},
		{ID: "c", Title: "C", Depth: 2, X: 50, Y: 85},
	}
	if diff := cmp.Diff(want, l.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if l.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", l.MaxDepth)
	}
}

func TestBuild_RowDiamond(t *testing.T) {
	l := Build(diamond(t), WithMode(ModeRow))

	want := map[string][2]float64{
		"a": {50, 10},
		"b": {15, 47.5},
		"c": {85, 47.5},
		"d": {50, 85},
	}
	for id, xy := range want {
		p, ok := l.Placement(id)
		if !ok {
			t.Fatalf("no placement for %s", id)
		}
		if p.X != xy[0] || p.Y != xy[1] {
			t.Errorf("%s = (%v, %v), want (%v, %v)", id, p.X, p.Y, xy[0], xy[1])
		}
	}
}

func TestBuild_RowSingleLayerCentered(t *testing.T) {
	l := Build(graphOf(t, dag.Node{ID: "solo"}), WithMode(ModeRow))

	p := l.Placements[0]
	if p.X != 50 || p.Y != 50 {
		t.Errorf("solo = (%v, %v), want (50, 50)", p.X, p.Y)
	}
}

func TestBuild_RowWideLayer(t *testing.T) {
	g := graphOf(t,
		dag.Node{ID: "a"},
		dag.Node{ID: "b"},
		dag.Node{ID: "c"},
		dag.Node{ID: "d", Prerequisites: []string{"a"}},
	)
	l := Build(g, WithMode(ModeRow))

	xs := []float64{}
	for _, p := range l.Placements[:3] {
		xs = append(xs, p.X)
	}
	if diff := cmp.Diff([]float64{15, 50, 85}, xs); diff != "" {
		t.Errorf("layer 0 x mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ColumnChain(t *testing.T) {
	l := Build(chain(t), WithMode(ModeColumn))

	// 100/(2+2) = 25 per depth slot, single node per layer at y = 50.
	want := []Placement{
		{ID: "a", Title: "A", Depth: 0, X: 25, Y: 50},
		{ID: "b", Title: "B", Depth: 1, X: 50, Y: 50},
		{ID: "c", Title: "C", Depth: 2, X: 75, Y: 50},
	}
	if diff := cmp.Diff(want, l.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ColumnSpreadAndRounding(t *testing.T) {
	g := graphOf(t,
		dag.Node{ID: "a"},
		dag.Node{ID: "b"},
		dag.Node{ID: "c"},
	)
	l := Build(g)

	// Default mode is column; three nodes at depth 0 spaced 100/4.
	wantY := []float64{25, 50, 75}
	for i, p := range l.Placements {
		if p.X != 50 {
			t.Errorf("%s x = %v, want 50", p.ID, p.X)
		}
		if p.Y != wantY[i] {
			t.Errorf("%s y = %v, want %v", p.ID, p.Y, wantY[i])
		}
	}

	// Two layers of two: depth x = 100/3 → 33.33 and 66.67.
	g = graphOf(t,
		dag.Node{ID: "a"},
		dag.Node{ID: "b"},
		dag.Node{ID: "c", Prerequisites: []string{"a"}},
		dag.Node{ID: "d", Prerequisites: []string{"b"}},
	)
	l = Build(g, WithMode(ModeColumn))
	if p, _ := l.Placement("a"); p.X != 33.33 || p.Y != 33.33 {
		t.Errorf("a = (%v, %v), want (33.33, 33.33)", p.X, p.Y)
	}
	if p, _ := l.Placement("d"); p.X != 66.67 || p.Y != 66.67 {
		t.Errorf("d = (%v, %v), want (66.67, 66.67)", p.X, p.Y)
	}
}

func TestBuild_Precision(t *testing.T) {
	g := graphOf(t, dag.Node{ID: "a"}, dag.Node{ID: "b"}, dag.Node{ID: "c", Prerequisites: []string{"a"}})

	l := Build(g, WithPrecision(0))
	if p, _ := l.Placement("a"); p.Y != 33 {
		t.Errorf("a.y = %v, want 33 at precision 0", p.Y)
	}
	l = Build(g, WithPrecision(-1))
	if p, _ := l.Placement("a"); p.Y != 33.33 {
		t.Errorf("a.y = %v, want default precision", p.Y)
	}
}

func TestBuild_CustomAxesClamped(t *testing.T) {
	l := Build(chain(t),
		WithMode(ModeRow),
		WithDepthAxis(Axis{Dist: Span, Min: -20, Max: 150}),
	)
	for _, p := range l.Placements {
		if p.Y < 0 || p.Y > 100 {
			t.Errorf("%s y = %v escaped [0,100]", p.ID, p.Y)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	l := Build(dag.New(), WithMode(ModeRow))
	if len(l.Placements) != 0 {
		t.Errorf("Build(empty) placements = %v, want none", l.Placements)
	}
	if l.Mode != ModeRow {
		t.Errorf("Mode = %q, want row", l.Mode)
	}
}

func TestBuild_BoundsAndIdempotence(t *testing.T) {
	g := graphOf(t,
		dag.Node{ID: "a", Prerequisites: []string{"c"}},
		dag.Node{ID: "b", Prerequisites: []string{"a", "ghost"}},
		dag.Node{ID: "c", Prerequisites: []string{"b"}},
		dag.Node{ID: "d"},
		dag.Node{ID: "e", Prerequisites: []string{"d", "e"}},
		dag.Node{ID: "f", Prerequisites: []string{"d"}},
		dag.Node{ID: "g", Prerequisites: []string{"f", "b"}},
	)

	for _, mode := range []Mode{ModeColumn, ModeRow} {
		first := Build(g, WithMode(mode))
		if len(first.Placements) != g.NodeCount() {
			t.Fatalf("%s: %d placements, want %d", mode, len(first.Placements), g.NodeCount())
		}
		for _, p := range first.Placements {
			if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
				t.Errorf("%s: %s = (%v, %v) out of bounds", mode, p.ID, p.X, p.Y)
			}
		}
		second := Build(g, WithMode(mode))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: second run differs (-first +second):\n%s", mode, diff)
		}
	}
}

func TestBuild_IgnoresStoredPositions(t *testing.T) {
	g1 := chain(t)
	g2 := graphOf(t,
		dag.Node{ID: "a", Title: "A", X: 3, Y: 4, Positioned: true},
		dag.Node{ID: "b", Title: "B", Prerequisites: []string{"a"}, X: 90, Y: 1, Positioned: true},
		dag.Node{ID: "c", Title: "C", Prerequisites: []string{"b"}},
	)
	if diff := cmp.Diff(Build(g1).Placements, Build(g2).Placements); diff != "" {
		t.Errorf("stored positions affected layout (-clean +stored):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	g := diamond(t)
	l := Build(g, WithMode(ModeRow))

	nodes := l.Apply(g)
	if len(nodes) != 4 {
		t.Fatalf("Apply() returned %d nodes, want 4", len(nodes))
	}
	if nodes[1].ID != "b" || nodes[1].X != 15 || !nodes[1].Positioned {
		t.Errorf("Apply()[1] = %+v, want b at x=15", nodes[1])
	}
	orig, _ := g.Node("b")
	if orig.Positioned || orig.X != 0 {
		t.Error("Apply() modified the input graph")
	}
}

func TestMarkCyclic(t *testing.T) {
	g := graphOf(t,
		dag.Node{ID: "a", Prerequisites: []string{"b"}},
		dag.Node{ID: "b", Prerequisites: []string{"a"}},
		dag.Node{ID: "c"},
	)
	l := Build(g)
	l.MarkCyclic(g.Validate())

	if diff := cmp.Diff([]string{"a", "b"}, l.Cyclic); diff != "" {
		t.Errorf("Cyclic mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"row", ModeRow, false},
		{"column", ModeColumn, false},
		{"ROW", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestStored(t *testing.T) {
	g := graphOf(t,
		dag.Node{ID: "a", Title: "A", X: 12.345, Y: 80, Positioned: true},
		dag.Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
	)
	l := Stored(g, WithMode(ModeRow))

	want := []Placement{
		{ID: "a", Title: "A", Depth: 0, X: 12.345, Y: 80},
		{ID: "b", Title: "B", Depth: 1, X: 50, Y: 50},
	}
	if diff := cmp.Diff(want, l.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if l.Mode != ModeRow || l.MaxDepth != 1 {
		t.Errorf("Stored() mode=%s maxDepth=%d", l.Mode, l.MaxDepth)
	}
	if got := Stored(dag.New()); len(got.Placements) != 0 {
		t.Error("Stored(empty) should have no placements")
	}
}
