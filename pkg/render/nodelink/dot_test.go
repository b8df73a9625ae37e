package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/layout"
)

func chainLayout(t *testing.T) (*layout.Layout, *dag.Graph) {
	t.Helper()
	g, err := dag.FromNodes([]dag.Node{
		{ID: "a", Title: "Intro"},
		{ID: "b", Title: "Advanced", Prerequisites: []string{"a", "ghost"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return layout.Build(g, layout.WithMode(layout.ModeRow)), g
}

func TestToDOT_Basic(t *testing.T) {
	l, g := chainLayout(t)
	dot := ToDOT(l, g, Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`"a" [label="Intro"`,
		`"b" [label="Advanced"`,
		`"a" -> "b";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("ToDOT() should skip dangling prerequisites")
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	l, g := chainLayout(t)

	// Row mode: a at (50,10), b at (50,85). Canvas 10x10 inches, Y flipped.
	dot := ToDOT(l, g, Options{Width: 10, Height: 10})
	if !strings.Contains(dot, `pos="5.00,9.00!"`) {
		t.Errorf("a not pinned at 5,9:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="5.00,1.50!"`) {
		t.Errorf("b not pinned at 5,1.5:\n%s", dot)
	}
}

func TestToDOT_DefaultSize(t *testing.T) {
	l, g := chainLayout(t)
	dot := ToDOT(l, g, Options{})

	// x = 0.5 * 12, y = 0.9 * 8
	if !strings.Contains(dot, `pos="6.00,7.20!"`) {
		t.Errorf("default canvas not applied:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	l, g := chainLayout(t)
	dot := ToDOT(l, g, Options{Detailed: true})

	if !strings.Contains(dot, "depth 1") {
		t.Error("ToDOT() detailed output missing depth")
	}
}

func TestToDOT_Cyclic(t *testing.T) {
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "a", Prerequisites: []string{"b"}},
		{ID: "b", Prerequisites: []string{"a"}},
		{ID: "c", Prerequisites: []string{"a"}},
	})
	l := layout.Build(g)
	l.MarkCyclic(g.Validate())

	dot := ToDOT(l, g, Options{})
	if !strings.Contains(dot, `"b" -> "a" [color=red];`) {
		t.Errorf("cycle edge not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "c";`) {
		t.Errorf("edge leaving the cycle should be plain:\n%s", dot)
	}
	if strings.Count(dot, "penwidth=2") != 2 {
		t.Errorf("want 2 highlighted nodes:\n%s", dot)
	}
}

func TestToDOT_NilGraph(t *testing.T) {
	l, _ := chainLayout(t)
	dot := ToDOT(l, nil, Options{})
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() without a graph should emit no edges")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{"dot", FormatDOT, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestRender_DOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), "digraph G {}", FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "digraph G {}" {
		t.Errorf("Render(dot) = %q", out)
	}
	if _, err := Render(context.Background(), "digraph G {}", Format("pdf")); err == nil {
		t.Error("Render(pdf) should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	l, g := chainLayout(t)
	svg, err := RenderSVG(context.Background(), ToDOT(l, g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Intro") {
		t.Errorf("RenderSVG output does not look like the diagram:\n%.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
