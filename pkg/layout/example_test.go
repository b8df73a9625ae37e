package layout_test

import (
	"fmt"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/layout"
)

func ExampleBuild_row() {
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "a", Title: "Foundations"},
		{ID: "b", Title: "Data", Prerequisites: []string{"a"}},
		{ID: "c", Title: "Web", Prerequisites: []string{"a"}},
		{ID: "d", Title: "Capstone", Prerequisites: []string{"b", "c"}},
	})

	l := layout.Build(g, layout.WithMode(layout.ModeRow))
	for _, p := range l.Placements {
		fmt.Printf("%-11s depth=%d x=%v y=%v\n", p.Title, p.Depth, p.X, p.Y)
	}
	// Output:
	// Foundations depth=0 x=50 y=10
	// Data        depth=1 x=15 y=47.5
	// Web         depth=1 x=85 y=47.5
	// Capstone    depth=2 x=50 y=85
}

func ExampleNeedsLayout() {
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "a"},
		{ID: "b", Prerequisites: []string{"a"}},
	})
	fmt.Println("before:", layout.NeedsLayout(g.Nodes(), layout.HeuristicMajority))

	laid, _ := dag.FromNodes(layout.Build(g, layout.WithMode(layout.ModeRow)).Apply(g))
	fmt.Println("after:", layout.NeedsLayout(laid.Nodes(), layout.HeuristicMajority))
	// Output:
	// before: true
	// after: false
}
