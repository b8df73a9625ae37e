package transform_test

import (
	"fmt"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
)

func ExampleDepths() {
	// Diamond: basics → (data, web) → capstone
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "basics"},
		{ID: "data", Prerequisites: []string{"basics"}},
		{ID: "web", Prerequisites: []string{"basics"}},
		{ID: "capstone", Prerequisites: []string{"data", "web"}},
	})

	depths := transform.Depths(g)
	for _, n := range g.Nodes() {
		fmt.Printf("%s: %d\n", n.ID, depths[n.ID])
	}
	// Output:
	// basics: 0
	// data: 1
	// web: 1
	// capstone: 2
}

func ExampleAssignLayers() {
	g, _ := dag.FromNodes([]dag.Node{
		{ID: "capstone", Prerequisites: []string{"data", "web"}},
		{ID: "web", Prerequisites: []string{"basics"}},
		{ID: "basics"},
		{ID: "data", Prerequisites: []string{"basics"}},
	})

	layers := transform.AssignLayers(g, transform.Depths(g))
	for depth, layer := range layers {
		fmt.Println(depth, dag.NodeIDs(layer))
	}
	// Output:
	// 0 [basics]
	// 1 [web data]
	// 2 [capstone]
}
