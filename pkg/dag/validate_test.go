package dag

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustGraph(t *testing.T, nodes ...Node) *Graph {
	t.Helper()
	g, err := FromNodes(nodes)
	if err != nil {
		t.Fatalf("FromNodes() error = %v", err)
	}
	return g
}

func TestValidate_Acyclic(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: "A"},
		Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
		Node{ID: "c", Title: "C", Prerequisites: []string{"a"}},
		Node{ID: "d", Title: "D", Prerequisites: []string{"b", "c"}},
	)

	v := g.Validate()
	if !v.Valid {
		t.Errorf("Validate() valid = false, errors = %v", v.Errors)
	}
	if len(v.Errors) != 0 || len(v.Issues) != 0 {
		t.Errorf("Validate() returned issues for a diamond: %v", v.Errors)
	}
}

func TestValidate_TriangleCycle(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: "A", Prerequisites: []string{"b"}},
		Node{ID: "b", Title: "B", Prerequisites: []string{"c"}},
		Node{ID: "c", Title: "C", Prerequisites: []string{"a"}},
	)

	v := g.Validate()
	if v.Valid {
		t.Fatal("Validate() valid = true for A→B→C→A")
	}
	if len(v.Errors) != 1 {
		t.Fatalf("Validate() errors = %v, want exactly one", v.Errors)
	}
	if want := "Circular dependency detected: A → B → C → A"; v.Errors[0] != want {
		t.Errorf("error = %q, want %q", v.Errors[0], want)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "a"}, v.Issues[0].Path); diff != "" {
		t.Errorf("cycle path mismatch (-want +got):\n%s", diff)
	}
	if v.Issues[0].Kind != IssueCycle {
		t.Errorf("issue kind = %v, want cycle", v.Issues[0].Kind)
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	g := mustGraph(t, Node{ID: "a", Title: "A", Prerequisites: []string{"a"}})

	v := g.Validate()
	if v.Valid {
		t.Fatal("Validate() valid = true for self-loop")
	}
	if diff := cmp.Diff([]string{"a", "a"}, v.Issues[0].Path); diff != "" {
		t.Errorf("cycle path mismatch (-want +got):\n%s", diff)
	}
	msg := strings.TrimPrefix(v.Errors[0], "Circular dependency detected: ")
	for _, part := range strings.Split(msg, cycleArrow) {
		if part != "A" {
			t.Errorf("self-loop message %q mentions %q", v.Errors[0], part)
		}
	}
}

func TestValidate_Dangling(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: "Intro"},
		Node{ID: "b", Title: "Next", Prerequisites: []string{"a", "ghost", "phantom"}},
	)

	v := g.Validate()
	if v.Valid {
		t.Fatal("Validate() valid = true with dangling references")
	}
	want := []string{
		`"Next" references non-existent prerequisite ID: ghost`,
		`"Next" references non-existent prerequisite ID: phantom`,
	}
	if diff := cmp.Diff(want, v.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if v.Issues[0].MissingID != "ghost" || v.Issues[0].NodeID != "b" {
		t.Errorf("issue = %+v, want missing ghost on b", v.Issues[0])
	}
}

func TestValidate_DanglingKeepsTitleVerbatim(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: `Intro "101" \ Basics`, Prerequisites: []string{"x"}},
	)

	v := g.Validate()
	want := `"Intro "101" \ Basics" references non-existent prerequisite ID: x`
	if len(v.Errors) != 1 || v.Errors[0] != want {
		t.Errorf("errors = %q, want [%s]", v.Errors, want)
	}
}

func TestValidate_DanglingBeforeCycles(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: "A", Prerequisites: []string{"b"}},
		Node{ID: "b", Title: "B", Prerequisites: []string{"a", "x"}},
	)

	v := g.Validate()
	if len(v.Issues) != 2 {
		t.Fatalf("Validate() issues = %v, want 2", v.Errors)
	}
	if v.Issues[0].Kind != IssueDangling || v.Issues[1].Kind != IssueCycle {
		t.Errorf("issue order = [%v %v], want [dangling cycle]", v.Issues[0].Kind, v.Issues[1].Kind)
	}
}

func TestValidate_DisjointCycles(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "a", Title: "A", Prerequisites: []string{"b"}},
		Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
		Node{ID: "c", Title: "C", Prerequisites: []string{"d"}},
		Node{ID: "d", Title: "D", Prerequisites: []string{"c"}},
	)

	v := g.Validate()
	want := []string{
		"Circular dependency detected: A → B → A",
		"Circular dependency detected: C → D → C",
	}
	if diff := cmp.Diff(want, v.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, v.CycleMembers()); diff != "" {
		t.Errorf("CycleMembers() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UntitledNodesUseID(t *testing.T) {
	g := mustGraph(t,
		Node{ID: "x", Prerequisites: []string{"y"}},
		Node{ID: "y", Prerequisites: []string{"x"}},
	)

	v := g.Validate()
	if want := "Circular dependency detected: x → y → x"; v.Errors[0] != want {
		t.Errorf("error = %q, want %q", v.Errors[0], want)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	build := func() *Graph {
		return mustGraph(t,
			Node{ID: "a", Title: "A", Prerequisites: []string{"c", "nope"}},
			Node{ID: "b", Title: "B", Prerequisites: []string{"a"}},
			Node{ID: "c", Title: "C", Prerequisites: []string{"b"}},
			Node{ID: "d", Title: "D", Prerequisites: []string{"d"}},
		)
	}

	first := build().Validate()
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first.Errors, build().Validate().Errors); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	v := New().Validate()
	if !v.Valid || v.Errors != nil {
		t.Errorf("Validate() on empty graph = %+v, want valid with no errors", v)
	}
}

func TestIssueKindString(t *testing.T) {
	if IssueDangling.String() != "dangling" || IssueCycle.String() != "cycle" {
		t.Errorf("IssueKind.String() = %q, %q", IssueDangling, IssueCycle)
	}
}
