package graph

import (
	"reflect"
	"testing"
)

// TestCanonicalize_DirectionIgnored verifies that raw edges in either
// direction accumulate onto the same undirected edge
func TestCanonicalize_DirectionIgnored(t *testing.T) {
	g := Canonicalize(
		[]NodeRecord{{ID: "X"}, {ID: "Y"}},
		[]EdgeRecord{
			{Source: "X", Target: "Y"},
			{Source: "Y", Target: "X"},
			{Source: "X", Target: "Y"},
		},
	)

	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 canonical edge, got %d", g.EdgeCount())
	}
	if w := g.Weight("X", "Y"); w != 3 {
		t.Errorf("Expected weight 3 for {X,Y}, got %d", w)
	}
	if w := g.Weight("Y", "X"); w != 3 {
		t.Errorf("Expected symmetric weight 3 for {Y,X}, got %d", w)
	}
}

// TestCanonicalize_SelfLoopsDropped verifies self-referencing edges are
// excluded from the edge set and from weight accumulation
func TestCanonicalize_SelfLoopsDropped(t *testing.T) {
	g := Canonicalize(
		[]NodeRecord{{ID: "A"}, {ID: "B"}},
		[]EdgeRecord{
			{Source: "A", Target: "A"},
			{Source: "A", Target: "B"},
		},
	)

	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 edge after dropping self-loop, got %d", g.EdgeCount())
	}
	if g.HasEdge("A", "A") {
		t.Error("Self-loop should not exist in canonical graph")
	}
	if w := g.Weight("A", "B"); w != 1 {
		t.Errorf("Expected weight 1 for {A,B}, got %d", w)
	}
}

// TestCanonicalize_MalformedRecordsSkipped verifies silent dropping of
// records with missing required fields
func TestCanonicalize_MalformedRecordsSkipped(t *testing.T) {
	g := Canonicalize(
		[]NodeRecord{{ID: ""}, {ID: "A", Label: "Alpha"}},
		[]EdgeRecord{
			{Source: "", Target: "A"},
			{Source: "A", Target: ""},
			{Source: "A", Target: "B"},
		},
	)

	if g.NodeCount() != 2 {
		t.Fatalf("Expected 2 nodes, got %d (%v)", g.NodeCount(), g.Nodes())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
}

// TestCanonicalize_MissingEndpointCreated verifies an edge endpoint absent
// from the node list is created with an empty label
func TestCanonicalize_MissingEndpointCreated(t *testing.T) {
	g := Canonicalize(
		[]NodeRecord{{ID: "A", Label: "Alpha"}},
		[]EdgeRecord{{Source: "A", Target: "B"}},
	)

	if !g.HasNode("B") {
		t.Fatal("Endpoint B should have been created")
	}
	if label := g.Label("B"); label != "" {
		t.Errorf("Expected empty label for created node, got %q", label)
	}
	if label := g.Label("A"); label != "Alpha" {
		t.Errorf("Expected label Alpha for A, got %q", label)
	}
}

// TestCanonicalize_DuplicateNodeFirstLabelWins verifies later duplicate
// node records are ignored
func TestCanonicalize_DuplicateNodeFirstLabelWins(t *testing.T) {
	g := Canonicalize(
		[]NodeRecord{
			{ID: "A", Label: "First"},
			{ID: "A", Label: "Second"},
		},
		nil,
	)

	if g.NodeCount() != 1 {
		t.Fatalf("Expected 1 node, got %d", g.NodeCount())
	}
	if label := g.Label("A"); label != "First" {
		t.Errorf("Expected first label to win, got %q", label)
	}
}

// TestCanonicalize_EmptyInput verifies empty record lists produce a
// zero-node graph without error
func TestCanonicalize_EmptyInput(t *testing.T) {
	g := Canonicalize(nil, nil)

	if g.NodeCount() != 0 {
		t.Errorf("Expected 0 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
}

// TestCanonicalize_Idempotent verifies re-canonicalizing an already
// canonical graph yields an identical graph
func TestCanonicalize_Idempotent(t *testing.T) {
	first := Canonicalize(
		[]NodeRecord{{ID: "A", Label: "a"}, {ID: "B"}, {ID: "C"}},
		[]EdgeRecord{
			{Source: "A", Target: "B"},
			{Source: "B", Target: "A"},
			{Source: "B", Target: "C"},
		},
	)

	// Feed the canonical graph back through as records, one edge record
	// per unit of weight.
	nodes := make([]NodeRecord, 0, first.NodeCount())
	for _, id := range first.Nodes() {
		nodes = append(nodes, NodeRecord{ID: id, Label: first.Label(id)})
	}
	edges := make([]EdgeRecord, 0)
	for _, u := range first.Nodes() {
		for _, v := range first.Neighbors(u) {
			if u >= v {
				continue
			}
			for i := 0; i < first.Weight(u, v); i++ {
				edges = append(edges, EdgeRecord{Source: u, Target: v})
			}
		}
	}

	second := Canonicalize(nodes, edges)

	if !reflect.DeepEqual(first.Nodes(), second.Nodes()) {
		t.Fatalf("Node order changed: %v vs %v", first.Nodes(), second.Nodes())
	}
	for _, u := range first.Nodes() {
		if first.Label(u) != second.Label(u) {
			t.Errorf("Label changed for %s", u)
		}
		for _, v := range first.Neighbors(u) {
			if first.Weight(u, v) != second.Weight(u, v) {
				t.Errorf("Weight changed for {%s,%s}: %d vs %d",
					u, v, first.Weight(u, v), second.Weight(u, v))
			}
		}
	}
	if first.EdgeCount() != second.EdgeCount() {
		t.Errorf("Edge count changed: %d vs %d", first.EdgeCount(), second.EdgeCount())
	}
}

// TestGraph_DegreeAndWeightedDegree verifies the two degree notions
func TestGraph_DegreeAndWeightedDegree(t *testing.T) {
	g := New()
	g.IncrementEdge("A", "B", 3)
	g.IncrementEdge("A", "C", 1)

	if d := g.Degree("A"); d != 2 {
		t.Errorf("Expected degree 2 for A, got %d", d)
	}
	if wd := g.WeightedDegree("A"); wd != 4 {
		t.Errorf("Expected weighted degree 4 for A, got %d", wd)
	}
	if tw := g.TotalWeight(); tw != 4 {
		t.Errorf("Expected total weight 4, got %d", tw)
	}
}

// TestGraph_Subgraph verifies induced subgraphs keep labels and weights
// and drop edges crossing the boundary
func TestGraph_Subgraph(t *testing.T) {
	g := New()
	g.AddNode("A", "Alpha")
	g.AddNode("B", "Beta")
	g.AddNode("C", "Gamma")
	g.IncrementEdge("A", "B", 2)
	g.IncrementEdge("B", "C", 1)

	sub := g.Subgraph(map[string]bool{"A": true, "B": true})

	if sub.NodeCount() != 2 {
		t.Fatalf("Expected 2 nodes in subgraph, got %d", sub.NodeCount())
	}
	if sub.Label("A") != "Alpha" || sub.Label("B") != "Beta" {
		t.Error("Subgraph should preserve labels")
	}
	if w := sub.Weight("A", "B"); w != 2 {
		t.Errorf("Expected weight 2 preserved, got %d", w)
	}
	if sub.HasNode("C") || sub.HasEdge("B", "C") {
		t.Error("Subgraph should not contain excluded nodes or crossing edges")
	}
}

// TestGraph_DeterministicOrder verifies node iteration follows insertion
// order
func TestGraph_DeterministicOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "a", "m"} {
		g.AddNode(id, "")
	}

	want := []string{"z", "a", "m"}
	if got := g.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected insertion order %v, got %v", want, got)
	}
}
