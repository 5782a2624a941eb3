package algorithms

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// twoTriangles builds two triangles joined by a single bridge C-D
func twoTriangles(t *testing.T) *graph.Graph {
	t.Helper()
	return buildGraph(t,
		[]string{"A", "B", "C", "D", "E", "F"},
		[][2]string{
			{"A", "B"}, {"B", "C"}, {"C", "A"},
			{"D", "E"}, {"E", "F"}, {"F", "D"},
			{"C", "D"},
		},
	)
}

// TestLouvain_TwoTrianglesSplit tests that a weak bridge does not merge
// two dense triangles, for several seeds
func TestLouvain_TwoTrianglesSplit(t *testing.T) {
	g := twoTriangles(t)

	for _, seed := range []int64{1, 7, 42, 1234} {
		result := Louvain(g, seed)

		if result.Count != 2 {
			t.Fatalf("seed %d: expected 2 communities, got %d", seed, result.Count)
		}
		left := result.Communities["A"]
		for _, id := range []string{"B", "C"} {
			if result.Communities[id] != left {
				t.Errorf("seed %d: expected %s with A, got %d vs %d",
					seed, id, result.Communities[id], left)
			}
		}
		right := result.Communities["D"]
		if right == left {
			t.Errorf("seed %d: expected D in a different community than A", seed)
		}
		for _, id := range []string{"E", "F"} {
			if result.Communities[id] != right {
				t.Errorf("seed %d: expected %s with D, got %d vs %d",
					seed, id, result.Communities[id], right)
			}
		}
	}
}

// TestLouvain_SameSeedSamePartition tests that a fixed seed reproduces the
// identical partition
func TestLouvain_SameSeedSamePartition(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e", "f", "g", "h"},
		[][2]string{
			{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"},
			{"e", "f"}, {"f", "g"}, {"g", "h"}, {"h", "e"},
			{"d", "e"}, {"a", "c"}, {"f", "h"},
		},
	)

	first := Louvain(g, 42)
	second := Louvain(g, 42)

	if !reflect.DeepEqual(first.Communities, second.Communities) {
		t.Errorf("Same seed produced different partitions:\n%v\n%v",
			first.Communities, second.Communities)
	}
	if first.Modularity != second.Modularity {
		t.Errorf("Same seed produced different modularity: %v vs %v",
			first.Modularity, second.Modularity)
	}
}

// TestLouvain_ValidPartition tests every node lands in exactly one
// community with a dense id
func TestLouvain_ValidPartition(t *testing.T) {
	g := twoTriangles(t)

	result := Louvain(g, 3)

	if len(result.Communities) != g.NodeCount() {
		t.Fatalf("Expected %d assignments, got %d", g.NodeCount(), len(result.Communities))
	}
	for id, c := range result.Communities {
		if c < 0 || c >= result.Count {
			t.Errorf("Node %s has out-of-range community %d (count %d)", id, c, result.Count)
		}
	}
}

// TestLouvain_EmptyGraph tests the degenerate empty input
func TestLouvain_EmptyGraph(t *testing.T) {
	result := Louvain(graph.New(), 42)

	if len(result.Communities) != 0 {
		t.Errorf("Expected empty assignment, got %v", result.Communities)
	}
	if result.Modularity != 0 {
		t.Errorf("Expected modularity 0, got %v", result.Modularity)
	}
}

// TestLouvain_SingletonGraph tests a one-node, zero-edge graph
func TestLouvain_SingletonGraph(t *testing.T) {
	g := buildGraph(t, []string{"only"}, nil)

	result := Louvain(g, 42)

	if result.Count != 1 {
		t.Fatalf("Expected 1 community, got %d", result.Count)
	}
	if _, ok := result.Communities["only"]; !ok {
		t.Error("Expected the singleton node to be assigned")
	}
}

// TestLouvain_ModularityValue tests the reported modularity against the
// hand-computed value for the two-triangle split
func TestLouvain_ModularityValue(t *testing.T) {
	g := twoTriangles(t)

	result := Louvain(g, 42)

	// m = 7; per triangle: doubled intra weight 6, weighted degree 7.
	// Q = 2 * (6/14 - (7/14)^2) = 5/14.
	expected := 2 * (6.0/14.0 - 0.25)
	if math.Abs(result.Modularity-expected) > 1e-9 {
		t.Errorf("Expected modularity %.6f, got %.6f", expected, result.Modularity)
	}
}

// TestLevelGraph_HandshakeInvariant tests that the sum of weighted degrees
// equals twice the total weight at every aggregation level
func TestLevelGraph_HandshakeInvariant(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e", "f", "g"},
		[][2]string{
			{"a", "b"}, {"b", "c"}, {"c", "a"},
			{"d", "e"}, {"e", "f"}, {"f", "d"},
			{"c", "d"}, {"g", "a"}, {"g", "b"},
		},
	)

	lg := newLevelGraph(g, g.Nodes())
	rng := rand.New(rand.NewSource(42))

	for level := 0; level < 5; level++ {
		sum := 0.0
		for i := 0; i < lg.n; i++ {
			sum += lg.deg[i]
		}
		if math.Abs(sum-2*lg.total) > 1e-9 {
			t.Fatalf("level %d: sum of weighted degrees %.3f != 2*total %.3f",
				level, sum, 2*lg.total)
		}

		comm := make([]int, lg.n)
		moved := lg.oneLevel(comm, rng)
		renumbered, count := renumber(comm)
		if moved == 0 || count == lg.n {
			break
		}
		lg = lg.aggregate(renumbered, count)
	}
}

// TestLouvain_WeightSensitive tests that heavy parallel-edge weights pull
// a border node into the heavier side
func TestLouvain_WeightSensitive(t *testing.T) {
	g := graph.New()
	// mid is connected to both cliques, but much more heavily to the
	// left one.
	g.IncrementEdge("l1", "l2", 4)
	g.IncrementEdge("l1", "mid", 4)
	g.IncrementEdge("l2", "mid", 4)
	g.IncrementEdge("r1", "r2", 4)
	g.IncrementEdge("r1", "mid", 1)

	result := Louvain(g, 42)

	if result.Communities["mid"] != result.Communities["l1"] {
		t.Errorf("Expected mid grouped with the heavy side, got %v", result.Communities)
	}
	if result.Communities["r1"] != result.Communities["r2"] {
		t.Errorf("Expected r1 and r2 together, got %v", result.Communities)
	}
}
