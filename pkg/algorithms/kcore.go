package algorithms

import (
	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// CoreAssignment holds the onion decomposition of a graph: per node, its
// core number and its 1-indexed peeling layer. Both maps are read-only
// views once computed.
type CoreAssignment struct {
	Core  map[string]int
	Layer map[string]int

	MaxCore  int
	MaxLayer int
}

// OnionDecomposition peels the graph by iterated minimum degree.
//
// Each round removes every node whose live degree equals the current
// minimum; that removed set is one onion layer. The core number assigned
// is the running maximum of the round minima, which equals the classic
// k-core number: peeling a layer can drop the residual minimum below an
// earlier round's value (a star graph leaves its hub at degree 0), and
// the hub's core is still 1, not 0.
//
// Nodes tied at the minimum share identical (core, layer) values, so no
// ordering inside a round is needed. Isolated nodes get core 0, layer 1.
// O(V^2) worst case from the per-round rescan, which is fine at the scale
// this targets (a few thousand nodes).
func OnionDecomposition(g *graph.Graph) *CoreAssignment {
	assignment := &CoreAssignment{
		Core:  make(map[string]int, g.NodeCount()),
		Layer: make(map[string]int, g.NodeCount()),
	}

	nodes := g.Nodes()
	live := make(map[string]int, len(nodes))
	for _, id := range nodes {
		live[id] = g.Degree(id)
	}

	remaining := len(nodes)
	core := 0
	layer := 0

	for remaining > 0 {
		minDegree := -1
		for _, id := range nodes {
			d, present := live[id]
			if !present {
				continue
			}
			if minDegree < 0 || d < minDegree {
				minDegree = d
			}
		}

		layer++
		if minDegree > core {
			core = minDegree
		}

		// Collect the whole layer before touching degrees so the
		// removal is simultaneous.
		peeled := make([]string, 0)
		for _, id := range nodes {
			if d, present := live[id]; present && d == minDegree {
				peeled = append(peeled, id)
			}
		}

		for _, id := range peeled {
			assignment.Core[id] = core
			assignment.Layer[id] = layer
			delete(live, id)
			remaining--
		}
		for _, id := range peeled {
			for _, nbr := range g.Neighbors(id) {
				if _, present := live[nbr]; present {
					live[nbr]--
				}
			}
		}
	}

	assignment.MaxCore = core
	assignment.MaxLayer = layer
	return assignment
}
