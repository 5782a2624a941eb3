package algorithms

import (
	"math/rand"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// CommunityAssignment maps every node to a community id. Ids are dense,
// renumbered by first occurrence in canonical node order; only equality
// between ids is meaningful.
type CommunityAssignment struct {
	Communities map[string]int
	Count       int
	Modularity  float64
	Levels      int
}

// Louvain computes a partition of the weighted undirected graph maximizing
// modularity via the two-phase Louvain heuristic. The same seed over the
// same graph always yields the identical partition: node visitation order
// is a seeded shuffle, best-gain selection requires a strict improvement,
// and community renumbering follows first occurrence in node-index order.
//
// The result is a local optimum with respect to single-node moves, not
// necessarily a global one. An empty graph yields an empty assignment.
func Louvain(g *graph.Graph, seed int64) *CommunityAssignment {
	assignment := &CommunityAssignment{
		Communities: make(map[string]int, g.NodeCount()),
	}
	if g.NodeCount() == 0 {
		return assignment
	}

	nodes := g.Nodes()
	lg := newLevelGraph(g, nodes)
	rng := rand.New(rand.NewSource(seed))

	// membership[i] = community of original node i in the current level.
	membership := make([]int, len(nodes))
	for i := range membership {
		membership[i] = i
	}

	comm := make([]int, lg.n)
	for {
		moved := lg.oneLevel(comm, rng)
		assignment.Levels++

		renumbered, count := renumber(comm)
		for i := range membership {
			membership[i] = renumbered[membership[i]]
		}

		if moved == 0 || count == lg.n {
			break
		}
		lg = lg.aggregate(renumbered, count)
		comm = comm[:lg.n]
	}

	final, count := renumber(membership)
	for i, id := range nodes {
		assignment.Communities[id] = final[i]
	}
	assignment.Count = count
	assignment.Modularity = modularityOf(g, assignment.Communities)
	return assignment
}

// levelGraph is the working representation for one Louvain level: dense
// node indices, adjacency with float weights, and per-node self-weight
// accumulating intra-community edge weight from earlier aggregations.
type levelGraph struct {
	n     int
	nbr   [][]int
	w     [][]float64
	self  []float64
	deg   []float64 // weighted degree: 2*self + sum of incident weights
	total float64   // m: sum of edge weights plus self-weights
}

func newLevelGraph(g *graph.Graph, nodes []string) *levelGraph {
	index := make(map[string]int, len(nodes))
	for i, id := range nodes {
		index[id] = i
	}

	lg := &levelGraph{
		n:    len(nodes),
		nbr:  make([][]int, len(nodes)),
		w:    make([][]float64, len(nodes)),
		self: make([]float64, len(nodes)),
		deg:  make([]float64, len(nodes)),
	}
	for i, id := range nodes {
		for _, nbrID := range g.Neighbors(id) {
			weight := float64(g.Weight(id, nbrID))
			lg.nbr[i] = append(lg.nbr[i], index[nbrID])
			lg.w[i] = append(lg.w[i], weight)
			lg.deg[i] += weight
		}
	}
	lg.total = float64(g.TotalWeight())
	return lg
}

// oneLevel runs the local-moving phase in place: full passes over a
// shuffled node order until a complete pass moves nothing. comm must have
// length n; it is initialized to singleton communities. Returns the total
// number of moves applied.
func (lg *levelGraph) oneLevel(comm []int, rng *rand.Rand) int {
	sumTot := make([]float64, lg.n)
	for i := 0; i < lg.n; i++ {
		comm[i] = i
		sumTot[i] = lg.deg[i]
	}
	if lg.total == 0 {
		return 0
	}

	order := make([]int, lg.n)
	for i := range order {
		order[i] = i
	}

	m2 := 2 * lg.total
	totalMoves := 0

	for {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		moves := 0
		for _, i := range order {
			current := comm[i]
			sumTot[current] -= lg.deg[i]

			// Weight from i into each neighboring community,
			// candidates kept in first-seen order so the argmax
			// below is deterministic.
			neighWeight := make(map[int]float64)
			candidates := make([]int, 0, len(lg.nbr[i]))
			for k, j := range lg.nbr[i] {
				c := comm[j]
				if _, seen := neighWeight[c]; !seen {
					candidates = append(candidates, c)
				}
				neighWeight[c] += lg.w[i][k]
			}

			// Staying put is the baseline; a move is applied only
			// on a strictly greater gain than re-inserting into
			// the current community.
			best := current
			bestGain := neighWeight[current] - sumTot[current]*lg.deg[i]/m2
			for _, c := range candidates {
				if c == current {
					continue
				}
				gain := neighWeight[c] - sumTot[c]*lg.deg[i]/m2
				if gain > bestGain {
					bestGain = gain
					best = c
				}
			}

			sumTot[best] += lg.deg[i]
			comm[i] = best
			if best != current {
				moves++
			}
		}

		totalMoves += moves
		if moves == 0 {
			return totalMoves
		}
	}
}

// aggregate builds the next-level graph: one node per community, edge
// weights summed across communities, intra-community weight folded into
// the aggregate node's self-weight.
func (lg *levelGraph) aggregate(renumbered []int, count int) *levelGraph {
	next := &levelGraph{
		n:    count,
		nbr:  make([][]int, count),
		w:    make([][]float64, count),
		self: make([]float64, count),
		deg:  make([]float64, count),
	}

	// Cross-community weights keyed by the lower community index so each
	// aggregate edge accumulates in exactly one place.
	cross := make([]map[int]float64, count)
	pairs := make([][2]int, 0)
	for i := 0; i < lg.n; i++ {
		ci := renumbered[i]
		next.self[ci] += lg.self[i]
		for k, j := range lg.nbr[i] {
			if j < i {
				continue // each undirected edge once
			}
			cj := renumbered[j]
			if ci == cj {
				next.self[ci] += lg.w[i][k]
				continue
			}
			lo, hi := ci, cj
			if lo > hi {
				lo, hi = hi, lo
			}
			if cross[lo] == nil {
				cross[lo] = make(map[int]float64)
			}
			if _, seen := cross[lo][hi]; !seen {
				pairs = append(pairs, [2]int{lo, hi})
			}
			cross[lo][hi] += lg.w[i][k]
		}
	}

	for _, p := range pairs {
		lo, hi := p[0], p[1]
		weight := cross[lo][hi]
		next.nbr[lo] = append(next.nbr[lo], hi)
		next.w[lo] = append(next.w[lo], weight)
		next.nbr[hi] = append(next.nbr[hi], lo)
		next.w[hi] = append(next.w[hi], weight)
		next.deg[lo] += weight
		next.deg[hi] += weight
	}
	for ci := 0; ci < count; ci++ {
		next.deg[ci] += 2 * next.self[ci]
	}
	next.total = lg.total
	return next
}

// renumber maps arbitrary community labels to dense ids ordered by first
// occurrence. Returns the mapping per index and the community count.
func renumber(comm []int) ([]int, int) {
	ids := make(map[int]int)
	out := make([]int, len(comm))
	for i, c := range comm {
		id, seen := ids[c]
		if !seen {
			id = len(ids)
			ids[c] = id
		}
		out[i] = id
	}
	return out, len(ids)
}

// modularityOf computes weighted modularity of a partition over the
// original graph: Q = sum_c [ in_c/(2m) - (tot_c/(2m))^2 ], with in_c the
// doubled intra-community weight and tot_c the community's weighted degree.
func modularityOf(g *graph.Graph, communities map[string]int) float64 {
	m := float64(g.TotalWeight())
	if m == 0 {
		return 0
	}
	m2 := 2 * m

	in := make(map[int]float64)
	tot := make(map[int]float64)
	for _, u := range g.Nodes() {
		cu := communities[u]
		tot[cu] += float64(g.WeightedDegree(u))
		for _, v := range g.Neighbors(u) {
			if communities[v] == cu {
				in[cu] += float64(g.Weight(u, v))
			}
		}
	}

	q := 0.0
	for c, totC := range tot {
		q += in[c]/m2 - (totC/m2)*(totC/m2)
	}
	return q
}
