package graph

// Graph is an undirected simple weighted graph.
// Invariants: no self-loops, no parallel edges, every edge weight >= 1.
// Node iteration order is insertion order and neighbor iteration order is
// first-seen order, so any traversal over a given graph is deterministic.
type Graph struct {
	order     []string
	labels    map[string]string
	neighbors map[string][]string
	weights   map[string]map[string]int
	edgeCount int
	total     int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		labels:    make(map[string]string),
		neighbors: make(map[string][]string),
		weights:   make(map[string]map[string]int),
	}
}

// AddNode registers a node. Empty ids and duplicate ids are ignored;
// the first label seen for an id wins.
func (g *Graph) AddNode(id, label string) {
	if id == "" {
		return
	}
	if _, exists := g.labels[id]; exists {
		return
	}
	g.order = append(g.order, id)
	g.labels[id] = label
	g.weights[id] = make(map[string]int)
}

// IncrementEdge adds delta to the weight of the undirected edge {u, v},
// creating the edge (and any missing endpoint) as needed. Self-loops and
// non-positive deltas are ignored, preserving the graph invariants.
func (g *Graph) IncrementEdge(u, v string, delta int) {
	if u == "" || v == "" || u == v || delta <= 0 {
		return
	}
	g.AddNode(u, "")
	g.AddNode(v, "")
	if _, exists := g.weights[u][v]; !exists {
		g.neighbors[u] = append(g.neighbors[u], v)
		g.neighbors[v] = append(g.neighbors[v], u)
		g.edgeCount++
	}
	g.weights[u][v] += delta
	g.weights[v][u] += delta
	g.total += delta
}

// Nodes returns the node ids in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id string) bool {
	_, exists := g.labels[id]
	return exists
}

// Label returns the display label for id, or the empty string.
func (g *Graph) Label(id string) string {
	return g.labels[id]
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) int {
	return len(g.neighbors[id])
}

// WeightedDegree returns the sum of edge weights incident to id.
func (g *Graph) WeightedDegree(id string) int {
	sum := 0
	for _, w := range g.weights[id] {
		sum += w
	}
	return sum
}

// Neighbors returns the neighbors of id in first-seen order.
func (g *Graph) Neighbors(id string) []string {
	nbrs := g.neighbors[id]
	out := make([]string, len(nbrs))
	copy(out, nbrs)
	return out
}

// Weight returns the weight of edge {u, v}, or 0 if absent.
func (g *Graph) Weight(u, v string) int {
	return g.weights[u][v]
}

// HasEdge reports whether the undirected edge {u, v} exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, exists := g.weights[u][v]
	return exists
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() int {
	return g.total
}

// Subgraph returns the induced subgraph on the given node set, preserving
// labels, edge weights, and the original iteration orders.
func (g *Graph) Subgraph(keep map[string]bool) *Graph {
	sub := New()
	for _, id := range g.order {
		if keep[id] {
			sub.AddNode(id, g.labels[id])
		}
	}
	for _, u := range sub.order {
		for _, v := range g.neighbors[u] {
			// Visit each undirected edge once.
			if !keep[v] || u >= v {
				continue
			}
			sub.IncrementEdge(u, v, g.weights[u][v])
		}
	}
	return sub
}
