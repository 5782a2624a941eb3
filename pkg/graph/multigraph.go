package graph

// NodeRecord is a raw node entry from a property-graph document.
type NodeRecord struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// EdgeRecord is a raw relationship entry from a property-graph document.
// Direction is meaningful only at this stage; it is discarded on collapse.
type EdgeRecord struct {
	Source        string `json:"source"`
	Target        string `json:"target"`
	PropertyLabel string `json:"property_label,omitempty"`
}

// Multigraph is a directed multigraph assembled from raw records.
// It is the transient representation used during canonicalization: parallel
// edges and self-loops are retained here and resolved by Collapse.
type Multigraph struct {
	order  []string
	labels map[string]string
	edges  []EdgeRecord
}

// NewMultigraph creates an empty multigraph.
func NewMultigraph() *Multigraph {
	return &Multigraph{
		labels: make(map[string]string),
	}
}

// AddNode registers a node. Records with an empty id are dropped.
// The first label seen for an id wins; later duplicates are ignored.
func (m *Multigraph) AddNode(id, label string) {
	if id == "" {
		return
	}
	if _, exists := m.labels[id]; exists {
		return
	}
	m.order = append(m.order, id)
	m.labels[id] = label
}

// AddEdge registers a directed edge. Records with an empty source or target
// are dropped. Endpoints not previously registered are created with an
// empty label.
func (m *Multigraph) AddEdge(source, target, propertyLabel string) {
	if source == "" || target == "" {
		return
	}
	m.AddNode(source, "")
	m.AddNode(target, "")
	m.edges = append(m.edges, EdgeRecord{
		Source:        source,
		Target:        target,
		PropertyLabel: propertyLabel,
	})
}

// NodeCount returns the number of distinct node ids.
func (m *Multigraph) NodeCount() int {
	return len(m.order)
}

// EdgeCount returns the number of raw edges, parallel edges included.
func (m *Multigraph) EdgeCount() int {
	return len(m.edges)
}

// Collapse folds the multigraph into an undirected simple weighted graph.
// Every raw edge, regardless of direction, increments the weight of the
// same undirected edge by one. Self-loops are excluded entirely.
func (m *Multigraph) Collapse() *Graph {
	g := New()
	for _, id := range m.order {
		g.AddNode(id, m.labels[id])
	}
	for _, e := range m.edges {
		if e.Source == e.Target {
			continue
		}
		g.IncrementEdge(e.Source, e.Target, 1)
	}
	return g
}

// Canonicalize builds a canonical graph directly from raw records.
// It is a pure function: malformed records are dropped silently and no
// state outside the returned graph is touched.
func Canonicalize(nodes []NodeRecord, edges []EdgeRecord) *Graph {
	m := NewMultigraph()
	for _, n := range nodes {
		m.AddNode(n.ID, n.Label)
	}
	for _, e := range edges {
		m.AddEdge(e.Source, e.Target, e.PropertyLabel)
	}
	return m.Collapse()
}
