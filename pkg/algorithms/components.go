package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// Component is a maximal connected set of nodes.
type Component struct {
	ID    int
	Nodes []string
	Size  int
}

// ConnectedComponents finds all connected components via BFS from each
// unvisited node, following the canonical node iteration order. Components
// are returned in discovery order. O(V+E).
func ConnectedComponents(g *graph.Graph) []*Component {
	visited := make(map[string]bool)
	components := make([]*Component, 0)

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		component := &Component{
			ID:    len(components),
			Nodes: make([]string, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id, ok := queue.Remove(queue.Front()).(string)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, id)

			for _, nbr := range g.Neighbors(id) {
				if !visited[nbr] {
					visited[nbr] = true
					queue.PushBack(nbr)
				}
			}
		}

		component.Size = len(component.Nodes)
		components = append(components, component)
	}

	return components
}

// LargestComponent returns the induced subgraph of the largest connected
// component, preserving node labels and edge weights. Ties on size keep
// the component discovered first. An empty graph is returned unchanged.
func LargestComponent(g *graph.Graph) *graph.Graph {
	if g.NodeCount() == 0 {
		return g
	}

	components := ConnectedComponents(g)
	largest := components[0]
	for _, c := range components[1:] {
		if c.Size > largest.Size {
			largest = c
		}
	}

	keep := make(map[string]bool, largest.Size)
	for _, id := range largest.Nodes {
		keep[id] = true
	}
	return g.Subgraph(keep)
}
