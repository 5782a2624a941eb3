package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// ForceDirectedLayout implements Fruchterman-Reingold force-directed
// placement. Heavier edges pull harder, so densely linked nodes cluster.
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using the force-directed algorithm.
// The seed fixes the initial random placement, so a fixed graph and seed
// always reproduce the same picture.
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Graph, seed int64) map[string]Position {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return make(map[string]Position)
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[string]Position{
			nodes[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}
	}

	rng := rand.New(rand.NewSource(seed))
	positions := make(map[string]Position, len(nodes))
	for _, id := range nodes {
		positions[id] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	maxWeight := 1
	for _, u := range nodes {
		for _, v := range g.Neighbors(u) {
			if w := g.Weight(u, v); w > maxWeight {
				maxWeight = w
			}
		}
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position, len(nodes))
		for _, id := range nodes {
			forces[id] = Position{}
		}

		// Repulsion between all node pairs
		for i, u := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				v := nodes[j]
				dx := positions[u].X - positions[v].X
				dy := positions[u].Y - positions[v].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[u] = Position{X: forces[u].X + fx, Y: forces[u].Y + fy}
				forces[v] = Position{X: forces[v].X - fx, Y: forces[v].Y - fy}
			}
		}

		// Attraction along edges, scaled by relative weight
		for _, u := range nodes {
			for _, v := range g.Neighbors(u) {
				dx := positions[u].X - positions[v].X
				dy := positions[u].Y - positions[v].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				pull := 0.5 + 0.5*float64(g.Weight(u, v))/float64(maxWeight)
				force := (dist * dist) / k * pull
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[u] = Position{X: forces[u].X - fx, Y: forces[u].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range nodes {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + dx,
					Y: positions[id].Y + dy,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding)
}
