package visualization

import (
	"math"
	"sort"
	"strings"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// HighlightConfig selects the nodes to emphasize in a rendering.
type HighlightConfig struct {
	// Labels are matched exactly against node display labels.
	Labels []string
	// Keywords are the case-insensitive substring fallback, used when
	// exact matching finds fewer nodes than there are configured labels.
	Keywords []string
}

// DetectHighlights returns the node ids to emphasize. Exact label matches
// are collected first; if any configured label went unmatched, the keyword
// fallback widens the net.
func DetectHighlights(g *graph.Graph, cfg HighlightConfig) map[string]bool {
	highlighted := make(map[string]bool)
	if len(cfg.Labels) == 0 && len(cfg.Keywords) == 0 {
		return highlighted
	}

	exact := make(map[string]bool, len(cfg.Labels))
	for _, l := range cfg.Labels {
		exact[l] = true
	}
	for _, id := range g.Nodes() {
		if exact[g.Label(id)] {
			highlighted[id] = true
		}
	}
	if len(highlighted) >= len(cfg.Labels) && len(cfg.Labels) > 0 {
		return highlighted
	}

	lowered := make([]string, len(cfg.Keywords))
	for i, kw := range cfg.Keywords {
		lowered[i] = strings.ToLower(kw)
	}
	for _, id := range g.Nodes() {
		label := strings.ToLower(g.Label(id))
		for _, kw := range lowered {
			if kw != "" && strings.Contains(label, kw) {
				highlighted[id] = true
				break
			}
		}
	}
	return highlighted
}

// PickLabeled chooses which nodes get a text label: the topK nodes by
// degree plus every highlighted node. Degree ties break on node id so the
// selection is stable.
func PickLabeled(g *graph.Graph, topK int, highlighted map[string]bool) map[string]bool {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		di, dj := g.Degree(nodes[i]), g.Degree(nodes[j])
		if di != dj {
			return di > dj
		}
		return nodes[i] < nodes[j]
	})

	labeled := make(map[string]bool)
	for i, id := range nodes {
		if i >= topK {
			break
		}
		labeled[id] = true
	}
	for id := range highlighted {
		labeled[id] = true
	}
	return labeled
}

// nodeSize maps degree to a radius in a bounded power scale.
func nodeSize(degree int) float64 {
	const (
		base  = 4.0
		scale = 1.2
		exp   = 1.15
		min   = 3.0
		max   = 24.0
	)
	val := base + scale*math.Pow(float64(degree), exp)
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// truncate shortens s to maxLen runes with a trailing ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
