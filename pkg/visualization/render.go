package visualization

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-graphrank/pkg/graph"
)

// RenderConfig styles the SVG output.
type RenderConfig struct {
	TopLabels      int
	MaxLabelLength int
	Highlight      HighlightConfig

	NodeColor      string
	HighlightColor string
	EdgeColor      string
}

// Renderer draws a laid-out graph as SVG: thin weight-scaled edges first,
// then degree-sized nodes, then labels on top.
type Renderer struct {
	layout *LayoutConfig
	render *RenderConfig
}

// NewRenderer creates a renderer for the given layout canvas and style.
func NewRenderer(layout *LayoutConfig, render *RenderConfig) *Renderer {
	return &Renderer{layout: layout, render: render}
}

// RenderSVG writes an SVG document for g using the given positions.
// Rendering an empty graph produces an empty (but valid) document.
func (r *Renderer) RenderSVG(w io.Writer, g *graph.Graph, positions map[string]Position) error {
	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		r.layout.Width, r.layout.Height, r.layout.Width, r.layout.Height); err != nil {
		return fmt.Errorf("failed to write svg header: %w", err)
	}

	maxWeight := 1
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if wt := g.Weight(u, v); wt > maxWeight {
				maxWeight = wt
			}
		}
	}

	// Edges
	fmt.Fprintf(w, "  <g stroke=\"%s\" stroke-opacity=\"0.22\">\n", r.render.EdgeColor)
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u >= v {
				continue // each undirected edge once
			}
			pu, okU := positions[u]
			pv, okV := positions[v]
			if !okU || !okV {
				continue
			}
			width := 0.25 + 0.9*float64(g.Weight(u, v))/float64(maxWeight)
			if _, err := fmt.Fprintf(w,
				"    <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke-width=\"%.2f\"/>\n",
				pu.X, pu.Y, pv.X, pv.Y, width); err != nil {
				return fmt.Errorf("failed to write edge: %w", err)
			}
		}
	}
	fmt.Fprintln(w, "  </g>")

	highlighted := DetectHighlights(g, r.render.Highlight)

	// Nodes
	fmt.Fprintln(w, "  <g fill-opacity=\"0.95\">")
	for _, id := range g.Nodes() {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		radius := nodeSize(g.Degree(id))
		color := r.render.NodeColor
		if highlighted[id] {
			radius *= 1.8
			color = r.render.HighlightColor
		}
		if _, err := fmt.Fprintf(w,
			"    <circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
			pos.X, pos.Y, radius, color); err != nil {
			return fmt.Errorf("failed to write node %s: %w", id, err)
		}
	}
	fmt.Fprintln(w, "  </g>")

	// Labels for the top-degree nodes plus every highlighted node
	labeled := PickLabeled(g, r.render.TopLabels, highlighted)
	fmt.Fprintln(w, "  <g font-size=\"9\" text-anchor=\"middle\">")
	for _, id := range g.Nodes() {
		if !labeled[id] {
			continue
		}
		pos, ok := positions[id]
		if !ok {
			continue
		}
		text := g.Label(id)
		if text == "" {
			text = id
		}
		text = truncate(text, r.render.MaxLabelLength)
		if _, err := fmt.Fprintf(w, "    <text x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			pos.X, pos.Y, escapeText(text)); err != nil {
			return fmt.Errorf("failed to write label for %s: %w", id, err)
		}
	}
	fmt.Fprintln(w, "  </g>")

	if _, err := fmt.Fprintln(w, "</svg>"); err != nil {
		return fmt.Errorf("failed to write svg footer: %w", err)
	}
	return nil
}

// escapeText makes a label safe for SVG text content.
func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
