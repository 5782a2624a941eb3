// Package pipeline wires the full analysis run: load, canonicalize,
// largest-component extraction, onion decomposition, Louvain communities,
// and the CSV/SVG exports.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-graphrank/pkg/algorithms"
	"github.com/dd0wney/cluso-graphrank/pkg/config"
	"github.com/dd0wney/cluso-graphrank/pkg/export"
	"github.com/dd0wney/cluso-graphrank/pkg/graph"
	"github.com/dd0wney/cluso-graphrank/pkg/ingest"
	"github.com/dd0wney/cluso-graphrank/pkg/logging"
	"github.com/dd0wney/cluso-graphrank/pkg/metrics"
	"github.com/dd0wney/cluso-graphrank/pkg/visualization"
)

// Outcome summarizes one completed run.
type Outcome struct {
	RunID string

	// Empty means there was nothing to analyze (zero-node canonical
	// graph). Exports are skipped; this is not an error.
	Empty bool

	RawNodes       int
	RawEdges       int
	CanonicalNodes int
	CanonicalEdges int
	ComponentNodes int

	MaxCore     int
	OnionLayers int
	Communities int
	Modularity  float64

	Duration time.Duration
}

// Pipeline runs analyses over one property-graph document per invocation.
type Pipeline struct {
	cfg *config.Config
	log logging.Logger
	reg *metrics.Registry
}

// New creates a pipeline. logger and registry may not be nil; use
// logging.NewNopLogger and a fresh metrics.NewRegistry when unwanted.
func New(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) *Pipeline {
	return &Pipeline{cfg: cfg, log: logger, reg: reg}
}

// Run executes the whole pipeline. A missing or unreadable input file is
// fatal and surfaced before any graph construction; an empty graph yields
// an Outcome with Empty set and no error.
func (p *Pipeline) Run() (*Outcome, error) {
	start := time.Now()
	outcome := &Outcome{RunID: uuid.NewString()}
	log := p.log.With(logging.RunID(outcome.RunID))

	doc, err := p.timedLoad(log)
	if err != nil {
		p.reg.RecordRun("error")
		return nil, err
	}
	outcome.RawNodes = len(doc.Nodes)
	outcome.RawEdges = len(doc.Edges)

	stageStart := time.Now()
	g := graph.Canonicalize(doc.Nodes, doc.Edges)
	p.reg.RecordStage("canonicalize", time.Since(stageStart))
	p.countDropped(doc, log)

	outcome.CanonicalNodes = g.NodeCount()
	outcome.CanonicalEdges = g.EdgeCount()
	p.reg.SetGraphSize(g.NodeCount(), g.EdgeCount(), g.TotalWeight())
	log.Info("canonical graph built",
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Int("total_weight", g.TotalWeight()))

	stageStart = time.Now()
	lcc := algorithms.LargestComponent(g)
	p.reg.RecordStage("component", time.Since(stageStart))
	outcome.ComponentNodes = lcc.NodeCount()
	p.reg.ComponentNodesTotal.Set(float64(lcc.NodeCount()))

	if lcc.NodeCount() == 0 {
		log.Warn("empty graph, nothing to analyze")
		outcome.Empty = true
		outcome.Duration = time.Since(start)
		p.reg.RecordRun("empty")
		return outcome, nil
	}
	log.Info("largest component extracted",
		logging.Nodes(lcc.NodeCount()),
		logging.Edges(lcc.EdgeCount()))

	stageStart = time.Now()
	cores := algorithms.OnionDecomposition(lcc)
	p.reg.RecordStage("decomposition", time.Since(stageStart))
	outcome.MaxCore = cores.MaxCore
	outcome.OnionLayers = cores.MaxLayer
	log.Info("onion decomposition complete",
		logging.Int("max_core", cores.MaxCore),
		logging.Int("layers", cores.MaxLayer))

	stageStart = time.Now()
	communities := algorithms.Louvain(lcc, p.cfg.Seed)
	p.reg.RecordStage("louvain", time.Since(stageStart))
	outcome.Communities = communities.Count
	outcome.Modularity = communities.Modularity
	log.Info("community detection complete",
		logging.Int("communities", communities.Count),
		logging.Float64("modularity", communities.Modularity),
		logging.Int("levels", communities.Levels))

	p.reg.SetAnalysisResults(cores.MaxCore, cores.MaxLayer, communities.Count, communities.Modularity)

	if err := p.writeExports(lcc, cores, communities, log); err != nil {
		p.reg.RecordRun("error")
		return nil, err
	}

	outcome.Duration = time.Since(start)
	p.reg.RecordRun("ok")
	log.Info("run complete", logging.Latency(outcome.Duration))
	return outcome, nil
}

func (p *Pipeline) timedLoad(log logging.Logger) (*ingest.Document, error) {
	start := time.Now()
	doc, err := ingest.LoadFile(p.cfg.Input)
	p.reg.RecordStage("load", time.Since(start))
	if err != nil {
		log.Error("input load failed", logging.Path(p.cfg.Input), logging.Error(err))
		return nil, err
	}
	log.Info("input loaded",
		logging.Path(p.cfg.Input),
		logging.Nodes(len(doc.Nodes)),
		logging.Edges(len(doc.Edges)))
	return doc, nil
}

// countDropped mirrors the silent normalization rules for observability:
// the records are already gone from the canonical graph.
func (p *Pipeline) countDropped(doc *ingest.Document, log logging.Logger) {
	emptyNodes, emptyEdges, selfLoops := 0, 0, 0
	for _, n := range doc.Nodes {
		if n.ID == "" {
			emptyNodes++
		}
	}
	for _, e := range doc.Edges {
		switch {
		case e.Source == "" || e.Target == "":
			emptyEdges++
		case e.Source == e.Target:
			selfLoops++
		}
	}
	p.reg.AddDroppedRecords("node_missing_id", emptyNodes)
	p.reg.AddDroppedRecords("edge_missing_endpoint", emptyEdges)
	p.reg.AddDroppedRecords("edge_self_loop", selfLoops)
	if emptyNodes+emptyEdges+selfLoops > 0 {
		log.Debug("dropped malformed records",
			logging.Int("nodes_missing_id", emptyNodes),
			logging.Int("edges_missing_endpoint", emptyEdges),
			logging.Int("self_loops", selfLoops))
	}
}

func (p *Pipeline) writeExports(lcc *graph.Graph, cores *algorithms.CoreAssignment, communities *algorithms.CommunityAssignment, log logging.Logger) error {
	start := time.Now()
	defer func() { p.reg.RecordStage("export", time.Since(start)) }()

	if path := p.cfg.Output.Decomposition; path != "" {
		rows := export.DecompositionRows(lcc, cores)
		if err := export.WriteFile(path, func(w io.Writer) error {
			return export.WriteDecompositionCSV(w, rows)
		}); err != nil {
			return fmt.Errorf("decomposition export: %w", err)
		}
		log.Info("decomposition exported", logging.Path(path), logging.Int("rows", len(rows)))
	}

	if path := p.cfg.Output.Communities; path != "" {
		rows := export.CommunityRows(lcc, communities)
		if err := export.WriteFile(path, func(w io.Writer) error {
			return export.WriteCommunityCSV(w, rows)
		}); err != nil {
			return fmt.Errorf("community export: %w", err)
		}
		log.Info("communities exported", logging.Path(path), logging.Int("rows", len(rows)))
	}

	if path := p.cfg.Output.Graphic; path != "" {
		if err := p.renderGraphic(path, lcc); err != nil {
			return fmt.Errorf("graphic export: %w", err)
		}
		log.Info("graphic exported", logging.Path(path))
	}
	return nil
}

func (p *Pipeline) renderGraphic(path string, lcc *graph.Graph) error {
	layoutCfg := &visualization.LayoutConfig{
		Width:      p.cfg.Layout.Width,
		Height:     p.cfg.Layout.Height,
		Iterations: p.cfg.Layout.Iterations,
		Padding:    p.cfg.Layout.Padding,
	}
	renderCfg := &visualization.RenderConfig{
		TopLabels:      p.cfg.Render.TopLabels,
		MaxLabelLength: p.cfg.Render.MaxLabelLength,
		Highlight: visualization.HighlightConfig{
			Labels:   p.cfg.Render.HighlightLabels,
			Keywords: p.cfg.Render.HighlightKeywords,
		},
		NodeColor:      p.cfg.Render.NodeColor,
		HighlightColor: p.cfg.Render.HighlightColor,
		EdgeColor:      p.cfg.Render.EdgeColor,
	}

	layout := visualization.NewForceDirectedLayout(layoutCfg)
	positions := layout.ComputeLayout(lcc, p.cfg.Seed)
	renderer := visualization.NewRenderer(layoutCfg, renderCfg)

	return export.WriteFile(path, func(w io.Writer) error {
		return renderer.RenderSVG(w, lcc, positions)
	})
}
