// Package metrics exposes prometheus instrumentation for pipeline runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the analysis pipeline
type Registry struct {
	// Graph metrics
	GraphNodesTotal     prometheus.Gauge
	GraphEdgesTotal     prometheus.Gauge
	GraphTotalWeight    prometheus.Gauge
	ComponentNodesTotal prometheus.Gauge
	DroppedRecordsTotal *prometheus.CounterVec

	// Analysis metrics
	StageDuration   *prometheus.HistogramVec
	RunsTotal       *prometheus.CounterVec
	MaxCoreNumber   prometheus.Gauge
	OnionLayers     prometheus.Gauge
	CommunityCount  prometheus.Gauge
	FinalModularity prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all pipeline metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.GraphNodesTotal = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_graph_nodes_total",
		Help: "Number of nodes in the canonical graph",
	})
	r.GraphEdgesTotal = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_graph_edges_total",
		Help: "Number of undirected edges in the canonical graph",
	})
	r.GraphTotalWeight = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_graph_weight_total",
		Help: "Sum of canonical edge weights",
	})
	r.ComponentNodesTotal = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_component_nodes_total",
		Help: "Number of nodes in the largest connected component",
	})
	r.DroppedRecordsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "graphrank_dropped_records_total",
		Help: "Raw records dropped during canonicalization",
	}, []string{"kind"})

	r.StageDuration = promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphrank_stage_duration_seconds",
		Help:    "Pipeline stage duration in seconds",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
	}, []string{"stage"})
	r.RunsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "graphrank_runs_total",
		Help: "Pipeline runs by outcome",
	}, []string{"status"})
	r.MaxCoreNumber = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_max_core_number",
		Help: "Highest core number in the decomposition",
	})
	r.OnionLayers = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_onion_layers",
		Help: "Number of onion peeling layers",
	})
	r.CommunityCount = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_communities",
		Help: "Number of detected communities",
	})
	r.FinalModularity = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "graphrank_modularity",
		Help: "Modularity of the final partition",
	})

	return r
}

// RecordStage records one pipeline stage duration
func (r *Registry) RecordStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun records a completed run with its outcome status
func (r *Registry) RecordRun(status string) {
	r.RunsTotal.WithLabelValues(status).Inc()
}

// SetGraphSize updates canonical graph gauges
func (r *Registry) SetGraphSize(nodes, edges, weight int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphTotalWeight.Set(float64(weight))
}

// AddDroppedRecords counts records dropped during canonicalization
func (r *Registry) AddDroppedRecords(kind string, n int) {
	if n > 0 {
		r.DroppedRecordsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// SetAnalysisResults updates the decomposition and community gauges
func (r *Registry) SetAnalysisResults(maxCore, layers, communities int, modularity float64) {
	r.MaxCoreNumber.Set(float64(maxCore))
	r.OnionLayers.Set(float64(layers))
	r.CommunityCount.Set(float64(communities))
	r.FinalModularity.Set(modularity)
}

// Handler returns an HTTP handler serving the registry in prometheus
// exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
