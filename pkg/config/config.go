// Package config loads and validates run configuration from YAML.
//
// Every knob the pipeline or renderer consumes lives here and is handed
// to the component that needs it as an explicit value; there is no
// package-level mutable configuration state.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full run configuration.
type Config struct {
	// Input is the property-graph JSON document to analyze.
	Input string `yaml:"input" validate:"required"`

	Output OutputConfig `yaml:"output"`

	// Seed drives the Louvain visitation order and the layout placement.
	Seed int64 `yaml:"seed"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MetricsListen, when set, serves prometheus metrics on this address
	// for the duration of the run.
	MetricsListen string `yaml:"metrics_listen"`

	Layout LayoutConfig `yaml:"layout"`
	Render RenderConfig `yaml:"render"`
}

// OutputConfig names the export destinations.
type OutputConfig struct {
	Decomposition string `yaml:"decomposition"`
	Communities   string `yaml:"communities"`
	Graphic       string `yaml:"graphic"`
}

// LayoutConfig tunes the force-directed placement.
type LayoutConfig struct {
	Width      float64 `yaml:"width" validate:"gte=0"`
	Height     float64 `yaml:"height" validate:"gte=0"`
	Iterations int     `yaml:"iterations" validate:"gte=0"`
	Padding    float64 `yaml:"padding" validate:"gte=0"`
}

// RenderConfig tunes the SVG rendering.
type RenderConfig struct {
	// TopLabels is the number of highest-degree nodes to label.
	TopLabels int `yaml:"top_labels" validate:"gte=0"`
	// MaxLabelLength truncates longer labels with an ellipsis.
	MaxLabelLength int `yaml:"max_label_length" validate:"gte=0"`

	// HighlightLabels are matched exactly against node labels.
	HighlightLabels []string `yaml:"highlight_labels"`
	// HighlightKeywords are the case-insensitive substring fallback.
	HighlightKeywords []string `yaml:"highlight_keywords"`

	NodeColor      string `yaml:"node_color"`
	HighlightColor string `yaml:"highlight_color"`
	EdgeColor      string `yaml:"edge_color"`
}

// Default returns a configuration with every field but Input filled in.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Decomposition: "onion_layers.csv",
			Communities:   "communities_louvain.csv",
		},
		Seed:     42,
		LogLevel: "info",
		Layout: LayoutConfig{
			Width:      1400,
			Height:     1000,
			Iterations: 200,
			Padding:    50,
		},
		Render: RenderConfig{
			TopLabels:      40,
			MaxLabelLength: 34,
			NodeColor:      "gold",
			HighlightColor: "crimson",
			EdgeColor:      "gray",
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
