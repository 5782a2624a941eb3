package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dd0wney/cluso-graphrank/pkg/config"
	"github.com/dd0wney/cluso-graphrank/pkg/logging"
	"github.com/dd0wney/cluso-graphrank/pkg/metrics"
	"github.com/dd0wney/cluso-graphrank/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	input := flag.String("input", "", "Property-graph JSON input (overrides config)")
	decomposition := flag.String("decomposition", "", "Onion decomposition CSV output (overrides config)")
	communities := flag.String("communities", "", "Louvain communities CSV output (overrides config)")
	graphic := flag.String("viz", "", "SVG rendering output (empty disables)")
	seed := flag.Int64("seed", -1, "Random seed for Louvain and layout (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	metricsListen := flag.String("metrics-listen", "", "Serve prometheus metrics on this address during the run")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *decomposition != "" {
		cfg.Output.Decomposition = *decomposition
	}
	if *communities != "" {
		cfg.Output.Communities = *communities
	}
	if *graphic != "" {
		cfg.Output.Graphic = *graphic
	}
	if *seed >= 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsListen != "" {
		cfg.MetricsListen = *metricsListen
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()

	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", registry.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
				logger.Error("metrics listener failed", logging.Error(err))
			}
		}()
		logger.Info("serving metrics", logging.String("addr", cfg.MetricsListen))
	}

	outcome, err := pipeline.New(cfg, logger, registry).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if outcome.Empty {
		fmt.Println("Empty graph: nothing to analyze.")
		return
	}

	fmt.Printf("Run %s finished in %s\n", outcome.RunID, outcome.Duration.Round(time.Millisecond))
	fmt.Printf("   Raw records:     %d nodes, %d edges\n", outcome.RawNodes, outcome.RawEdges)
	fmt.Printf("   Canonical graph: %d nodes, %d edges\n", outcome.CanonicalNodes, outcome.CanonicalEdges)
	fmt.Printf("   Largest component: %d nodes\n", outcome.ComponentNodes)
	fmt.Printf("   Max core: %d  Onion layers: %d\n", outcome.MaxCore, outcome.OnionLayers)
	fmt.Printf("   Communities: %d  Modularity: %.4f\n", outcome.Communities, outcome.Modularity)
}
