package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chiku1101/druggs/infrastructure/collectors"
	"github.com/chiku1101/druggs/infrastructure/httpclient"
	"github.com/chiku1101/druggs/infrastructure/middleware"
	"github.com/chiku1101/druggs/infrastructure/narrative"
	"github.com/chiku1101/druggs/infrastructure/reference"
	"github.com/chiku1101/druggs/internal/application"
	"github.com/chiku1101/druggs/internal/ports"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "repurposed",
	Short:         "Evidence-based drug repurposing analysis",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file (defaults apply when omitted)")
	rootCmd.AddCommand(serveCmd, analyzeCmd)
}

func loadConfig() (application.Config, error) {
	if cfgFile == "" {
		return application.DefaultConfig(), nil
	}
	return application.LoadConfig(cfgFile)
}

func newLogger(cfg application.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

// buildPipeline wires the reference index, collectors, middleware chain,
// orchestrator, and optional narrator from config.
func buildPipeline(cfg application.Config, logger *logrus.Logger) (*application.Analyzer, ports.ReferenceStore, error) {
	store, err := reference.Load(cfg.Reference.Path, cfg.Reference.CacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("load reference dataset: %w", err)
	}
	logger.WithField("records", store.Len()).Info("reference dataset loaded")

	pubmed := httpclient.New("pubmed", cfg.Collectors.RequestsPerSecond, cfg.Collectors.Burst)
	ctgov := httpclient.New("clinicaltrials", cfg.Collectors.RequestsPerSecond, cfg.Collectors.Burst)

	chain := ports.Chain(
		middleware.NewCollectorMetrics().Middleware(),
		middleware.Tracing(),
		middleware.Logging(logger),
	)

	all := []ports.Collector{
		chain(collectors.NewLiteratureCollector(pubmed, cfg.Collectors.PubMedBaseURL, store, cfg.Collectors.LiteratureTimeout())),
		chain(collectors.NewTrialsCollector(ctgov, cfg.Collectors.TrialsBaseURL, store, cfg.Collectors.TrialsTimeout())),
		chain(collectors.NewPatentsCollector(cfg.Collectors.TableTimeout())),
		chain(collectors.NewRegulatoryCollector(store, cfg.Collectors.TableTimeout())),
		chain(collectors.NewMarketCollector(cfg.Collectors.TableTimeout())),
	}

	orchestrator, err := application.NewOrchestrator(all)
	if err != nil {
		return nil, nil, fmt.Errorf("build orchestrator: %w", err)
	}

	var opts []application.AnalyzerOption
	if cfg.Narrative.Enabled() {
		opts = append(opts, application.WithNarrator(narrative.New(
			cfg.Narrative.APIKey, cfg.Narrative.BaseURL, cfg.Narrative.Model, cfg.Narrative.Timeout())))
		logger.WithField("model", cfg.Narrative.Model).Info("narrative summaries enabled")
	}

	return application.NewAnalyzer(orchestrator, opts...), store, nil
}
