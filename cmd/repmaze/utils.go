package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lucasbrandao/repmaze/pkg/config"
	"github.com/lucasbrandao/repmaze/pkg/mazeio"
	"github.com/lucasbrandao/repmaze/pkg/metrics"
	"github.com/lucasbrandao/repmaze/pkg/orchestrate"
	"github.com/lucasbrandao/repmaze/pkg/reporting"
	"golang.org/x/sync/errgroup"
)

// loadAppConfig loads the ambient config file named by --config, or the
// built-in defaults if none was given.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// buildLogger constructs a zerolog-backed logger from the config and the
// --verbose flag, writing to stderr so it never pollutes the stdout
// result stream.
func buildLogger(cfg *config.Config) *reporting.Logger {
	level := reporting.LogLevel(cfg.Logging.Level)
	if verbose {
		level = reporting.LogLevelDebug
	}
	return reporting.NewLogger(reporting.LoggerConfig{
		Level:  level,
		Format: reporting.LogFormat(cfg.Logging.Format),
		Output: os.Stderr,
	})
}

// buildReporter constructs the progress reporter: progress to stderr,
// final result to stdout, so a piped result stream never picks up
// progress noise.
func buildReporter(logger *reporting.Logger) *reporting.ProgressReporter {
	return reporting.NewProgressReporter(reporting.OutputFormat(format), logger, os.Stderr, os.Stdout)
}

// startMetrics spins up the optional Prometheus listener via an errgroup
// so its lifecycle is tied to the command's context; returns a no-op
// Recorder and a no-op wait function if --metrics-addr was not supplied.
func startMetrics(ctx context.Context, logger *reporting.Logger) (metrics.Recorder, func() error) {
	if metricsAddr == "" {
		return metrics.Noop(), func() error { return nil }
	}

	server := metrics.New()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(gctx, metricsAddr); err != nil {
			logger.Error("metrics listener failed to start", "error", err)
			return err
		}
		return nil
	})
	return server, g.Wait
}

// bestMazeString renders a search result's winning port configuration in
// maze-string form.
func bestMazeString(best orchestrate.Best) string {
	return mazeio.String(best.PC)
}

// pathSummary renders the winning path's verbose transition listing and
// grid view, for --verbose output.
func pathSummary(best orchestrate.Best) string {
	var sb strings.Builder
	mazeio.PrintVerbose(&sb, best.PC, best.Path)
	mazeio.PrintGrid(&sb, best.Path)
	return sb.String()
}
