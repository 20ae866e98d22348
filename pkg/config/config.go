// Package config loads ambient, non-semantic tuning knobs: logging
// format/level, solver/top-down constants, and the optional metrics
// listener address. The CLI reads only the logging and reporting
// sections; the solver, top-down and metrics sections are loaded and
// defaulted but nothing reads them. Maze search parameters (nterm,
// k-range, seed) stay CLI-only so a config file can never silently
// change search semantics.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root ambient configuration, loaded from an optional YAML
// file named by --config.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Solver   SolverConfig   `yaml:"solver"`
	Topdown  TopdownConfig  `yaml:"topdown"`
	Reporting ReportingConfig `yaml:"reporting"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LoggingConfig controls the zerolog-backed logger in pkg/reporting.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

// SolverConfig mirrors the IDDFS tuning constants. The solver uses its
// compiled-in solver.MaxDepth and transposition-table capacity, so
// setting these fields has no effect on a solve.
type SolverConfig struct {
	MaxDepth     int `yaml:"max_depth"`
	TTInitialCap int `yaml:"tt_initial_cap"`
}

// TopdownConfig mirrors the priority-stack tuning constant. The top-down
// driver uses its compiled-in topdown.PrioMax, so setting this field has
// no effect on a search.
type TopdownConfig struct {
	PrioMax int `yaml:"prio_max"`
}

// ReportingConfig controls progress-line cadence.
type ReportingConfig struct {
	ProgressInterval int `yaml:"progress_interval"`
}

// MetricsConfig holds an address for the optional Prometheus exposition
// listener. The listener is started only from the --metrics-addr flag;
// Addr is loaded (empty by default) but not read by the CLI.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration repmaze uses when no --config file is
// given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Solver: SolverConfig{
			MaxDepth:     200,
			TTInitialCap: 8192,
		},
		Topdown: TopdownConfig{
			PrioMax: 1000,
		},
		Reporting: ReportingConfig{
			ProgressInterval: 10000,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Load reads an optional YAML file, overlaying it onto Default(). A
// missing path (empty or nonexistent file) yields the defaults
// unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
