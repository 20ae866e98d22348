package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verbose     bool
	format      string
	metricsAddr string
	version     = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "repmaze",
	Short: "Busy-beaver search over periodically repeated finite mazes",
	Long: `repmaze searches the space of port configurations for a repeating
block maze, looking for the one with the longest shortest start-to-goal
path. It supports a single-maze solve, exhaustive/random/best-first
search over the candidate space, and canonical-form normalisation.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none, built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (annotated path, grid)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "expose Prometheus metrics at this address (disabled if empty)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(normCmd)
}

// Commands are defined in separate files:
// - solveCmd in solve.go
// - searchCmd in search.go
// - normCmd in norm.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
