package main

import (
	"fmt"
	"strings"

	"github.com/lucasbrandao/repmaze/pkg/mazeio"
	"github.com/lucasbrandao/repmaze/pkg/orchestrate"
	"github.com/spf13/cobra"
)

var solveBFS bool

var solveCmd = &cobra.Command{
	Use:   "solve <maze-string>",
	Args:  cobra.ExactArgs(1),
	Short: "Solve a single maze's shortest start-to-goal path",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveBFS, "bfs", false, "use full BFS instead of iterative-deepening DFS")
}

func runSolve(cmd *cobra.Command, args []string) error {
	mazeStr := args[0]
	nterm := mazeio.DetectNterm(mazeStr)

	pc, err := mazeio.Parse(nterm, mazeStr)
	if err != nil {
		return fmt.Errorf("failed to parse maze string: %w", err)
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)
	reporter := buildReporter(logger)

	result := orchestrate.SolveOne(pc, solveBFS)

	if verbose && result.Length >= 0 {
		var sb strings.Builder
		mazeio.PrintVerbose(&sb, pc, result.Path)
		mazeio.PrintGrid(&sb, result.Path)
		reporter.Result(mazeio.String(pc), sb.String(), result.Length)
		return nil
	}

	pathStr := ""
	if result.Length >= 0 {
		pathStr = mazeio.PrintPath(result.Path)
	}
	reporter.Result(mazeio.String(pc), pathStr, result.Length)
	return nil
}
