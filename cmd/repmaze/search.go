package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lucasbrandao/repmaze/pkg/errs"
	"github.com/lucasbrandao/repmaze/pkg/interrupt"
	"github.com/lucasbrandao/repmaze/pkg/orchestrate"
	"github.com/spf13/cobra"
)

var (
	searchMaxAport  int
	searchMinAport  int
	searchMaxLen    int
	searchRandom    int64
	searchRandomSet bool
	searchTopdown   bool
	searchBFS       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <n>",
	Args:  cobra.ExactArgs(1),
	Short: "Search the candidate space for the longest-path maze",
	Long: `search explores port configurations for block size n, looking for the
configuration with the longest shortest start-to-goal path.

By default it enumerates every k-subset of candidate ports for k in
[--min-aport, --max-aport] in lexicographic order. --random <seed> switches
to random sampling instead; --topdown switches to the best-first driver
that starts fully connected and removes one port at a time.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxAport, "max-aport", 0, "maximum number of active ports (enumerate/random modes)")
	searchCmd.Flags().IntVar(&searchMinAport, "min-aport", 0, "minimum number of active ports (enumerate/random modes)")
	searchCmd.Flags().IntVar(&searchMaxLen, "max-len", 0, "stop early once a path at least this long is found")
	searchCmd.Flags().Int64Var(&searchRandom, "random", 0, "use random sampling with this seed instead of enumeration")
	searchCmd.Flags().BoolVar(&searchTopdown, "topdown", false, "use the best-first top-down driver instead of enumeration/sampling")
	searchCmd.Flags().BoolVar(&searchBFS, "bfs", false, "use full BFS instead of iterative-deepening DFS")
}

func runSearch(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 2 {
		return fmt.Errorf("invalid n %q: must be an integer >= 2: %w", args[0], errs.ErrInvalidArgument)
	}
	searchRandomSet = cmd.Flags().Changed("random")

	driver := orchestrate.DriverEnumerate
	switch {
	case searchTopdown && searchRandomSet:
		return fmt.Errorf("--topdown and --random are mutually exclusive: %w", errs.ErrInvalidArgument)
	case searchTopdown:
		driver = orchestrate.DriverTopdown
	case searchRandomSet:
		driver = orchestrate.DriverRandom
	}

	if searchMaxAport < 0 || searchMinAport < 0 {
		return fmt.Errorf("--max-aport and --min-aport must be non-negative: %w", errs.ErrInvalidArgument)
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)
	reporter := buildReporter(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	recorder, waitMetrics := startMetrics(ctx, logger)
	defer func() {
		cancel()
		_ = waitMetrics()
	}()

	ctrl := interrupt.New()
	ctrl.Start(ctx)

	params := orchestrate.Params{
		NTerm:         n,
		Driver:        driver,
		KMin:          searchMinAport,
		KMax:          searchMaxAport,
		Seed:          uint64(searchRandom),
		BFS:           searchBFS,
		MaxLen:        searchMaxLen,
		ProgressEvery: cfg.Reporting.ProgressInterval,
	}

	best, _ := orchestrate.Run(params, orchestrate.Dependencies{
		Reporter: reporter,
		Metrics:  recorder,
		Control:  ctrl,
	})

	if best.PC == nil {
		reporter.Result("normal: (none); nx: (none); ny: (none)", "", -1)
		return nil
	}

	pathStr := ""
	if verbose {
		pathStr = pathSummary(best)
	}
	reporter.Result(bestMazeString(best), pathStr, best.Length)
	return nil
}
