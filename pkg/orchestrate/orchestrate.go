// Package orchestrate wires the abstract filter, solver, and one of the
// three drivers (enumerate, sample, topdown) into the common evaluation
// pipeline shared by every driver: filter, solve, update best, report
// progress, optionally stop early. Its side effects go through the
// collaborators it is handed: a pkg/reporting reporter, a pkg/metrics
// Recorder, and a pkg/interrupt controller. Starting the metrics listener
// and the signal watcher is left to the caller (cmd/repmaze).
package orchestrate

import (
	"time"

	"github.com/google/uuid"
	"github.com/lucasbrandao/repmaze/pkg/canon"
	"github.com/lucasbrandao/repmaze/pkg/enumerate"
	"github.com/lucasbrandao/repmaze/pkg/interrupt"
	"github.com/lucasbrandao/repmaze/pkg/mazeio"
	"github.com/lucasbrandao/repmaze/pkg/metrics"
	"github.com/lucasbrandao/repmaze/pkg/portconfig"
	"github.com/lucasbrandao/repmaze/pkg/reach"
	"github.com/lucasbrandao/repmaze/pkg/reporting"
	"github.com/lucasbrandao/repmaze/pkg/sample"
	"github.com/lucasbrandao/repmaze/pkg/solver"
	"github.com/lucasbrandao/repmaze/pkg/topdown"
)

// Driver selects which candidate generator feeds the pipeline.
type Driver int

const (
	DriverEnumerate Driver = iota
	DriverRandom
	DriverTopdown
)

// Params configures one orchestrator run. NTerm, the k-range, and the
// random seed are the only maze-semantic knobs and are always supplied by
// the CLI caller, never by a config file, so a config file can never
// silently change search semantics.
type Params struct {
	NTerm         int
	Driver        Driver
	KMin          int
	KMax          int
	Seed          uint64
	BFS           bool
	MaxLen        int // 0 means "no target length"
	ProgressEvery int
}

// Dependencies are the ambient collaborators a run reports through; any
// may be the package's own no-op default.
type Dependencies struct {
	Reporter *reporting.ProgressReporter
	Metrics  metrics.Recorder
	Control  *interrupt.Controller
}

// Best tracks the best-so-far candidate found during a run.
type Best struct {
	Length int
	PC     *portconfig.PC
	Path   []solver.State
}

// Run executes the pipeline over every candidate the selected driver
// produces until the driver is exhausted, the interrupt controller fires,
// or MaxLen is reached. It returns the final best and a run summary.
func Run(params Params, deps Dependencies) (Best, reporting.RunSummary) {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Noop()
	}
	progressEvery := params.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = 10000
	}

	runID := uuid.NewString()
	start := time.Now()

	best := Best{Length: -1}
	var evaluated, solved, pruned int64
	filter := reach.New(params.NTerm)

	stop := func() bool {
		return deps.Control != nil && deps.Control.Stopped()
	}

	queueState := func() string { return "-" }

	evalOne := func(pc *portconfig.PC, minLimit int) int {
		evaluated++
		deps.Metrics.Evaluated()

		if !filter.Reachable(pc) {
			pruned++
			deps.Metrics.Pruned()
			maybeReportProgress(deps, progressEvery, evaluated, solved, pruned, best.Length, queueState())
			return -1
		}

		result := solver.Solve(pc, solver.Options{WithPath: true, BFS: params.BFS, MinLimit: minLimit})
		if result.Length < 0 {
			maybeReportProgress(deps, progressEvery, evaluated, solved, pruned, best.Length, queueState())
			return -1
		}
		solved++
		deps.Metrics.Solved()

		if result.Length > best.Length {
			best = Best{Length: result.Length, PC: pc.Clone(), Path: result.Path}
			deps.Metrics.SetBest(best.Length)
			if deps.Reporter != nil {
				deps.Reporter.NewBest(best.Length, mazeio.String(best.PC))
			}
		}

		maybeReportProgress(deps, progressEvery, evaluated, solved, pruned, best.Length, queueState())
		return result.Length
	}

	switch params.Driver {
	case DriverTopdown:
		driver := topdown.New(params.NTerm)
		driver.Run(func() bool {
			return stop() || reachedTarget(params.MaxLen, best.Length)
		}, evalOne)

	case DriverRandom:
		rng := sample.NewRNG(params.Seed)
		candidates := allCandidates(params.NTerm)
		sample.Run(rng, len(candidates), params.KMin, params.KMax, func() bool {
			return stop() || reachedTarget(params.MaxLen, best.Length)
		}, func(t sample.Trial) bool {
			pc := buildPC(params.NTerm, candidates, t.Indices)
			evalOne(pc, 0)
			return true
		})

	default: // DriverEnumerate
		candidates := allCandidates(params.NTerm)
		enumerate.Range(len(candidates), params.KMin, params.KMax, func(k int, combo []int) bool {
			if stop() || reachedTarget(params.MaxLen, best.Length) {
				return false
			}
			pc := buildPC(params.NTerm, candidates, combo)
			evalOne(pc, 0)
			return true
		})
	}

	summary := reporting.RunSummary{
		RunID:       runID,
		Mode:        driverMode(params.Driver),
		NTerm:       params.NTerm,
		StartTime:   start,
		EndTime:     time.Now(),
		Duration:    time.Since(start).String(),
		Evaluated:   evaluated,
		Solved:      solved,
		Pruned:      pruned,
		BestLength:  best.Length,
		Interrupted: stop(),
	}
	if best.PC != nil {
		summary.BestMaze = mazeio.String(best.PC)
	}
	if deps.Reporter != nil {
		deps.Reporter.Summary(summary)
	}
	return best, summary
}

func maybeReportProgress(deps Dependencies, every int, evaluated, solved, pruned int64, best int, queue string) {
	deps.Metrics.SetQueueDepth(0)
	if deps.Reporter == nil {
		return
	}
	if evaluated%int64(every) != 0 {
		return
	}
	deps.Reporter.Progress(reporting.Snapshot{
		Evaluated:  evaluated,
		Solved:     solved,
		Pruned:     pruned,
		Best:       best,
		QueueState: queue,
	})
}

func reachedTarget(target, best int) bool {
	return target > 0 && best >= target
}

func driverMode(d Driver) reporting.RunMode {
	switch d {
	case DriverTopdown:
		return reporting.ModeTopdown
	case DriverRandom:
		return reporting.ModeRandom
	default:
		return reporting.ModeSearch
	}
}

// allCandidates lists every non-self-loop flat port index for an nterm
// value, the universe the enumerator and sampler draw subsets from.
func allCandidates(n int) []int {
	seed := portconfig.Create(n)
	var out []int
	for i := 0; i < seed.Total(); i++ {
		if !seed.IsSelfLoop(i) {
			out = append(out, i)
		}
	}
	return out
}

// buildPC enables the candidate ports named by indices (positions into
// the candidates slice) and returns the resulting port configuration.
func buildPC(n int, candidates []int, indices []int) *portconfig.PC {
	pc := portconfig.Create(n)
	for _, i := range indices {
		pc.FlatSet(candidates[i], true)
	}
	return pc
}

// SolveOne runs the single-candidate pipeline (filter, solve) used by the
// "solve" sub-command, bypassing the enumerator/sampler/topdown drivers
// entirely. It reports nothing and never touches the interrupt flag: a
// single solve always runs to completion or the depth cap.
func SolveOne(pc *portconfig.PC, bfs bool) solver.Result {
	f := reach.New(pc.NTerm)
	if !f.Reachable(pc) {
		return solver.Result{Length: -1}
	}
	return solver.Solve(pc, solver.Options{WithPath: true, BFS: bfs})
}

// Normalize canonicalises pc via pkg/canon, exposed here so the "norm"
// sub-command doesn't need to import pkg/canon directly.
func Normalize(pc *portconfig.PC) *portconfig.PC {
	return canon.Normalize(pc)
}
