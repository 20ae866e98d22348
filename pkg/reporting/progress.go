package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// OutputFormat selects how progress lines and the final summary are
// rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ProgressReporter writes progress lines to one stream (stderr by
// convention) and the final result to another (stdout), matching the
// separation external tooling pipes on.
type ProgressReporter struct {
	format OutputFormat
	logW   io.Writer
	resW   io.Writer
	logger *Logger
}

// NewProgressReporter builds a reporter. logW receives progress lines,
// resW receives the final result; passing nil for either defaults to
// stderr/stdout respectively.
func NewProgressReporter(format OutputFormat, logger *Logger, logW, resW io.Writer) *ProgressReporter {
	if logW == nil {
		logW = os.Stderr
	}
	if resW == nil {
		resW = os.Stdout
	}
	return &ProgressReporter{format: format, logW: logW, resW: resW, logger: logger}
}

// Progress emits one (evaluated, solved, pruned, best, queue_state)
// line. The orchestrator invokes this every 10 000 evaluations (by
// default); new bests are announced separately through NewBest.
func (pr *ProgressReporter) Progress(s Snapshot) {
	switch pr.format {
	case FormatJSON:
		data, err := json.Marshal(s)
		if err != nil {
			pr.logger.Error("failed to marshal progress snapshot", "error", err)
			return
		}
		fmt.Fprintln(pr.logW, string(data))
	default:
		fmt.Fprintf(pr.logW, "[%s] evaluated=%d solved=%d pruned=%d best=%d queue=%s\n",
			time.Now().Format("15:04:05"), s.Evaluated, s.Solved, s.Pruned, s.Best, s.QueueState)
	}
}

// NewBest announces a new global best, separately from the periodic
// cadence in Progress.
func (pr *ProgressReporter) NewBest(length int, maze string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "new_best",
			"length":    length,
			"maze":      maze,
			"timestamp": time.Now(),
		})
		fmt.Fprintln(pr.logW, string(data))
	default:
		fmt.Fprintf(pr.logW, "[%s] new best: length=%d\n", time.Now().Format("15:04:05"), length)
	}
}

// Result writes the final best maze, its solved path, and its length
// to the result stream. This is the only thing that goes to stdout in
// the default wiring.
func (pr *ProgressReporter) Result(maze string, pathStr string, length int) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"maze":   maze,
			"path":   pathStr,
			"length": length,
		})
		fmt.Fprintln(pr.resW, string(data))
	default:
		fmt.Fprintf(pr.resW, "%s\n", maze)
		if pathStr != "" {
			fmt.Fprintf(pr.resW, "%s\n", pathStr)
		}
		fmt.Fprintf(pr.resW, "length: %d\n", length)
	}
}

// Summary prints the concluding report an orchestrator emits on
// interruption or exhaustion.
func (pr *ProgressReporter) Summary(s RunSummary) {
	switch pr.format {
	case FormatJSON:
		data, err := json.Marshal(s)
		if err != nil {
			pr.logger.Error("failed to marshal run summary", "error", err)
			return
		}
		fmt.Fprintln(pr.logW, string(data))
	default:
		status := "exhausted"
		if s.Interrupted {
			status = "interrupted"
		}
		fmt.Fprintf(pr.logW, "run %s (%s) %s: evaluated=%d solved=%d pruned=%d best=%d duration=%s\n",
			s.RunID, s.Mode, status, s.Evaluated, s.Solved, s.Pruned, s.BestLength, s.Duration)
	}
}
