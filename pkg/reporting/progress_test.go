package reporting

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *Logger {
	return NewLogger(LoggerConfig{Level: LogLevelError, Format: LogFormatText})
}

func TestProgressTextGoesToLogWriter(t *testing.T) {
	var logBuf, resBuf bytes.Buffer
	pr := NewProgressReporter(FormatText, newTestLogger(), &logBuf, &resBuf)

	pr.Progress(Snapshot{Evaluated: 10000, Solved: 42, Pruned: 7, Best: 5, QueueState: "3/1000"})

	assert.Contains(t, logBuf.String(), "evaluated=10000")
	assert.Contains(t, logBuf.String(), "best=5")
	assert.Empty(t, resBuf.String())
}

func TestProgressJSONIsValidAndWellFormed(t *testing.T) {
	var logBuf, resBuf bytes.Buffer
	pr := NewProgressReporter(FormatJSON, newTestLogger(), &logBuf, &resBuf)

	pr.Progress(Snapshot{Evaluated: 1, Solved: 1, Pruned: 0, Best: 2, QueueState: "0/1000"})

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &decoded))
	assert.Equal(t, int64(1), decoded.Evaluated)
	assert.Equal(t, 2, decoded.Best)
}

func TestResultGoesToResultWriterOnly(t *testing.T) {
	var logBuf, resBuf bytes.Buffer
	pr := NewProgressReporter(FormatText, newTestLogger(), &logBuf, &resBuf)

	pr.Result("normal: (none); nx: (none); ny: (none)", "", 3)

	assert.Contains(t, resBuf.String(), "normal: (none)")
	assert.Contains(t, resBuf.String(), "length: 3")
	assert.Empty(t, logBuf.String())
}

func TestDefaultStreamsAreStderrAndStdout(t *testing.T) {
	pr := NewProgressReporter(FormatText, newTestLogger(), nil, nil)
	assert.NotNil(t, pr.logW)
	assert.NotNil(t, pr.resW)
}

func TestSummaryReportsInterruptedStatus(t *testing.T) {
	var logBuf, resBuf bytes.Buffer
	pr := NewProgressReporter(FormatText, newTestLogger(), &logBuf, &resBuf)

	pr.Summary(RunSummary{RunID: "abc", Mode: ModeSearch, Interrupted: true, BestLength: 9})

	out := logBuf.String()
	assert.True(t, strings.Contains(out, "interrupted"))
	assert.True(t, strings.Contains(out, "best=9"))
}

func TestNewBestEmitsLength(t *testing.T) {
	var logBuf, resBuf bytes.Buffer
	pr := NewProgressReporter(FormatText, newTestLogger(), &logBuf, &resBuf)

	pr.NewBest(7, "normal: (none); nx: (none); ny: (none)")

	assert.Contains(t, logBuf.String(), "new best: length=7")
}
