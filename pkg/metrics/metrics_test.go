package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorderDiscardsObservations(t *testing.T) {
	r := Noop()
	r.Evaluated()
	r.Solved()
	r.Pruned()
	r.SetBest(5)
	r.SetQueueDepth(3)
	// no panics, no observable effect — the point of the noop
}

func TestServerSatisfiesRecorder(t *testing.T) {
	var _ Recorder = New()
}

func TestServerExposesMetricsEndpoint(t *testing.T) {
	s := New()
	s.Evaluated()
	s.Solved()
	s.Pruned()
	s.SetBest(42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := "127.0.0.1:19873"
	require.NoError(t, s.Start(ctx, addr))
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "repmaze_evaluated_total")
	assert.Contains(t, string(body), "repmaze_best_length 42")
}

func TestStartIsIdempotent(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx, "127.0.0.1:19874"))
	defer s.Stop()
	require.NoError(t, s.Start(ctx, "127.0.0.1:19874"))
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	s := New()
	assert.NoError(t, s.Stop())
}
