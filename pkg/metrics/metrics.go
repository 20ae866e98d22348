// Package metrics exposes the orchestrator's evaluated/solved/pruned/best
// counters over an optional Prometheus HTTP listener. Disabled unless the
// caller supplies a listen address. The solver and the drivers never
// import this package; pkg/orchestrate reports through a Recorder.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var stderrWriter = os.Stderr

// Recorder is the write side the orchestrator calls into after every
// candidate evaluation. Noop() returns a Recorder that discards every
// observation, so callers need not branch on whether metrics are enabled.
type Recorder interface {
	Evaluated()
	Solved()
	Pruned()
	SetBest(length int)
	SetQueueDepth(depth int)
}

// Server owns a Prometheus registry and an HTTP listener exposing it.
// The orchestrator updates these metrics from the same evaluation events
// it counts for the Snapshot lines in pkg/reporting; the Snapshot values
// come from the orchestrator's own counters, not from this registry.
type Server struct {
	registry *prometheus.Registry

	evaluated prometheus.Counter
	solved    prometheus.Counter
	pruned    prometheus.Counter
	best      prometheus.Gauge
	queue     prometheus.Gauge

	mu      sync.Mutex
	httpSrv *http.Server
	running bool
}

// New builds a Server with its own registry; metrics are registered but
// the HTTP listener is not started until Start is called.
func New() *Server {
	reg := prometheus.NewRegistry()

	s := &Server{
		registry: reg,
		evaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repmaze_evaluated_total",
			Help: "Candidate port configurations evaluated so far.",
		}),
		solved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repmaze_solved_total",
			Help: "Candidates for which the solver found a path.",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repmaze_pruned_total",
			Help: "Candidates rejected by the abstract reachability filter.",
		}),
		best: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "repmaze_best_length",
			Help: "Longest solved path length found so far.",
		}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "repmaze_queue_depth",
			Help: "Queue depth as reported by the orchestrator, which sets it to 0 after every evaluation for all drivers.",
		}),
	}

	reg.MustRegister(s.evaluated, s.solved, s.pruned, s.best, s.queue)
	return s
}

func (s *Server) Evaluated() { s.evaluated.Inc() }
func (s *Server) Solved()    { s.solved.Inc() }
func (s *Server) Pruned()    { s.pruned.Inc() }

func (s *Server) SetBest(length int) { s.best.Set(float64(length)) }

func (s *Server) SetQueueDepth(depth int) { s.queue.Set(float64(depth)) }

// Start begins serving the registry's exposition format at addr. It
// returns once the listener is up; shutdown happens via Stop or ctx
// cancellation.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	s.mu.Lock()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	s.running = true
	s.mu.Unlock()

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(stderrWriter, "metrics listener stopped: %v\n", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()

	return nil
}

// Stop shuts down the HTTP listener if one is running.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.httpSrv == nil {
		return nil
	}
	s.running = false
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

// noop satisfies Recorder for callers that want metrics disabled
// without branching at every call site.
type noop struct{}

func (noop) Evaluated()        {}
func (noop) Solved()           {}
func (noop) Pruned()           {}
func (noop) SetBest(int)       {}
func (noop) SetQueueDepth(int) {}

// Noop returns a Recorder that discards every observation.
func Noop() Recorder { return noop{} }
