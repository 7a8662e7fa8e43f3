// Package metrics exports Prometheus metrics for machine transitions and
// tick loops. Everything registers on the default registry at load; wire
// the adapters in with Observer and Recorder and expose the registry with
// SetupEndpoint.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/comalice/pushfsm"
)

const (
	namespace = "pushfsm"

	subsystemEngine = "engine"
	subsystemLoop   = "loop"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemEngine,
			Name:      "transitions_total",
			Help:      "Total number of committed transitions by operation and edge",
		},
		[]string{"machine", "op", "from", "to"},
	)

	transitionsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemEngine,
			Name:      "transitions_rejected_total",
			Help:      "Total number of rejected transition attempts by operation",
		},
		[]string{"machine", "op"},
	)

	ticksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemLoop,
			Name:      "ticks_total",
			Help:      "Total number of completed ticks",
		},
		[]string{"machine"},
	)

	entityCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemLoop,
			Name:      "entities",
			Help:      "Number of entities driven on the most recent tick",
		},
		[]string{"machine"},
	)

	tickDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subsystemLoop,
			Name:      "tick_duration_milliseconds",
			Help:      "Time taken to tick the whole population (in milliseconds)",
			Objectives: map[float64]float64{
				0.5:  0.01, // 50th percentile with 1% error
				0.9:  0.01, // 90th percentile with 1% error
				0.95: 0.01, // 95th percentile with 1% error
				0.99: 0.01, // 99th percentile with 1% error
			},
		},
		[]string{"machine"},
	)
)

// RecordTransition counts one committed transition.
func RecordTransition(machine string, op pushfsm.Op, from, to string) {
	transitionsTotal.WithLabelValues(machine, op.String(), from, to).Inc()
}

// RecordRejection counts one transition attempt that returned an error.
func RecordRejection(machine string, op pushfsm.Op) {
	transitionsRejectedTotal.WithLabelValues(machine, op.String()).Inc()
}

// RecordTick records one completed tick over the given population size.
func RecordTick(machine string, entities int, took time.Duration) {
	ticksTotal.WithLabelValues(machine).Inc()
	entityCount.WithLabelValues(machine).Set(float64(entities))
	tickDuration.WithLabelValues(machine).Observe(float64(took.Milliseconds()))
}

// StateNamer maps a state to its metric label value. A nil StateNamer
// falls back to the numeric ID, with pushfsm.None rendered as "none".
type StateNamer func(pushfsm.StateID) string

func labelFor(resolve StateNamer, id pushfsm.StateID) string {
	if resolve != nil {
		return resolve(id)
	}
	if id == pushfsm.None {
		return "none"
	}
	return strconv.Itoa(int(id))
}

// Observer returns an observer that records every committed transition
// under the given machine label.
func Observer(machine string, resolve StateNamer) pushfsm.Observer {
	return pushfsm.ObserverFunc(func(op pushfsm.Op, from, to pushfsm.StateID) {
		RecordTransition(machine, op, labelFor(resolve, from), labelFor(resolve, to))
	})
}

// LoopRecorder records tick metrics under one machine label. It satisfies
// the realtime loop's TickRecorder seam.
type LoopRecorder struct {
	machine string
}

// Recorder returns a tick recorder for the given machine label.
func Recorder(machine string) *LoopRecorder {
	return &LoopRecorder{machine: machine}
}

// RecordTick implements the realtime tick recorder.
func (r *LoopRecorder) RecordTick(seq uint64, entities int, took time.Duration) {
	RecordTick(r.machine, entities, took)
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetupEndpoint starts an HTTP server exposing /metrics on addr. It serves
// in the background and returns the server so the caller can shut it down.
// This should be called once at application startup.
func SetupEndpoint(addr string, log *zap.SugaredLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if log != nil {
				log.Errorw("metrics endpoint failed", "addr", addr, "error", err)
			}
		}
	}()

	return server
}
