package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the container of Prometheus collectors the assignment core
// and its demo driver report through. The core never touches a global
// registry directly; the driver hands it a *Metrics through
// assignment.WithRecorder.
type Metrics struct {
	PathsGeneratedTotal    *prometheus.CounterVec
	PathFingerprintCollide prometheus.Counter
	SubproblemAssembleTime *prometheus.HistogramVec
	LinkFlowUpdateTime     *prometheus.HistogramVec
	ObjectiveValue         prometheus.Gauge
	IterationsTotal        prometheus.Counter
	RunsTotal              *prometheus.CounterVec

	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics builds and registers the metric families under namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		PathsGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "paths_generated_total",
				Help:      "Total number of distinct paths discovered across all origins",
			},
			[]string{"origin"},
		),

		PathFingerprintCollide: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "path_fingerprint_dedup_total",
				Help:      "Total number of rediscovered paths dropped by fingerprint dedup",
			},
		),

		SubproblemAssembleTime: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "subproblem_assemble_duration_seconds",
				Help:      "Duration of building the per-origin QP subproblem matrices",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"origin"},
		),

		LinkFlowUpdateTime: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "link_flow_update_duration_seconds",
				Help:      "Duration of applying a link-flow ledger update",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"mode"}, // immediate, deferred, stepsize
		),

		ObjectiveValue: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "objective_value",
				Help:      "Last computed Beckmann objective value",
			},
		),

		IterationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "iterations_total",
				Help:      "Total number of outer convergence iterations completed",
			},
		),

		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of assignment runs by outcome",
			},
			[]string{"outcome"}, // converged, max_iterations, error
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-wide metrics, lazily initializing them if needed.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("assignd", "assignment")
	}
	return defaultMetrics
}

// Recorder lists every recording method Metrics provides. The assignment
// core accepts the narrower assignment.Recorder (the first four methods),
// which Metrics also satisfies, so it never has to import prometheus.
type Recorder interface {
	RecordPathGenerated(origin int)
	RecordFingerprintCollision()
	RecordSubproblemAssemble(origin int, d time.Duration)
	RecordLinkFlowUpdate(mode string, d time.Duration)
	RecordObjective(value float64)
	RecordIteration()
	RecordRun(outcome string)
}

// RecordPathGenerated increments the per-origin path counter.
func (m *Metrics) RecordPathGenerated(origin int) {
	m.PathsGeneratedTotal.WithLabelValues(strconv.Itoa(origin)).Inc()
}

// RecordFingerprintCollision counts a rediscovered path dropped by dedup.
func (m *Metrics) RecordFingerprintCollision() {
	m.PathFingerprintCollide.Inc()
}

// RecordSubproblemAssemble records how long matrix assembly took for an origin.
func (m *Metrics) RecordSubproblemAssemble(origin int, d time.Duration) {
	m.SubproblemAssembleTime.WithLabelValues(strconv.Itoa(origin)).Observe(d.Seconds())
}

// RecordLinkFlowUpdate records how long a ledger update took, by mode.
func (m *Metrics) RecordLinkFlowUpdate(mode string, d time.Duration) {
	m.LinkFlowUpdateTime.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordObjective sets the last computed Beckmann objective value.
func (m *Metrics) RecordObjective(value float64) {
	m.ObjectiveValue.Set(value)
}

// RecordIteration increments the outer-loop iteration counter.
func (m *Metrics) RecordIteration() {
	m.IterationsTotal.Inc()
}

// RecordRun records the terminal outcome of a full assignment run.
func (m *Metrics) RecordRun(outcome string) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// SetServiceInfo publishes build metadata as a constant gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer runs a blocking HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
