package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loginchallenge"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Operation metrics
	OperationsTotal    *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	OperationsInFlight *prometheus.GaugeVec

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionsEnded  *prometheus.CounterVec
}

// NewRegistry creates a registry with all application metrics and the
// Go runtime and process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Controller operations by result.",
		}, []string{"op", "result"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of admitted controller operations.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 2.5, 5, 10},
		}, []string{"op"}),
		OperationsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operations_in_flight",
			Help:      "Whether an operation is currently running (0 or 1).",
		}, []string{"op"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Whether a session token is held (0 or 1).",
		}),
		SessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Sessions ended by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		r.OperationsTotal,
		r.OperationDuration,
		r.OperationsInFlight,
		r.SessionsActive,
		r.SessionsEnded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer returns the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveOperation counts an admitted operation and records its duration.
func (r *Registry) ObserveOperation(op, result string, d time.Duration) {
	r.OperationsTotal.WithLabelValues(op, result).Inc()
	r.OperationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// OperationRejected counts an operation refused because it was already running.
func (r *Registry) OperationRejected(op string) {
	r.OperationsTotal.WithLabelValues(op, "busy").Inc()
}

// SetInFlight marks op running or idle.
func (r *Registry) SetInFlight(op string, busy bool) {
	v := 0.0
	if busy {
		v = 1
	}
	r.OperationsInFlight.WithLabelValues(op).Set(v)
}

// SessionStarted marks a session as held.
func (r *Registry) SessionStarted() {
	r.SessionsActive.Set(1)
}

// SessionEnded marks the session as gone and counts the reason.
func (r *Registry) SessionEnded(reason string) {
	r.SessionsActive.Set(0)
	r.SessionsEnded.WithLabelValues(reason).Inc()
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry, created on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}
