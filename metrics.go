package truelist

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver exports request, retry, and circuit breaker metrics to
// Prometheus. All metrics carry the method and path of the logical call;
// failures are additionally labeled with the classified error type.
//
// Example:
//
//	metrics := truelist.NewMetricsObserver(prometheus.DefaultRegisterer)
//	config := truelist.DefaultConfig().
//	    WithAPIKey(key).
//	    WithObserver(metrics)
type MetricsObserver struct {
	requests  *prometheus.CounterVec
	failures  *prometheus.CounterVec
	retries   *prometheus.CounterVec
	durations *prometheus.HistogramVec
	circuit   prometheus.Gauge
}

// NewMetricsObserver creates a Prometheus-backed observer and registers its
// collectors with the given registerer. Panics on duplicate registration,
// matching prometheus.MustRegister semantics.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	o := &MetricsObserver{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truelist",
			Name:      "requests_total",
			Help:      "Logical API calls started.",
		}, []string{"method", "path"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truelist",
			Name:      "request_failures_total",
			Help:      "Logical API calls that ended in a classified error.",
		}, []string{"method", "path", "error_type"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truelist",
			Name:      "retries_total",
			Help:      "Retry attempts performed across all calls.",
		}, []string{"method", "path"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "truelist",
			Name:      "request_duration_seconds",
			Help:      "Logical call duration including backoff sleeps.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		circuit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "truelist",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open).",
		}),
	}
	reg.MustRegister(o.requests, o.failures, o.retries, o.durations, o.circuit)
	return o
}

// OnRequestStart counts a started logical call.
func (o *MetricsObserver) OnRequestStart(method, path string) {
	o.requests.WithLabelValues(method, path).Inc()
}

// OnRequestEnd records the call duration and counts failures by error type.
func (o *MetricsObserver) OnRequestEnd(method, path string, duration time.Duration, err error) {
	o.durations.WithLabelValues(method, path).Observe(duration.Seconds())
	if err == nil {
		return
	}
	errType := ErrorTypeUnknown
	var clErr *Error
	if errors.As(err, &clErr) {
		errType = clErr.Type
	}
	o.failures.WithLabelValues(method, path, errType.String()).Inc()
}

// OnRetryAttempt counts a retry.
func (o *MetricsObserver) OnRetryAttempt(method, path string, attempt int, delay time.Duration, err error) {
	o.retries.WithLabelValues(method, path).Inc()
}

// OnCircuitBreakerStateChange exports the new circuit state.
func (o *MetricsObserver) OnCircuitBreakerStateChange(oldState, newState CircuitState) {
	o.circuit.Set(float64(newState))
}
