// Package metrics holds run-level metrics for the dispatch job and pushes
// them to a Prometheus Pushgateway when one is configured.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

const namespace = "material_price_dispatch"

// Recorder collects the outcome of a single run.
type Recorder struct {
	registry *prometheus.Registry

	uploadsAttempted  prometheus.Gauge
	uploadsSuccessful prometheus.Gauge
	runDuration       prometheus.Gauge
	lastSuccess       prometheus.Gauge
	stageFailures     *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry. Extra collectors
// (for example the Cliq client metrics) are registered alongside.
func NewRecorder(extra ...prometheus.Collector) (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		uploadsAttempted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uploads_attempted",
			Help:      "Number of recipients attempted in the last run",
		}),
		uploadsSuccessful: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uploads_successful",
			Help:      "Number of successful uploads in the last run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run in seconds",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that passed all preconditions",
		}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Fatal failures by error kind",
		}, []string{"kind"}),
	}

	collectors := append([]prometheus.Collector{
		r.uploadsAttempted, r.uploadsSuccessful, r.runDuration, r.lastSuccess, r.stageFailures,
	}, extra...)
	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return r, nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRun records the report of a completed run.
func (r *Recorder) ObserveRun(report *domain.RunReport, elapsed time.Duration) {
	r.runDuration.Set(elapsed.Seconds())
	if report == nil {
		return
	}
	r.uploadsAttempted.Set(float64(report.Total()))
	r.uploadsSuccessful.Set(float64(report.Successful()))
	r.lastSuccess.SetToCurrentTime()
}

// ObserveFailure records a fatal precondition failure.
func (r *Recorder) ObserveFailure(err error, elapsed time.Duration) {
	r.runDuration.Set(elapsed.Seconds())
	r.stageFailures.WithLabelValues(ErrorKind(err)).Inc()
}

// Push sends every registered metric to the Pushgateway at url under job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}

// ErrorKind maps a fatal error to a short label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration"
	case errors.Is(err, domain.ErrAuth):
		return "auth"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	default:
		return "other"
	}
}
