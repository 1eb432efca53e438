package cliq

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "material_price_dispatch"

var (
	// uploadDuration measures Cliq file uploads by outcome
	// (success, rejected, transport_error).
	uploadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "cliq",
			Name:      "upload_duration_seconds",
			Help:      "Duration of Cliq file uploads in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"status"},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cliq",
			Name:      "uploads_total",
			Help:      "Total number of Cliq file uploads by outcome",
		},
		[]string{"status"},
	)
)

// Collectors returns the client metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{uploadDuration, uploadsTotal}
}

func recordUpload(status string, durationSeconds float64) {
	uploadDuration.WithLabelValues(status).Observe(durationSeconds)
	uploadsTotal.WithLabelValues(status).Inc()
}
