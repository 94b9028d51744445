package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Mutation pipeline metrics
	MutationsTotal  *prometheus.CounterVec
	MutationLatency *prometheus.HistogramVec

	// Access policy metrics
	AccessDenied    *prometheus.CounterVec
	RecordsFiltered *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		MutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_total",
			Help:      "Total number of mutation operations by record kind, operation and outcome",
		}, []string{"kind", "operation", "outcome"}),
		MutationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutation_duration_seconds",
			Help:      "Time spent applying mutation operations",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		}, []string{"kind", "operation"}),
		AccessDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "access_denied_total",
			Help:      "Total number of authorization denials by record kind and caller role",
		}, []string{"kind", "role"}),
		RecordsFiltered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_filtered_total",
			Help:      "Total number of records hidden from callers by the visibility filter",
		}, []string{"kind"}),
	}
}
