package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics driven by the server process. HTTP
// request metrics are registered separately by the metrics middleware.
type Metrics struct {
	// Scheduled event metrics
	ScheduledEventsRun    prometheus.Counter
	ScheduleSweepFailures prometheus.Counter
	ScheduleSweepDuration prometheus.Histogram

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ScheduledEventsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lending_scheduled_events_run_total",
			Help: "Total scheduled events executed by the background sweeper",
		}),
		ScheduleSweepFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lending_schedule_sweep_failures_total",
			Help: "Total schedule sweeps that failed",
		}),
		ScheduleSweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lending_schedule_sweep_duration_seconds",
			Help:    "Duration of one due-schedule sweep",
			Buckets: prometheus.DefBuckets,
		}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lending_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
