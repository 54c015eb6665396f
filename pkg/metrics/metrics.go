package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tailer metrics
	LinesRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_lines_read_total",
			Help: "Total number of log lines read",
		},
	)

	RotationsDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_rotations_detected_total",
			Help: "Total number of log rotations and truncations handled",
		},
	)

	// Extraction metrics
	EventsExtracted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nt8status_events_extracted_total",
			Help: "Total number of status events extracted by action",
		},
		[]string{"action"},
	)

	ExtractionMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_extraction_misses_total",
			Help: "Total number of lines matching no pattern (expected majority)",
		},
	)

	// Store metrics
	StrategiesTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nt8status_strategies_tracked",
			Help: "Number of strategy instances currently tracked",
		},
	)

	// Publisher metrics
	SnapshotWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_snapshot_writes_total",
			Help: "Total number of local snapshot files written",
		},
	)

	SnapshotWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_snapshot_write_errors_total",
			Help: "Total number of failed local snapshot writes",
		},
	)

	Upserts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_upserts_total",
			Help: "Total number of successful remote upserts",
		},
	)

	UpsertErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_upsert_errors_total",
			Help: "Total number of failed remote upserts",
		},
	)

	UpsertsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_upserts_skipped_total",
			Help: "Total number of upserts suppressed by the cooldown policy",
		},
	)

	// Notification metrics
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nt8status_emails_sent_total",
			Help: "Total number of change notification emails sent",
		},
	)

	// Loop metrics
	TickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nt8status_tick_duration_seconds",
			Help:    "Poll loop tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(LinesRead)
	prometheus.MustRegister(RotationsDetected)
	prometheus.MustRegister(EventsExtracted)
	prometheus.MustRegister(ExtractionMisses)
	prometheus.MustRegister(StrategiesTracked)
	prometheus.MustRegister(SnapshotWrites)
	prometheus.MustRegister(SnapshotWriteErrors)
	prometheus.MustRegister(Upserts)
	prometheus.MustRegister(UpsertErrors)
	prometheus.MustRegister(UpsertsSkipped)
	prometheus.MustRegister(EmailsSent)
	prometheus.MustRegister(TickDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
