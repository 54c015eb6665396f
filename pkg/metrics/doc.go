/*
Package metrics provides Prometheus metrics and health endpoints for the
strategy status watcher.

All metrics are registered at package init on the default registry and
updated directly by the owning components:

	metrics.LinesRead.Add(float64(len(lines)))
	metrics.EventsExtracted.WithLabelValues("enable").Inc()
	metrics.UpsertErrors.Inc()

# Metrics Catalog

	nt8status_lines_read_total            counter    log lines consumed
	nt8status_rotations_detected_total    counter    rotations/truncations handled
	nt8status_events_extracted_total      counter    extracted events, by action label
	nt8status_extraction_misses_total     counter    lines matching no rule
	nt8status_strategies_tracked          gauge      current store size
	nt8status_snapshot_writes_total       counter    local snapshot writes
	nt8status_snapshot_write_errors_total counter    failed snapshot writes
	nt8status_upserts_total               counter    successful remote upserts
	nt8status_upsert_errors_total         counter    failed remote upserts
	nt8status_upserts_skipped_total       counter    upserts suppressed by cooldown
	nt8status_emails_sent_total           counter    change notification emails
	nt8status_tick_duration_seconds       histogram  poll loop tick duration

Extraction misses are the expected majority case and deliberately a plain
counter rather than an error signal.

# Health

A small component registry backs /healthz, /healthz/live and /healthz/ready.
Components report via RegisterComponent/UpdateComponent; readiness requires
the tailer to have found a log file and the initial snapshot to be written.

Serve exposes everything on the address from the metrics.listen config key;
an empty address disables the HTTP surface entirely, which is the default
(the local snapshot file is the primary read interface).
*/
package metrics
