/*
Package publish delivers state to the two sinks: the local snapshot file and
the Supabase table.

Both sinks implement the same Sink interface and are invoked on every
changed tick; they are independent, so a sink failure never blocks the
other. The local snapshot is the authoritative machine-readable output and
its write failure is the watcher's only fatal condition. The remote upsert
is best-effort: failures are logged and the rows retried on the next change.

# Sentinel

Remote rows are keyed by (strategy_name, instrument) with
overwrite-on-conflict. Empty instrument or connection values become the
"EMPTY" sentinel before transmission so the conflict key never collapses to
an ambiguous empty value across clients. The local snapshot keeps true empty
strings; the sentinel exists only on the wire.

# Cooldown

A bbolt journal remembers the hash and time of the last payload sent per
key. Real state changes always publish; a payload identical to the last one
is suppressed until publish.cooldown elapses. This is a throttle on
re-publishing identical state, not on state flapping, and it is configurable
policy rather than a hard rule.
*/
package publish
