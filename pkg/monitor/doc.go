/*
Package monitor is the poll-loop driver tying the pipeline together.

One iteration per tick at a fixed interval:

	┌──────────────────────────────────────────────────────┐
	│                     tick (1s default)                │
	└──────┬───────────────────────────────────────────────┘
	       │
	       ▼
	 tailer.Poll ──▶ extract.Extract ──▶ state.Apply ──▶ changed?
	                                                       │ yes
	                                                       ▼
	                                     snapshot file + remote upsert
	                                               (+ optional email)

Everything runs on a single goroutine with cooperative blocking I/O, so
ticks never overlap: a slow publish delays the next read but cannot race it,
and events always apply in the order the log recorded them. The store is
mutated only here; sinks read snapshots.

On startup the first tick seeds the store from the log tail and writes the
snapshot unconditionally, so readers get a fresh (possibly empty) file
immediately. The only error Run ever returns is a failed snapshot write;
transient I/O, extraction misses, remote failures and email failures are
logged and the loop continues.
*/
package monitor
