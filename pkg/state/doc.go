/*
Package state holds the in-memory status store.

The store maps (name, instrument) keys to the latest known StatusRecord,
applying events with last-write-wins semantics in log order. It is a plain
owned object passed through the poll loop, not a process-wide singleton, so
tests run against isolated instances.

State is rebuilt from the log tail on every process start instead of being
loaded from the previous snapshot. A persisted store would resurrect ghost
entries for strategies that no longer exist in the current log.
*/
package state
