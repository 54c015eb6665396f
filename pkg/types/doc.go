/*
Package types defines the shared data model for the strategy status watcher.

The core identity is StatusKey: a (name, instrument) pair. Events extracted
from log lines are applied to StatusRecords keyed by it, and records are
projected to PublishRecords for the remote sink, where empty optional fields
become the Sentinel value.

These are plain data types with no behavior beyond key derivation and
normalization, so every other package can depend on them without cycles.
*/
package types
