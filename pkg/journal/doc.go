/*
Package journal persists the remote-publish ledger in a bbolt database.

One bucket, one entry per status key: the hash of the last payload sent and
when it was sent. The publisher consults it to decide whether an upsert is a
real state change (always sent) or a repeat (sent only after the cooldown
elapses). Keeping the ledger on disk means a restart does not re-send every
unchanged row to the sink.

The journal is deliberately not a state checkpoint: the status store is
always rebuilt from the log tail.
*/
package journal
