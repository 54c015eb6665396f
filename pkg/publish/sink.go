package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// Sink receives the current state after a changed tick. Sinks are
// independent and order-independent; a failure in one never blocks another.
type Sink interface {
	Name() string

	// Publish delivers the full snapshot plus the records that changed this
	// tick. Sinks pick whichever view they need: the local file writes the
	// snapshot, the remote upsert sends the changed records.
	Publish(ctx context.Context, snap types.Snapshot, changed []types.StatusRecord) error
}

// BuildSnapshot assembles the snapshot document from an ordered record list.
func BuildSnapshot(records []types.StatusRecord, now time.Time) types.Snapshot {
	if records == nil {
		records = []types.StatusRecord{}
	}
	return types.Snapshot{
		UpdatedAt:  now.UTC(),
		Strategies: records,
	}
}

// contentHash identifies the publishable state of a record. UpdatedAt is
// excluded on purpose: two sends of the same state must hash equal so the
// cooldown ledger can recognize the repeat.
func contentHash(p types.PublishRecord) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%t|%s",
		p.StrategyName, p.Instrument, p.Enabled, p.Connection)))
	return hex.EncodeToString(sum[:])
}
