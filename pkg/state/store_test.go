package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

func at(sec int) time.Time {
	return time.Date(2025, 8, 23, 9, 30, sec, 0, time.UTC)
}

func TestApplyCreateThenUpdate(t *testing.T) {
	s := New()

	changed := s.Apply(types.Event{
		Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25",
		Connection: "My Funded 1", ObservedAt: at(0),
	})
	require.True(t, changed)
	require.Equal(t, 1, s.Len())

	rec, ok := s.Get(types.StatusKey{Name: "ORB", Instrument: "MGC DEC25"})
	require.True(t, ok)
	assert.True(t, rec.Enabled)
	assert.Equal(t, "My Funded 1", rec.Connection)
	assert.Equal(t, at(0), rec.UpdatedAt)

	changed = s.Apply(types.Event{
		Action: types.ActionDisable, Name: "ORB", Instrument: "MGC DEC25",
		ObservedAt: at(5),
	})
	require.True(t, changed)
	require.Equal(t, 1, s.Len(), "same key must not fork a second record")

	rec, _ = s.Get(types.StatusKey{Name: "ORB", Instrument: "MGC DEC25"})
	assert.False(t, rec.Enabled)
	assert.Equal(t, "My Funded 1", rec.Connection, "missing connection must not erase the known one")
	assert.Equal(t, at(5), rec.UpdatedAt)
}

func TestApplyIdempotent(t *testing.T) {
	s := New()
	ev := types.Event{
		Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25",
		ObservedAt: at(0),
	}
	require.True(t, s.Apply(ev))

	ev.ObservedAt = at(10)
	assert.False(t, s.Apply(ev), "re-applying the same state is not a change")

	rec, _ := s.Get(types.StatusKey{Name: "ORB", Instrument: "MGC DEC25"})
	assert.Equal(t, at(0), rec.UpdatedAt, "UpdatedAt only advances on a genuine change")
}

func TestApplyInstrumentlessCoalesces(t *testing.T) {
	s := New()
	s.Apply(types.Event{Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25", ObservedAt: at(0)})
	s.Apply(types.Event{Action: types.ActionEnable, Name: "ORB", Instrument: "MNQ DEC25", ObservedAt: at(1)})

	// Bare disable refers to the instances enabled above, not a new key.
	changed := s.Apply(types.Event{Action: types.ActionDisable, Name: "ORB", ObservedAt: at(2)})
	require.True(t, changed)
	require.Equal(t, 2, s.Len())

	for _, rec := range s.Snapshot() {
		assert.False(t, rec.Enabled, "all ORB instances should be disabled")
		assert.Equal(t, at(2), rec.UpdatedAt)
	}
}

func TestApplyBareKeyUpgradedByInstrument(t *testing.T) {
	s := New()
	s.Apply(types.Event{Action: types.ActionEnable, Name: "ORB", ObservedAt: at(0)})
	require.Equal(t, 1, s.Len())

	changed := s.Apply(types.Event{
		Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25",
		ObservedAt: at(1),
	})
	require.True(t, changed)
	require.Equal(t, 1, s.Len(), "instrumented event upgrades the bare record in place")

	_, ok := s.Get(types.StatusKey{Name: "ORB"})
	assert.False(t, ok, "bare key must be gone")

	rec, ok := s.Get(types.StatusKey{Name: "ORB", Instrument: "MGC DEC25"})
	require.True(t, ok)
	assert.True(t, rec.Enabled)
	assert.Equal(t, at(1), rec.UpdatedAt)
}

func TestApplyDistinctInstrumentsAreDistinctKeys(t *testing.T) {
	s := New()
	s.Apply(types.Event{Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25", ObservedAt: at(0)})
	s.Apply(types.Event{Action: types.ActionDisable, Name: "ORB", Instrument: "MNQ DEC25", ObservedAt: at(1)})

	require.Equal(t, 2, s.Len())
	gc, _ := s.Get(types.StatusKey{Name: "ORB", Instrument: "MGC DEC25"})
	nq, _ := s.Get(types.StatusKey{Name: "ORB", Instrument: "MNQ DEC25"})
	assert.True(t, gc.Enabled)
	assert.False(t, nq.Enabled)
}

func TestDisabledRecordsStayPresent(t *testing.T) {
	s := New()
	s.Apply(types.Event{Action: types.ActionEnable, Name: "ORB", Instrument: "MGC DEC25", ObservedAt: at(0)})
	s.Apply(types.Event{Action: types.ActionDisable, Name: "ORB", Instrument: "MGC DEC25", ObservedAt: at(1)})

	assert.Equal(t, 1, s.Len(), "disable flips the flag, it never removes the record")
}

func TestSnapshotOrdering(t *testing.T) {
	s := New()
	s.Apply(types.Event{Action: types.ActionEnable, Name: "zeta", ObservedAt: at(0)})
	s.Apply(types.Event{Action: types.ActionEnable, Name: "Alpha", Instrument: "MNQ DEC25", ObservedAt: at(1)})
	s.Apply(types.Event{Action: types.ActionEnable, Name: "alpha", Instrument: "MGC DEC25", ObservedAt: at(2)})

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "MGC DEC25", snap[0].Instrument)
	assert.Equal(t, "MNQ DEC25", snap[1].Instrument)
	assert.Equal(t, "zeta", snap[2].Name)

	// Snapshot returns copies; mutating them must not leak into the store.
	snap[2].Enabled = false
	rec, _ := s.Get(types.StatusKey{Name: "zeta"})
	assert.True(t, rec.Enabled)
}
