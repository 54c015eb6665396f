package publish

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

func TestSnapshotWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	sink := NewSnapshot(path)

	now := time.Date(2025, 8, 23, 9, 30, 0, 0, time.UTC)
	records := []types.StatusRecord{
		{Name: "ORB", Instrument: "MGC DEC25", Enabled: false, Connection: "My Funded 1", UpdatedAt: now},
	}
	snap := BuildSnapshot(records, now)

	require.NoError(t, sink.Publish(context.Background(), snap, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Strategies, 1)
	assert.Equal(t, "ORB", got.Strategies[0].Name)
	assert.Equal(t, "MGC DEC25", got.Strategies[0].Instrument)
	assert.False(t, got.Strategies[0].Enabled)
	assert.Equal(t, "My Funded 1", got.Strategies[0].Connection)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive a successful write")
}

func TestSnapshotEmptyStateIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	sink := NewSnapshot(path)

	snap := BuildSnapshot(nil, time.Now())
	require.NoError(t, sink.Publish(context.Background(), snap, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &got))
	assert.JSONEq(t, "[]", string(got["strategies"]), "empty state serializes as [], not null")
}

func TestSnapshotOverwriteKeepsFileWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	sink := NewSnapshot(path)

	long := make([]types.StatusRecord, 50)
	for i := range long {
		long[i] = types.StatusRecord{Name: "Strategy", Instrument: "MGC DEC25", Enabled: true}
	}
	require.NoError(t, sink.Publish(context.Background(), BuildSnapshot(long, time.Now()), nil))

	short := []types.StatusRecord{{Name: "ORB", Enabled: true}}
	require.NoError(t, sink.Publish(context.Background(), BuildSnapshot(short, time.Now()), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// A shorter write after a longer one must fully replace the file.
	var got types.Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Strategies, 1)
}

func TestSnapshotWriteFailureReported(t *testing.T) {
	sink := NewSnapshot(filepath.Join(t.TempDir(), "missing", "status.json"))

	err := sink.Publish(context.Background(), BuildSnapshot(nil, time.Now()), nil)
	assert.Error(t, err, "an unwritable snapshot path is a hard failure")
}

func TestContentHashIgnoresUpdatedAt(t *testing.T) {
	a := types.StatusRecord{Name: "ORB", Instrument: "MGC DEC25", Enabled: true, UpdatedAt: time.Now()}
	b := a
	b.UpdatedAt = a.UpdatedAt.Add(time.Hour)

	assert.Equal(t, contentHash(a.ToPublishRecord()), contentHash(b.ToPublishRecord()),
		"timestamp alone must not change the content identity")

	b.Enabled = false
	assert.NotEqual(t, contentHash(a.ToPublishRecord()), contentHash(b.ToPublishRecord()))
}
