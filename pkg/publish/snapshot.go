package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// SnapshotSink writes the full state to a local JSON file via atomic
// replace. A reader polling the file sees either the old content or the new,
// never a partial write. An empty snapshot is valid and is written on
// startup before any event arrives.
type SnapshotSink struct {
	path   string
	logger zerolog.Logger
}

// NewSnapshot creates a snapshot sink targeting path.
func NewSnapshot(path string) *SnapshotSink {
	return &SnapshotSink{
		path:   path,
		logger: log.WithComponent("snapshot"),
	}
}

func (s *SnapshotSink) Name() string { return "snapshot" }

// Publish writes snap to the target path. The temp file lives in the same
// directory so the final rename stays on one filesystem.
func (s *SnapshotSink) Publish(ctx context.Context, snap types.Snapshot, changed []types.StatusRecord) error {
	if err := s.write(snap); err != nil {
		metrics.SnapshotWriteErrors.Inc()
		return err
	}
	metrics.SnapshotWrites.Inc()
	s.logger.Debug().Int("strategies", len(snap.Strategies)).Str("path", s.path).Msg("snapshot written")
	return nil
}

func (s *SnapshotSink) write(snap types.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync snapshot temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
