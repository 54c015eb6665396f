package tailer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
)

// Tailer tracks a byte offset into the newest log file of a directory and
// returns newly appended complete lines on each Poll. Rotation and
// truncation reset the offset to the start of the new content.
type Tailer struct {
	logDir    string
	seedBytes int64
	logger    zerolog.Logger

	path    string      // currently watched file, "" before the first successful poll
	info    os.FileInfo // identity of the file as last polled
	offset  int64
	partial []byte // trailing bytes of an incomplete line
}

// New creates a Tailer over logDir. seedBytes bounds how much of the current
// file's tail is replayed on the first poll; 0 starts at the beginning.
func New(logDir string, seedBytes int64) *Tailer {
	return &Tailer{
		logDir:    logDir,
		seedBytes: seedBytes,
		logger:    log.WithComponent("tailer"),
	}
}

// CurrentPath returns the file currently being watched, or "" if none was
// found yet.
func (t *Tailer) CurrentPath() string {
	return t.path
}

// Poll returns all complete lines appended since the last call. A missing
// log directory or file is not an error; Poll returns no lines and the next
// call retries. The first successful poll seeds from the tail of the file.
func (t *Tailer) Poll() ([]string, error) {
	latest, err := newestLogFile(t.logDir)
	if err != nil || latest == "" {
		// Log not created yet, or directory briefly unavailable.
		return nil, nil
	}

	st, err := os.Stat(latest)
	if err != nil {
		return nil, nil
	}

	skipPartialStart := false
	switch {
	case t.path == "":
		// First poll: seed from the bounded tail of the current file.
		if t.seedBytes > 0 && st.Size() > t.seedBytes {
			t.offset = st.Size() - t.seedBytes
			skipPartialStart = true
		} else {
			t.offset = 0
		}
		t.logger.Info().Str("path", latest).Int64("offset", t.offset).Msg("watching log file")
	case latest != t.path:
		// Daily rotation: a newer file appeared under a different name.
		t.logger.Info().Str("old", t.path).Str("new", latest).Msg("log file rotated")
		metrics.RotationsDetected.Inc()
		t.reset()
	case !os.SameFile(t.info, st):
		// Same path, new file underneath it.
		t.logger.Info().Str("path", latest).Msg("log file replaced in place")
		metrics.RotationsDetected.Inc()
		t.reset()
	case st.Size() < t.offset:
		// File shrank: truncated or rewritten. Re-read from the start.
		t.logger.Info().Str("path", latest).Int64("size", st.Size()).Int64("offset", t.offset).Msg("log file truncated")
		metrics.RotationsDetected.Inc()
		t.reset()
	}

	t.path = latest
	t.info = st

	if st.Size() <= t.offset {
		return nil, nil
	}

	f, err := os.Open(latest)
	if err != nil {
		// Transient: locked or mid-rotation. Retry next tick.
		return nil, nil
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s to %d: %w", latest, t.offset, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", latest, err)
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	lines := splitLines(buf)
	if n := len(buf); n > 0 && buf[n-1] != '\n' {
		// Keep the incomplete trailing line for the next poll.
		t.partial = append([]byte(nil), lines[len(lines)-1]...)
		lines = lines[:len(lines)-1]
	} else {
		t.partial = nil
	}

	if skipPartialStart && len(lines) > 0 {
		// Seeding started mid-line; the first fragment is not a real line.
		lines = lines[1:]
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(l) > 0 {
			out = append(out, string(l))
		}
	}
	metrics.LinesRead.Add(float64(len(out)))
	return out, nil
}

func (t *Tailer) reset() {
	t.offset = 0
	t.partial = nil
}

// splitLines splits on '\n' and strips trailing '\r'. The final element is
// the bytes after the last newline (possibly empty).
func splitLines(b []byte) [][]byte {
	parts := bytes.Split(b, []byte{'\n'})
	for i, p := range parts {
		parts[i] = bytes.TrimSuffix(p, []byte{'\r'})
	}
	return parts
}

// newestLogFile returns the most recently modified log*.txt in dir, falling
// back to any log* entry, or "" when none exists.
func newestLogFile(dir string) (string, error) {
	for _, pattern := range []string{"log*.txt", "log*"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", err
		}
		best := ""
		var bestInfo os.FileInfo
		for _, m := range matches {
			st, err := os.Stat(m)
			if err != nil || st.IsDir() {
				continue
			}
			if bestInfo == nil || st.ModTime().After(bestInfo.ModTime()) {
				best, bestInfo = m, st
			}
		}
		if best != "" {
			return best, nil
		}
	}
	return "", nil
}
