package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/extract"
	"github.com/agentAD25/nt8-status-tools/pkg/journal"
	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
	"github.com/agentAD25/nt8-status-tools/pkg/notify"
	"github.com/agentAD25/nt8-status-tools/pkg/publish"
	"github.com/agentAD25/nt8-status-tools/pkg/state"
	"github.com/agentAD25/nt8-status-tools/pkg/tailer"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// notifier is the change-notification surface the monitor needs from
// pkg/notify.
type notifier interface {
	Enabled() bool
	Notify(rec types.StatusRecord, logPath string)
}

// Monitor drives the poll pipeline: tail the log, extract events, fold them
// into the store, publish on change. Everything runs on one goroutine, so
// ticks never overlap and events apply in exact log order.
type Monitor struct {
	cfg       config.Config
	tailer    *tailer.Tailer
	extractor *extract.Extractor
	store     *state.Store
	local     *publish.SnapshotSink
	remote    publish.Sink // nil when the remote sink is not configured
	emailer   notifier
	jnl       *journal.Journal
	logger    zerolog.Logger

	lastChanged types.StatusKey
}

// New wires a Monitor from config. Remote-sink and journal problems
// degrade to local-only operation and are surfaced once, here, not on
// every tick.
func New(cfg config.Config) (*Monitor, error) {
	extractor, err := extract.New(cfg.Watch.Patterns, cfg.Watch.MatchStrategies)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}

	m := &Monitor{
		cfg:       cfg,
		tailer:    tailer.New(cfg.Watch.LogDir, cfg.Watch.SeedBytes),
		extractor: extractor,
		store:     state.New(),
		local:     publish.NewSnapshot(cfg.Publish.StatusJSONPath),
		emailer:   notify.NewEmailer(cfg.Email),
		logger:    log.WithRunID(uuid.NewString()).With().Str("component", "monitor").Logger(),
	}

	if cfg.Supabase.Configured() {
		if cfg.Publish.JournalPath != "" {
			jnl, err := journal.Open(cfg.Publish.JournalPath)
			if err != nil {
				m.logger.Warn().Err(err).Msg("publish journal unavailable, cooldown disabled")
			} else {
				m.jnl = jnl
			}
		}
		m.remote = publish.NewSupabase(cfg.Supabase, m.jnl, cfg.Publish.Cooldown)
	} else {
		m.logger.Warn().Msg("supabase url or api key not configured, remote publishing disabled")
	}

	return m, nil
}

// Run executes the poll loop until ctx is cancelled. The only error it
// returns is a failed local snapshot write, the one unrecoverable
// condition; everything else is logged and retried.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.close()

	m.logger.Info().
		Str("log_dir", m.cfg.Watch.LogDir).
		Str("snapshot", m.cfg.Publish.StatusJSONPath).
		Dur("interval", m.cfg.Watch.PollInterval).
		Bool("remote", m.remote != nil).
		Msg("watcher starting")

	// Seed from the log tail and write the initial snapshot, which is valid
	// (and required) even when empty.
	if err := m.tick(ctx, true); err != nil {
		return err
	}
	m.logger.Info().Int("strategies", m.store.Len()).Msg("initial snapshot written")
	metrics.UpdateComponent("snapshot", true, "")

	ticker := time.NewTicker(m.cfg.Watch.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("watcher stopping")
			return nil
		case <-ticker.C:
			if err := m.tick(ctx, false); err != nil {
				return err
			}
		}
	}
}

func (m *Monitor) close() {
	if m.jnl != nil {
		if err := m.jnl.Close(); err != nil {
			m.logger.Warn().Err(err).Msg("journal close failed")
		}
	}
}

// tick runs one Reading -> Extracting -> Applying -> Publishing pass. All
// lines read are extracted and applied before the next read can happen
// because ticks share one goroutine.
func (m *Monitor) tick(ctx context.Context, force bool) error {
	start := time.Now()
	defer func() {
		metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()

	lines, err := m.tailer.Poll()
	if err != nil {
		// Transient read problem; state is intact, next tick retries.
		m.logger.Warn().Err(err).Msg("log poll failed")
		return nil
	}
	metrics.UpdateComponent("tailer", m.tailer.CurrentPath() != "", "no log file found")

	changed := false
	for _, line := range lines {
		ev, ok := m.extractor.Extract(line)
		if !ok {
			metrics.ExtractionMisses.Inc()
			continue
		}
		metrics.EventsExtracted.WithLabelValues(string(ev.Action)).Inc()
		ev.ObservedAt = time.Now().UTC()

		if m.store.Apply(ev) {
			changed = true
			m.lastChanged = ev.Key()
			m.logger.Info().
				Str("name", ev.Name).
				Str("instrument", ev.Instrument).
				Str("action", string(ev.Action)).
				Str("connection", ev.Connection).
				Msg("strategy state changed")
		}
	}
	metrics.StrategiesTracked.Set(float64(m.store.Len()))

	if !changed && !force {
		return nil
	}
	// A forced tick is the seed from the log tail: state reconstructed there
	// is old news, not a live change, so it never triggers an email.
	return m.publishAll(ctx, changed && !force)
}

// publishAll writes the local snapshot and pushes the current state to the
// remote sink. The remote side receives the full record list; the journal
// reduces that to genuinely new payloads.
func (m *Monitor) publishAll(ctx context.Context, notifyChange bool) error {
	records := m.store.Snapshot()
	snap := publish.BuildSnapshot(records, time.Now())

	if err := m.local.Publish(ctx, snap, records); err != nil {
		// The snapshot file is the one output the watcher cannot run
		// without.
		metrics.UpdateComponent("snapshot", false, err.Error())
		return fmt.Errorf("write local snapshot: %w", err)
	}
	metrics.UpdateComponent("snapshot", true, "")

	if m.remote != nil {
		if err := m.remote.Publish(ctx, snap, records); err != nil {
			m.logger.Warn().Err(err).Msg("remote publish failed, will retry on next change")
		}
	}

	if notifyChange && m.emailer.Enabled() {
		if rec, ok := m.findChanged(records, m.lastChanged); ok {
			m.emailer.Notify(rec, m.tailer.CurrentPath())
		}
	}
	return nil
}

// findChanged resolves the record behind the last applied event. An exact key
// match wins so two instruments of the same strategy changing in one tick
// cannot mix each other up; instrument-less events fold into an instrumented
// record, so those fall back to the name.
func (m *Monitor) findChanged(records []types.StatusRecord, key types.StatusKey) (types.StatusRecord, bool) {
	for _, rec := range records {
		if rec.Key() == key {
			return rec, true
		}
	}
	for _, rec := range records {
		if rec.Name == key.Name {
			return rec, true
		}
	}
	return types.StatusRecord{}, false
}

// Snapshot exposes the current store contents, for the one-shot command.
func (m *Monitor) Snapshot() []types.StatusRecord {
	return m.store.Snapshot()
}

// RunOnce performs a single seed-and-publish pass and returns. Used by the
// snapshot subcommand.
func (m *Monitor) RunOnce(ctx context.Context) error {
	defer m.close()
	return m.tick(ctx, true)
}
