package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/journal"
	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// SupabaseSink upserts changed records into a Supabase table through the
// PostgREST endpoint. The conflict key is (strategy_name, instrument) with
// overwrite-on-conflict, so repeating a send is safe. Failures are returned
// for logging and the records are retried on the next change.
type SupabaseSink struct {
	endpoint string
	apiKey   string
	client   *http.Client
	journal  *journal.Journal // nil disables the cooldown ledger
	cooldown time.Duration
	logger   zerolog.Logger
}

// NewSupabase builds the remote sink. Callers should check
// cfg.Configured() first; a sink without credentials is not constructed.
// jnl may be nil, which disables the cooldown policy.
func NewSupabase(cfg config.SupabaseConfig, jnl *journal.Journal, cooldown time.Duration) *SupabaseSink {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseSink{
		endpoint: fmt.Sprintf("%s/rest/v1/%s?on_conflict=strategy_name,instrument",
			strings.TrimRight(cfg.URL, "/"), cfg.Table),
		apiKey:   cfg.APIKey(),
		client:   &http.Client{Timeout: timeout},
		journal:  jnl,
		cooldown: cooldown,
		logger:   log.WithComponent("supabase"),
	}
}

func (s *SupabaseSink) Name() string { return "supabase" }

// Publish upserts every changed record. One failing record does not stop
// the rest; all failures come back joined.
func (s *SupabaseSink) Publish(ctx context.Context, snap types.Snapshot, changed []types.StatusRecord) error {
	var errs []error
	for _, rec := range changed {
		if err := s.upsert(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("upsert %s/%s: %w", rec.Name, rec.Instrument, err))
		}
	}
	return errors.Join(errs...)
}

func (s *SupabaseSink) upsert(ctx context.Context, rec types.StatusRecord) error {
	p := rec.ToPublishRecord()
	hash := contentHash(p)
	now := time.Now()

	if s.journal != nil {
		ok, err := s.journal.ShouldPublish(rec.Key(), hash, now, s.cooldown)
		if err != nil {
			// A broken ledger must not block publication.
			s.logger.Warn().Err(err).Msg("journal lookup failed, publishing anyway")
		} else if !ok {
			metrics.UpsertsSkipped.Inc()
			s.logger.Debug().Str("name", rec.Name).Str("instrument", rec.Instrument).Msg("upsert suppressed by cooldown")
			return nil
		}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.UpsertErrors.Inc()
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		metrics.UpsertErrors.Inc()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	metrics.Upserts.Inc()
	if s.journal != nil {
		if err := s.journal.MarkPublished(rec.Key(), hash, now); err != nil {
			s.logger.Warn().Err(err).Msg("journal update failed")
		}
	}
	return nil
}
