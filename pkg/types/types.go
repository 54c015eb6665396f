package types

import (
	"strings"
	"time"
)

// Action is the state transition carried by a log event.
type Action string

const (
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

// Event is one state change extracted from a single log line.
// Instrument, Connection and Account are best-effort and may be empty.
type Event struct {
	Action     Action
	Name       string
	Instrument string
	Connection string
	Account    string
	ObservedAt time.Time
}

// Key returns the identity of the strategy instance this event targets.
func (e Event) Key() StatusKey {
	return StatusKey{Name: e.Name, Instrument: e.Instrument}
}

// StatusKey uniquely identifies one tracked strategy instance.
// Instrument is the empty string when the log line carried none.
type StatusKey struct {
	Name       string
	Instrument string
}

// StatusRecord is the latest known state for one StatusKey.
// Optional fields are empty strings, never absent.
type StatusRecord struct {
	Name       string    `json:"name"`
	Instrument string    `json:"instrument"`
	Enabled    bool      `json:"enabled"`
	Connection string    `json:"connection"`
	Account    string    `json:"account"`
	UpdatedAt  time.Time `json:"-"`
}

// Key returns the record's identity.
func (r StatusRecord) Key() StatusKey {
	return StatusKey{Name: r.Name, Instrument: r.Instrument}
}

// Snapshot is the full store contents as written to the local status file.
type Snapshot struct {
	UpdatedAt  time.Time      `json:"updated_at"`
	Strategies []StatusRecord `json:"strategies"`
}

// Sentinel replaces empty optional fields in a PublishRecord.
const Sentinel = "EMPTY"

// PublishRecord is the sink-facing projection of a StatusRecord. Empty
// optional fields are replaced with Sentinel so the remote conflict key
// (strategy_name, instrument) never degenerates to an ambiguous empty value.
type PublishRecord struct {
	StrategyName string    `json:"strategy_name"`
	Instrument   string    `json:"instrument"`
	Enabled      bool      `json:"enabled"`
	Connection   string    `json:"connection"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToPublishRecord projects a StatusRecord for the remote sink.
func (r StatusRecord) ToPublishRecord() PublishRecord {
	p := PublishRecord{
		StrategyName: r.Name,
		Instrument:   r.Instrument,
		Enabled:      r.Enabled,
		Connection:   r.Connection,
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if p.Instrument == "" {
		p.Instrument = Sentinel
	}
	if p.Connection == "" {
		p.Connection = Sentinel
	}
	return p
}

// NormalizeName strips a trailing "/<digits>" instance-id suffix from a raw
// strategy name. Names without the suffix pass through unchanged, so the
// operation is idempotent.
func NormalizeName(raw string) string {
	i := strings.LastIndexByte(raw, '/')
	if i < 0 || i == len(raw)-1 {
		return raw
	}
	for _, c := range raw[i+1:] {
		if c < '0' || c > '9' {
			return raw
		}
	}
	return raw[:i]
}
