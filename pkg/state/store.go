package state

import (
	"sort"
	"strings"

	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

// Store holds the latest known status per (name, instrument) key. It is
// owned and mutated by the poll loop only; no internal locking. Records are
// never deleted during a run: a disabled strategy stays present with
// enabled=false.
type Store struct {
	records map[types.StatusKey]*types.StatusRecord
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[types.StatusKey]*types.StatusRecord)}
}

// Len returns the number of tracked strategy instances.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns a copy of the record for key, if present.
func (s *Store) Get(key types.StatusKey) (types.StatusRecord, bool) {
	rec, ok := s.records[key]
	if !ok {
		return types.StatusRecord{}, false
	}
	return *rec, true
}

// Apply folds one event into the store with last-write-wins semantics and
// reports whether any record actually changed. UpdatedAt only advances on a
// genuine change, so applying the same event twice is idempotent.
//
// Events without an instrument update every record carrying the same name:
// NT8 logs the bare "Disabling NinjaScript strategy 'Foo/1'" form without an
// instrument, and it refers to the instance enabled earlier with one.
// Conversely, an instrumented event upgrades an earlier instrument-less
// record in place rather than forking a second key.
func (s *Store) Apply(e types.Event) bool {
	key := e.Key()

	if rec, ok := s.records[key]; ok {
		return update(rec, e)
	}

	if e.Instrument == "" {
		changed, matched := false, false
		for k, rec := range s.records {
			if k.Name == e.Name {
				matched = true
				if update(rec, e) {
					changed = true
				}
			}
		}
		if matched {
			return changed
		}
	} else {
		bare := types.StatusKey{Name: e.Name}
		if rec, ok := s.records[bare]; ok {
			delete(s.records, bare)
			rec.Instrument = e.Instrument
			s.records[key] = rec
			update(rec, e)
			rec.UpdatedAt = e.ObservedAt
			return true
		}
	}

	rec := &types.StatusRecord{
		Name:       e.Name,
		Instrument: e.Instrument,
		Enabled:    e.Action == types.ActionEnable,
		Connection: e.Connection,
		Account:    e.Account,
		UpdatedAt:  e.ObservedAt,
	}
	s.records[key] = rec
	return true
}

// update overwrites enabled state and, when the event supplies them,
// connection and account. A missing connection in a later event does not
// erase a previously known one.
func update(rec *types.StatusRecord, e types.Event) bool {
	enabled := e.Action == types.ActionEnable
	changed := rec.Enabled != enabled ||
		(e.Connection != "" && rec.Connection != e.Connection) ||
		(e.Account != "" && rec.Account != e.Account)
	if !changed {
		return false
	}

	rec.Enabled = enabled
	if e.Connection != "" {
		rec.Connection = e.Connection
	}
	if e.Account != "" {
		rec.Account = e.Account
	}
	rec.UpdatedAt = e.ObservedAt
	return true
}

// Snapshot returns copies of all records ordered by name then instrument,
// case-insensitive. The order is not semantically significant but is stable
// within a call, which keeps snapshot files diffable and tests simple.
func (s *Store) Snapshot() []types.StatusRecord {
	out := make([]types.StatusRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(out[i].Instrument) < strings.ToLower(out[j].Instrument)
	})
	return out
}
