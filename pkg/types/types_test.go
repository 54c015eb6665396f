package types

import (
	"testing"
	"time"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo/12345", "Foo"},
		{"Foo", "Foo"},
		{"ORB/1", "ORB"},
		{"Foo/Bar", "Foo/Bar"},   // non-numeric suffix is part of the name
		{"Foo/12a", "Foo/12a"},   // mixed suffix stays
		{"Foo/", "Foo/"},         // trailing slash, nothing to strip
		{"A/B/99", "A/B"},        // only the last numeric segment goes
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	once := NormalizeName("ORB/12345")
	twice := NormalizeName(once)
	if once != twice {
		t.Errorf("normalization not idempotent: %q -> %q", once, twice)
	}
}

func TestToPublishRecordSentinel(t *testing.T) {
	now := time.Now()

	rec := StatusRecord{Name: "ORB", Enabled: true, UpdatedAt: now}
	p := rec.ToPublishRecord()

	if p.Instrument != Sentinel {
		t.Errorf("empty instrument should become %q, got %q", Sentinel, p.Instrument)
	}
	if p.Connection != Sentinel {
		t.Errorf("empty connection should become %q, got %q", Sentinel, p.Connection)
	}
	if p.StrategyName != "ORB" || !p.Enabled {
		t.Errorf("unexpected projection: %+v", p)
	}
}

func TestToPublishRecordKeepsValues(t *testing.T) {
	rec := StatusRecord{
		Name:       "ORB",
		Instrument: "MGC DEC25",
		Connection: "My Funded 1",
		UpdatedAt:  time.Now(),
	}
	p := rec.ToPublishRecord()

	if p.Instrument != "MGC DEC25" {
		t.Errorf("instrument mangled: %q", p.Instrument)
	}
	if p.Connection != "My Funded 1" {
		t.Errorf("connection mangled: %q", p.Connection)
	}
	if !p.UpdatedAt.Equal(rec.UpdatedAt.UTC()) {
		t.Errorf("updated_at not UTC-normalized: %v", p.UpdatedAt)
	}
}
