package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

func newDefault(t *testing.T, allow ...string) *Extractor {
	t.Helper()
	e, err := New(config.Patterns{}, allow)
	require.NoError(t, err)
	return e
}

func TestExtractCanonicalForms(t *testing.T) {
	e := newDefault(t)

	tests := []struct {
		name       string
		line       string
		action     types.Action
		strategy   string
		instrument string
		connection string
	}{
		{
			name:       "enabling with instance id and instrument",
			line:       "Enabling NinjaScript strategy 'ORB/1' MGC DEC25",
			action:     types.ActionEnable,
			strategy:   "ORB",
			instrument: "MGC DEC25",
		},
		{
			name:     "disabling with instance id",
			line:     "Disabling NinjaScript strategy 'ORB/1'",
			action:   types.ActionDisable,
			strategy: "ORB",
		},
		{
			name:       "enabled on connection",
			line:       "Strategy 'Foo' on MGC DEC25 enabled on connection My Funded 1",
			action:     types.ActionEnable,
			strategy:   "Foo",
			instrument: "MGC DEC25",
			connection: "My Funded 1",
		},
		{
			name:       "disabled via connection",
			line:       "Disabled strategy 'Bar' for MNQ DEC25 via Sim101",
			action:     types.ActionDisable,
			strategy:   "Bar",
			instrument: "MNQ DEC25",
			connection: "Sim101",
		},
		{
			name:       "month-year dash contract",
			line:       "Enabling NinjaScript strategy 'Swing/42' ES 03-26",
			action:     types.ActionEnable,
			strategy:   "Swing",
			instrument: "ES 03-26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := e.Extract(tt.line)
			require.True(t, ok, "line should match: %s", tt.line)
			assert.Equal(t, tt.action, ev.Action)
			assert.Equal(t, tt.strategy, ev.Name)
			assert.Equal(t, tt.instrument, ev.Instrument)
			assert.Equal(t, tt.connection, ev.Connection)
		})
	}
}

func TestExtractIgnoresUnrelatedLines(t *testing.T) {
	e := newDefault(t)

	for _, line := range []string{
		"",
		"2025-08-23 09:30:00 Connected to My Funded 1",
		"Order filled: BUY 1 MGC DEC25 @ 2650.2",
		"NinjaScript compiled successfully",
	} {
		_, ok := e.Extract(line)
		assert.False(t, ok, "line should not match: %q", line)
	}
}

func TestExtractInvalidInstrumentDropped(t *testing.T) {
	e := newDefault(t)

	// The fallback grabs a year-looking token; validation must discard it
	// rather than pollute the status key.
	ev, ok := e.Extract("Strategy Momo enabled since 2025")
	require.True(t, ok)
	assert.Equal(t, "Momo", ev.Name)
	assert.Equal(t, "", ev.Instrument)
}

func TestExtractAllowList(t *testing.T) {
	e := newDefault(t, "orb")

	_, ok := e.Extract("Enabling NinjaScript strategy 'Momo/7' AAPL")
	assert.False(t, ok, "line without allow-listed substring must be skipped")

	ev, ok := e.Extract("Enabling NinjaScript strategy 'ORB/1' MGC DEC25")
	require.True(t, ok, "allow-list match is case-insensitive")
	assert.Equal(t, "ORB", ev.Name)
}

func TestExtractIsPure(t *testing.T) {
	e := newDefault(t)
	line := "Enabling NinjaScript strategy 'ORB/1' MGC DEC25"

	first, ok1 := e.Extract(line)
	second, ok2 := e.Extract(line)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second, "same line must always yield the same result")
}

func TestExtractCustomPatterns(t *testing.T) {
	p := config.Patterns{
		Enabled:  []string{`(?i)\bstarted\s+bot\s+(?P<name>\w+)`},
		Disabled: []string{`(?i)\bstopped\s+bot\s+(?P<name>\w+)`},
	}
	e, err := New(p, nil)
	require.NoError(t, err)

	ev, ok := e.Extract("Started bot alpha")
	require.True(t, ok)
	assert.Equal(t, types.ActionEnable, ev.Action)
	assert.Equal(t, "alpha", ev.Name)

	// Default-only phrasing must not match once overridden.
	_, ok = e.Extract("Enabling NinjaScript strategy 'ORB/1'")
	assert.False(t, ok)
}

func TestExtractBadPatternRejected(t *testing.T) {
	_, err := New(config.Patterns{Enabled: []string{`(`}}, nil)
	assert.Error(t, err)
}
