package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/types"
)

func TestEnabled(t *testing.T) {
	full := config.EmailConfig{
		OnChange: true,
		SMTPHost: "smtp.example.com",
		FromAddr: "watcher@example.com",
		ToAddrs:  []string{"ops@example.com"},
	}

	tests := []struct {
		name   string
		mutate func(*config.EmailConfig)
		want   bool
	}{
		{"fully configured", func(c *config.EmailConfig) {}, true},
		{"not requested", func(c *config.EmailConfig) { c.OnChange = false }, false},
		{"no smtp host", func(c *config.EmailConfig) { c.SMTPHost = "" }, false},
		{"no sender", func(c *config.EmailConfig) { c.FromAddr = "" }, false},
		{"no recipients", func(c *config.EmailConfig) { c.ToAddrs = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			assert.Equal(t, tt.want, NewEmailer(cfg).Enabled())
		})
	}
}

func TestNotifyDisabledIsNoOp(t *testing.T) {
	e := NewEmailer(config.EmailConfig{})

	// Must return without attempting any network I/O.
	e.Notify(types.StatusRecord{Name: "ORB", Enabled: true}, "log.txt")
	assert.True(t, e.lastSent.IsZero())
}
