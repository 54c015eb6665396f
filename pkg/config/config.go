package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Patterns carries the regex rule set for event extraction. Enabled and
// Disabled are ordered primary rules; Extractors hold per-field fallback
// rules keyed by field name (name, instrument, connection, account).
// An all-empty Patterns means "use the built-in defaults".
type Patterns struct {
	Enabled    []string            `yaml:"enabled"`
	Disabled   []string            `yaml:"disabled"`
	Extractors map[string][]string `yaml:"extractors"`
}

// IsZero reports whether no rules were configured.
func (p Patterns) IsZero() bool {
	return len(p.Enabled) == 0 && len(p.Disabled) == 0 && len(p.Extractors) == 0
}

type WatchConfig struct {
	LogDir          string        `yaml:"log_dir"`          // directory holding log*.txt
	PollInterval    time.Duration `yaml:"poll_interval"`    // tick interval
	SeedBytes       int64         `yaml:"seed_bytes"`       // tail bytes replayed at startup
	MatchStrategies []string      `yaml:"match_strategies"` // allow-list of substrings, empty = all
	Patterns        Patterns      `yaml:"patterns"`         // optional rule override
}

type PublishConfig struct {
	StatusJSONPath string        `yaml:"status_json_path"` // local snapshot target
	Cooldown       time.Duration `yaml:"cooldown"`         // min interval between identical upserts per key, 0 disables
	JournalPath    string        `yaml:"journal_path"`     // bbolt publish ledger, empty disables
}

type SupabaseConfig struct {
	URL            string        `yaml:"url"`
	ServiceRoleKey string        `yaml:"service_role_key"`
	AnonKey        string        `yaml:"anon_key"`
	Table          string        `yaml:"table"`
	Timeout        time.Duration `yaml:"timeout"`
}

// APIKey returns the key to authenticate with, preferring the service role key.
func (s SupabaseConfig) APIKey() string {
	if s.ServiceRoleKey != "" {
		return s.ServiceRoleKey
	}
	return s.AnonKey
}

// Configured reports whether the remote sink has enough to run.
func (s SupabaseConfig) Configured() bool {
	return s.URL != "" && s.APIKey() != ""
}

type EmailConfig struct {
	Mode     string        `yaml:"mode"` // "starttls" or "ssl"
	SMTPHost string        `yaml:"smtp_host"`
	SMTPPort int           `yaml:"smtp_port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	FromAddr string        `yaml:"from_addr"`
	ToAddrs  []string      `yaml:"to_addrs"`
	OnChange bool          `yaml:"on_change"`
	Cooldown time.Duration `yaml:"cooldown"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9154", empty disables the endpoint
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Watch    WatchConfig    `yaml:"watch"`
	Publish  PublishConfig  `yaml:"publish"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Email    EmailConfig    `yaml:"email"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Default returns the configuration used when no file is present. The log
// directory points at the standard NinjaTrader 8 location under the user's
// home directory.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Log: LogConfig{Level: "info"},
		Watch: WatchConfig{
			LogDir:       filepath.Join(home, "Documents", "NinjaTrader 8", "log"),
			PollInterval: time.Second,
			SeedBytes:    2 << 20,
		},
		Publish: PublishConfig{
			StatusJSONPath: "nt8_strategy_status.json",
			Cooldown:       time.Minute,
			JournalPath:    "nt8_status.db",
		},
		Supabase: SupabaseConfig{
			Table:   "strategy_status",
			Timeout: 10 * time.Second,
		},
		Email: EmailConfig{
			Mode:     "starttls",
			SMTPPort: 587,
			Cooldown: time.Minute,
		},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. A missing file is not an error: the defaults are
// returned so the watcher can run in local-only mode out of the box.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Environment always wins over the file so credentials can stay out of it.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		cfg.Supabase.ServiceRoleKey = v
	}
	if v := os.Getenv("SUPABASE_ANON_KEY"); v != "" {
		cfg.Supabase.AnonKey = v
	}
}

// Validate checks the fields the watcher cannot run without. Remote sink and
// email settings are intentionally not required here; missing credentials
// only disable those features at startup.
func (c Config) Validate() error {
	if c.Watch.LogDir == "" {
		return errors.New("watch.log_dir must be set")
	}
	if c.Watch.PollInterval <= 0 {
		return errors.New("watch.poll_interval must be positive")
	}
	if c.Publish.StatusJSONPath == "" {
		return errors.New("publish.status_json_path must be set")
	}
	if c.Watch.SeedBytes < 0 {
		return errors.New("watch.seed_bytes must not be negative")
	}
	return nil
}
