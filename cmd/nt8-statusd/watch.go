package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/metrics"
	"github.com/agentAD25/nt8-status-tools/pkg/monitor"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the status watcher until interrupted",
	Long: `Watch tails the newest NT8 log file, extracts strategy
enable/disable events and publishes state on every change. It runs until
SIGINT or SIGTERM.

Examples:
  # Run with the built-in defaults (local snapshot only)
  nt8-statusd watch

  # Run with a config file and remote publishing
  SUPABASE_SERVICE_ROLE_KEY=... nt8-statusd watch --config config.yml`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("config", "c", "config.yml", "path to YAML config")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})
	metrics.SetVersion(Version)

	if cfg.Metrics.Listen != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Logger.Error().Err(err).Str("addr", cfg.Metrics.Listen).Msg("metrics server failed")
			}
		}()
	}

	m, err := monitor.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return m.Run(ctx)
}
