package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentAD25/nt8-status-tools/pkg/config"
	"github.com/agentAD25/nt8-status-tools/pkg/log"
	"github.com/agentAD25/nt8-status-tools/pkg/monitor"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Rebuild state from the log tail once and exit",
	Long: `Snapshot performs a single pass: seed state from the tail of the
current log file, write the local snapshot (and remote upserts if
configured), then exit. Useful from cron or before starting a dashboard.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringP("config", "c", "config.yml", "path to YAML config")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})

	m, err := monitor.New(cfg)
	if err != nil {
		return err
	}

	if err := m.RunOnce(context.Background()); err != nil {
		return err
	}

	fmt.Printf("Snapshot written to %s (%d strategies)\n",
		cfg.Publish.StatusJSONPath, len(m.Snapshot()))
	return nil
}
