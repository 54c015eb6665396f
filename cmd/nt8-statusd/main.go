package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nt8-statusd",
	Short: "NT8 strategy status watcher",
	Long: `nt8-statusd tracks the enable/disable state of NinjaTrader 8
strategies by tailing the NT8 log file, and publishes a deduplicated
snapshot of current state to a local JSON file and a Supabase table.

The local snapshot is always written; the remote sink is optional and
activates when Supabase credentials are configured.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"nt8-statusd version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))
}
