package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/application/commands"
)

var syncUseCache bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the full sync pipeline",
	Long: `Fetch the remote document, classify which nodes need server-side
rendering, download missing bitmap fills and rendered images, and seed
placeholders for anything that failed so the next run retries it.

Examples:
  figsync-cli sync
  figsync-cli sync --cached`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		syncCmd := commands.NewSyncCommand(api, store, logger, cfg, nil, syncUseCache)
		report, err := syncCmd.Execute(context.Background())
		for _, phase := range report.Phases {
			if phase.Err != nil {
				fmt.Printf("%-9s  failed: %v\n", phase.Phase, phase.Err)
			} else {
				fmt.Printf("%-9s  %s\n", phase.Phase, phase.Message)
			}
		}
		if report.Downloads != nil {
			for _, f := range report.Downloads.Failed() {
				fmt.Printf("failed: %s (%v)\n", f.Item.Dest, f.Err)
			}
		}
		return err
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncUseCache, "cached", false, "use the cached document instead of fetching")
	rootCmd.AddCommand(syncCmd)
}
