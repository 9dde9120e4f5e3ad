package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/application/commands"
)

var statusVerbose bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local asset state against the cached document",
	Long: `Classify every asset the cached document requires as valid,
placeholder, or absent. Placeholder and absent slots enter the next
sync's download plan.

Works entirely offline; run fetch or sync first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		fetch, err := commands.NewFetchDocumentCommand(api, store, cfg.FileID, true).Execute(ctx)
		if err != nil {
			return err
		}

		result, err := commands.NewStatusCommand(store, fetch.File, cfg.PageFilter()).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		if statusVerbose {
			for _, path := range result.NeedsDownload {
				fmt.Printf("needs download: %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "list every path that needs downloading")
	rootCmd.AddCommand(statusCmd)
}
