package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/application/commands"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the remote document and refresh the cache",
	Long: `Fetch the document graph from the remote API and overwrite the local
cache. No assets are downloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := store.EnsureLayout(); err != nil {
			return err
		}

		fetchCmd := commands.NewFetchDocumentCommand(api, store, cfg.FileID, false)
		result, err := fetchCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
