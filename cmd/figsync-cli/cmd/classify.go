package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/application/commands"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "List nodes that need server-side rendering",
	Long: `Classify the cached document: boolean operations, instances of
missing components, and nodes with unsupported effects are substituted
with rendered bitmaps; nodes with export settings are rendered as
standalone exports.

Works entirely from the cached document; run fetch or sync first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		fetch, err := commands.NewFetchDocumentCommand(api, store, cfg.FileID, true).Execute(ctx)
		if err != nil {
			return err
		}

		result, err := commands.NewClassifyCommand(fetch.File, cfg.PageFilter()).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, cand := range result.Candidates {
			fmt.Printf("%s  %s\n", cand.NodeID, cand.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
