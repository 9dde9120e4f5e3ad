package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/application/commands"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete placeholder assets",
	Long: `Delete every placeholder from the store. The slots become absent,
so the next sync re-downloads them; use this to clear gray stand-ins
before handing the asset folder to something that renders it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanCmd := commands.NewCleanPlaceholdersCommand(store, logger)
		result, err := cleanCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
