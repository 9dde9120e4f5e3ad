package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"figsync/internal/adapters/sqlite"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

var assetsCmd = &cobra.Command{
	Use:   "assets [list|search|path]",
	Short: "Query synced assets",
	Long: `Query the asset index: list assets by kind, search by name, or
resolve the deterministic local path for a remote identifier.

Examples:
  figsync-cli assets list
  figsync-cli assets list fill
  figsync-cli assets search hero
  figsync-cli assets path fill 1a2b3c`,
}

// withIndex opens the index, rebuilding it when stale, and hands it to fn.
func withIndex(fn func(ports.AssetIndex) error) error {
	index := sqlite.NewIndex()
	if err := index.Open(store.Root()); err != nil {
		return err
	}
	defer index.Close()

	if index.NeedsFullRebuild() {
		if _, err := index.SyncFull(store); err != nil {
			return fmt.Errorf("rebuild asset index: %w", err)
		}
	}
	return fn(index)
}

func printAssets(assets []domain.IndexedAsset) {
	if len(assets) == 0 {
		fmt.Println("No assets")
		return
	}
	for _, a := range assets {
		fmt.Printf("%-9s  %s\n", a.Kind, a.Path)
	}
}

var assetsListCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List synced assets, optionally by kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := ""
		if len(args) == 1 {
			kind = args[0]
		}
		return withIndex(func(index ports.AssetIndex) error {
			assets, err := index.List(kind)
			if err != nil {
				return err
			}
			printAssets(assets)
			return nil
		})
	},
}

var assetsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search synced assets by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withIndex(func(index ports.AssetIndex) error {
			assets, err := index.Search(args[0])
			if err != nil {
				return err
			}
			printAssets(assets)
			return nil
		})
	},
}

var assetsPathCmd = &cobra.Command{
	Use:   "path <fill|rendered> <id>",
	Short: "Print the local path for a remote identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "fill":
			fmt.Println(store.FillPath(args[1]))
		case "rendered":
			fmt.Println(store.RenderedPath(args[1]))
		default:
			return fmt.Errorf("invalid kind: %q (expected fill or rendered)", args[0])
		}
		return nil
	},
}

var assetsReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the asset index from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		index := sqlite.NewIndex()
		if err := index.Open(store.Root()); err != nil {
			return err
		}
		defer index.Close()

		stats, err := index.SyncFull(store)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d assets, removed %d stale entries\n", stats.Indexed, stats.Removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsSearchCmd)
	assetsCmd.AddCommand(assetsPathCmd)
	assetsCmd.AddCommand(assetsReindexCmd)
}
