package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"figsync/internal/adapters/assetstore"
	"figsync/internal/adapters/figma"
	"figsync/internal/config"
	"figsync/internal/logging"
	"figsync/internal/ports"
)

var (
	configPath string
	rootFlag   string
	fileFlag   string
	tokenFlag  string
	debugFlag  bool

	cfg    config.Config
	store  ports.AssetStore
	api    ports.DesignAPI
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "figsync-cli",
	Short: "CLI for syncing remote design documents and assets",
	Long: `figsync-cli keeps a local asset folder in step with a remote design
document: it fetches the document graph, works out which bitmap fills
and rendered node images are missing, downloads them in rate-limited
batches, and prunes artifacts that no longer exist remotely.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if rootFlag != "" {
			cfg.AssetRoot = rootFlag
		}
		if fileFlag != "" {
			cfg.FileID = fileFlag
		}
		if tokenFlag != "" {
			cfg.Token = tokenFlag
		}
		if debugFlag {
			cfg.Debug = true
		}

		logger = logging.New(cfg.Debug)
		store = assetstore.New(cfg.AssetRoot, logger)
		api = figma.NewClient(cfg.BaseURL, cfg.Token)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "asset root directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "remote file id (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "API token (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
