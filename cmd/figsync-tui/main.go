package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"figsync/internal/adapters/assetstore"
	"figsync/internal/adapters/figma"
	"figsync/internal/adapters/sqlite"
	"figsync/internal/adapters/tui"
	"figsync/internal/config"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := assetstore.New(cfg.AssetRoot, nil)
	if err := store.EnsureLayout(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	index := sqlite.NewIndex()
	if err := index.Open(store.Root()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()
	if index.NeedsFullRebuild() {
		if _, err := index.SyncFull(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	api := figma.NewClient(cfg.BaseURL, cfg.Token)
	app := tui.NewApp(api, store, index, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
