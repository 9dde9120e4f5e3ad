package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"figsync/internal/adapters/assetstore"
	"figsync/internal/adapters/figma"
	mcpadapter "figsync/internal/adapters/mcp"
	"figsync/internal/adapters/sqlite"
	"figsync/internal/config"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("figsync-mcp: %v", err)
	}

	store := assetstore.New(cfg.AssetRoot, nil)
	if err := store.EnsureLayout(); err != nil {
		log.Fatalf("figsync-mcp: %v", err)
	}

	index := sqlite.NewIndex()
	if err := index.Open(store.Root()); err != nil {
		log.Fatalf("figsync-mcp: %v", err)
	}
	defer index.Close()

	deps := mcpadapter.Deps{
		API:   figma.NewClient(cfg.BaseURL, cfg.Token),
		Store: store,
		Index: index,
		Cfg:   cfg,
	}

	mcpServer := server.NewMCPServer(
		"figsync-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("figsync-mcp: %v", err)
	}
}
