package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"figsync/internal/application/commands"
)

// RegisterWriteTools adds the tools that touch the network or modify
// the asset store.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(syncTool(), syncHandler(deps))
	s.AddTool(fetchTool(), fetchHandler(deps))
	s.AddTool(cleanPlaceholdersTool(), cleanPlaceholdersHandler(deps))
	s.AddTool(reindexTool(), reindexHandler(deps))
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Run the full pipeline: fetch the document, classify render needs, download missing fills and rendered images. Failed downloads leave placeholders that are retried on the next run."),
		mcp.WithBoolean("use_cache",
			mcp.Description("Work from the cached document instead of fetching"),
		),
	)
}

func syncHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		useCache := req.GetBool("use_cache", false)

		cmd := commands.NewSyncCommand(deps.API, deps.Store, nil, deps.Cfg, nil, useCache)
		report, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, phase := range report.Phases {
			fmt.Fprintf(&sb, "%-9s  %s\n", phase.Phase, phase.Message)
		}
		if report.Downloads != nil {
			if failed := report.Downloads.Failed(); len(failed) > 0 {
				for _, f := range failed {
					fmt.Fprintf(&sb, "failed: %s (%v)\n", f.Item.Dest, f.Err)
				}
			}
		}

		// The files changed; let the index catch up eagerly.
		if _, err := deps.Index.SyncFull(deps.Store); err != nil {
			fmt.Fprintf(&sb, "index not refreshed: %v\n", err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- fetch ---

func fetchTool() mcp.Tool {
	return mcp.NewTool("fetch",
		mcp.WithDescription("Fetch the remote document and refresh the local cache without downloading any assets."),
	)
}

func fetchHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Store.EnsureLayout(); err != nil {
			return toolError(err)
		}
		result, err := commands.NewFetchDocumentCommand(deps.API, deps.Store, deps.Cfg.FileID, false).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clean_placeholders ---

func cleanPlaceholdersTool() mcp.Tool {
	return mcp.NewTool("clean_placeholders",
		mcp.WithDescription("Delete every placeholder asset. The slots become absent and are re-downloaded on the next sync."),
	)
}

func cleanPlaceholdersHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCleanPlaceholdersCommand(deps.Store, nil).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if _, err := deps.Index.SyncFull(deps.Store); err != nil {
			return toolError(fmt.Errorf("placeholders removed but index not refreshed: %w", err))
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reindex ---

func reindexTool() mcp.Tool {
	return mcp.NewTool("reindex",
		mcp.WithDescription("Rebuild the asset index from the files on disk."),
	)
}

func reindexHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := deps.Index.SyncFull(deps.Store)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(
			fmt.Sprintf("Indexed %d assets, removed %d stale entries", stats.Indexed, stats.Removed)), nil
	}
}
