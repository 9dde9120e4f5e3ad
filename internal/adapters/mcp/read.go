// Package mcp exposes the sync pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"figsync/internal/application/commands"
	"figsync/internal/config"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// Deps bundles what the tool handlers need.
type Deps struct {
	API   ports.DesignAPI
	Store ports.AssetStore
	Index ports.AssetIndex
	Cfg   config.Config
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(statusTool(), statusHandler(deps))
	s.AddTool(documentInfoTool(), documentInfoHandler(deps))
	s.AddTool(classifyTool(), classifyHandler(deps))
	s.AddTool(nodeInfoTool(), nodeInfoHandler(deps))
	s.AddTool(listAssetsTool(), listAssetsHandler(deps))
	s.AddTool(searchAssetsTool(), searchAssetsHandler(deps))
	s.AddTool(assetPathTool(), assetPathHandler(deps))
}

// cachedFile loads the locally cached document. Read tools never touch
// the network; run the sync or fetch tool first.
func cachedFile(deps Deps) (*domain.File, error) {
	result, err := commands.NewFetchDocumentCommand(deps.API, deps.Store, deps.Cfg.FileID, true).Execute(context.Background())
	if err != nil {
		return nil, err
	}
	return result.File, nil
}

// currentIndex returns the asset index, rebuilding it when it is stale.
func currentIndex(deps Deps) (ports.AssetIndex, error) {
	if deps.Index.NeedsFullRebuild() {
		if _, err := deps.Index.SyncFull(deps.Store); err != nil {
			return nil, fmt.Errorf("rebuild asset index: %w", err)
		}
	}
	return deps.Index, nil
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Summarize local asset state against the cached document: how many fills and rendered images are valid, placeholders, or absent, and which paths the next sync would download. Requires a cached document (run sync or fetch first)."),
	)
}

func statusHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, err := cachedFile(deps)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewStatusCommand(deps.Store, file, deps.Cfg.PageFilter()).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, path := range result.NeedsDownload {
			fmt.Fprintf(&sb, "needs download: %s\n", path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- document_info ---

func documentInfoTool() mcp.Tool {
	return mcp.NewTool("document_info",
		mcp.WithDescription("Show the cached document's name, version, pages, and any component references the file does not define."),
	)
}

func documentInfoHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, err := cachedFile(deps)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (version %s)\n", file.Name, file.Version)
		for _, page := range file.Pages() {
			fmt.Fprintf(&sb, "page %s  %s\n", page.ID, page.Name)
		}
		for id := range file.MissingComponents() {
			fmt.Fprintf(&sb, "missing component: %s\n", id)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- classify ---

func classifyTool() mcp.Tool {
	return mcp.NewTool("classify",
		mcp.WithDescription("List the nodes of the cached document that need server-side rendering, with the reason (substitution or export)."),
		mcp.WithString("page_id",
			mcp.Description("Restrict to one page. Omit to classify all configured pages."),
		),
	)
}

func classifyHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, err := cachedFile(deps)
		if err != nil {
			return toolError(err)
		}

		pageIDs := deps.Cfg.PageFilter()
		if pageID := req.GetString("page_id", ""); pageID != "" {
			pageIDs = map[string]bool{pageID: true}
		}

		result, err := commands.NewClassifyCommand(file, pageIDs).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Candidates) == 0 {
			return mcp.NewToolResultText("No nodes need rendering."), nil
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, cand := range result.Candidates {
			fmt.Fprintf(&sb, "%s  %s\n", cand.NodeID, cand.Reason)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- node_info ---

func nodeInfoTool() mcp.Tool {
	return mcp.NewTool("node_info",
		mcp.WithDescription("Look up a node of the cached document by ID and show its name, type, visibility, and child count."),
		mcp.WithString("id",
			mcp.Description("Node ID (e.g. 1:23)"),
			mcp.Required(),
		),
	)
}

func nodeInfoHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		file, err := cachedFile(deps)
		if err != nil {
			return toolError(err)
		}
		node := file.FindNode(id)
		if node == nil {
			return toolError(fmt.Errorf("node %s not found in document", id))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s (%s)\n", node.ID, node.Name, node.Type)
		if !node.IsVisible() {
			sb.WriteString("hidden\n")
		}
		fmt.Fprintf(&sb, "children: %d\n", len(node.Children))
		if len(node.ExportSettings) > 0 {
			fmt.Fprintf(&sb, "export settings: %d\n", len(node.ExportSettings))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_assets ---

func listAssetsTool() mcp.Tool {
	return mcp.NewTool("list_assets",
		mcp.WithDescription("List synced assets from the index. Optionally filter by kind."),
		mcp.WithString("kind",
			mcp.Description("Asset kind: page, screen, component, fill, or rendered. Omit to list everything."),
		),
	)
}

func listAssetsHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := currentIndex(deps)
		if err != nil {
			return toolError(err)
		}
		assets, err := index.List(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}
		return formatAssets(assets)
	}
}

// --- search_assets ---

func searchAssetsTool() mcp.Tool {
	return mcp.NewTool("search_assets",
		mcp.WithDescription("Search synced assets by name, case-insensitively."),
		mcp.WithString("query",
			mcp.Description("Substring to search for"),
			mcp.Required(),
		),
	)
}

func searchAssetsHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		index, err := currentIndex(deps)
		if err != nil {
			return toolError(err)
		}
		assets, err := index.Search(query)
		if err != nil {
			return toolError(err)
		}
		return formatAssets(assets)
	}
}

// --- asset_path ---

func assetPathTool() mcp.Tool {
	return mcp.NewTool("asset_path",
		mcp.WithDescription("Get the deterministic local path for an asset by its remote identifier."),
		mcp.WithString("id",
			mcp.Description("Image fill reference or node ID"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Asset kind: fill or rendered"),
			mcp.Required(),
		),
	)
}

func assetPathHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		switch kind := req.GetString("kind", ""); kind {
		case "fill":
			return mcp.NewToolResultText(deps.Store.FillPath(id)), nil
		case "rendered":
			return mcp.NewToolResultText(deps.Store.RenderedPath(id)), nil
		default:
			return toolError(fmt.Errorf("invalid kind: %q (expected fill or rendered)", kind))
		}
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatAssets(assets []domain.IndexedAsset) (*mcp.CallToolResult, error) {
	if len(assets) == 0 {
		return mcp.NewToolResultText("No assets."), nil
	}
	var sb strings.Builder
	for _, a := range assets {
		fmt.Fprintf(&sb, "%-9s  %s  (%d bytes)\n", a.Kind, a.Path, a.Size)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
