package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all dupliscan MCP tools with the server
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	// Tool 1: detect_clones - Line-level clone detection
	s.AddTool(mcp.NewTool("detect_clones",
		mcp.WithDescription("Detect duplicated and near-duplicated lines in source files, classified into exact (Type-1), renamed (Type-2) and modified (Type-3) clones"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code (file or directory) to analyze")),
		mcp.WithNumber("sensitivity",
			mcp.Description("Detection sensitivity in (0.0, 1.0]; scales all tier cutoffs (default: 0.9)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
		mcp.WithArray("extensions",
			mcp.WithStringItems(),
			mcp.Description("Source file extensions to analyze (default: .py, .java)")),
	), handlers.HandleDetectClones)

	// Tool 2: compute_similarity - Similarity ratio between two fragments
	s.AddTool(mcp.NewTool("compute_similarity",
		mcp.WithDescription("Compute the longest-common-block similarity ratio between two code fragments after normalization"),
		mcp.WithString("fragment1",
			mcp.Required(),
			mcp.Description("First code fragment")),
		mcp.WithString("fragment2",
			mcp.Required(),
			mcp.Description("Second code fragment")),
	), handlers.HandleComputeSimilarity)

	// Tool 3: preview_lines - Read a line range from a source file
	s.AddTool(mcp.NewTool("preview_lines",
		mcp.WithDescription("Read a 1-based inclusive line range from a source file, e.g. to inspect a reported clone"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file")),
		mcp.WithNumber("start_line",
			mcp.Required(),
			mcp.Description("First line to read (1-based)")),
		mcp.WithNumber("end_line",
			mcp.Required(),
			mcp.Description("Last line to read (inclusive)")),
	), handlers.HandlePreviewLines)
}
