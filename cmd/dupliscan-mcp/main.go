package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dupliscan/dupliscan/internal/config"
	"github.com/dupliscan/dupliscan/internal/version"
	"github.com/dupliscan/dupliscan/mcp"
)

const serverName = "dupliscan"

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Pick up a config file from the working directory when present
	configPath := config.FindConfigFile(".")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: ignoring config %s: %v", configPath, err)
		cfg = config.DefaultConfig()
	}

	deps := mcp.NewDependencies(cfg, configPath)
	defer deps.Close()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(deps))

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - detect_clones: Line-level clone detection")
	log.Println("  - compute_similarity: Similarity ratio between two fragments")
	log.Println("  - preview_lines: Read a line range from a source file")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
