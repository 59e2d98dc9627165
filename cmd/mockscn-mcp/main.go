package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"

	"github.com/ludo-technologies/mockscn/internal/version"
	"github.com/ludo-technologies/mockscn/mcp"
)

const serverName = "mockscn"

func main() {
	configPath := flag.String("config", os.Getenv("MOCKSCN_CONFIG"), "Path to .mockscn.toml (default: discovered from the analyzed path)")
	flag.Parse()

	// MCP uses stdout for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(nil, *configPath)))

	log.Printf("Starting %s MCP server %s\n", serverName, version.Short())
	log.Println("Registered tools:")
	log.Println("  - detect_mock_clones: Duplicated mock setup detection")
	log.Println("  - list_mock_objects: Mock listing with creation patterns")
	log.Println("  - build_mock_sequences: Per-test mock sequences")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
