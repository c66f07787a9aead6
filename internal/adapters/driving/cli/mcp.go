package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [pdf...]",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.
PDF files given as arguments are indexed before the server starts.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  inkwell mcp serve report.pdf

  # HTTP mode (for MCP Inspector, remote access)
  inkwell mcp serve --port 8080 report.pdf`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	stack, err := buildStack()
	if err != nil {
		return err
	}
	defer stack.close()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if _, err := stack.library.Upload(cmd.Context(), filepath.Base(path), data); err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Library:   stack.library,
		Retriever: stack.retriever,
		Chat:      stack.chat,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
