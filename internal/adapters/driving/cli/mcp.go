package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ftwrap/internal/adapters/driving/mcp"
	"github.com/custodia-labs/ftwrap/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can classify
text and query vectors with your fastText models.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead. Tool calls are rate limited by
mcp.rate_per_second.

Examples:
  # Stdio mode (default)
  ftwrap mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  ftwrap mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "ftwrap": {
        "command": "/path/to/ftwrap",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	rate := domain.DefaultMCPRate
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		rate = settings.MCPRate
	}

	ports := &mcp.Ports{
		Text:   textService,
		Models: modelService,
	}

	server, err := mcp.NewServer(ports, mcp.WithRateLimit(rate))
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
