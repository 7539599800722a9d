// ABOUTME: MCP server command exposing the workspace over stdio
// ABOUTME: Tool, resource and prompt registration lives in the handlers package
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/echoes/handlers"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand runs the MCP server until stdin closes or the process is
// interrupted.
func MCPCommand(st *state.State, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := handlers.NewServer(st, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
