// Package server assembles an MCP server that lists only the selected tools.
package server

import (
	"log/slog"

	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/github/selective-mcp-server/pkg/toolfilter"
	"github.com/github/selective-mcp-server/pkg/toolsets"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Name = "selective-mcp-server"

// MCPServerOption mutates the go-sdk server options before the server is created.
type MCPServerOption func(*mcp.ServerOptions)

type MCPServerConfig struct {
	// Version of the server
	Version string

	// ErrorBehavior applied when a selection names unknown tools
	ErrorBehavior toolfilter.ErrorBehavior

	// Logger is used for filter diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// ServerOptions are applied in order on top of the defaults
	ServerOptions []MCPServerOption
}

// NewMCPServer creates a server with every active tool of group registered and
// the tool list restricted to sel. A nil sel lists every registered tool.
func NewMCPServer(cfg *MCPServerConfig, group *toolsets.ToolsetGroup, sel *selection.Selection) *mcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := &mcp.ServerOptions{
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{},
		},
	}
	for _, o := range cfg.ServerOptions {
		o(opts)
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Title:   "Selective MCP Server",
		Version: cfg.Version,
	}, opts)

	filter := toolfilter.New(cfg.ErrorBehavior, toolfilter.WithLogger(logger))
	s.AddReceivingMiddleware(filter.Middleware(sel))

	group.RegisterAll(s)
	return s
}
