package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ghcontext "github.com/github/selective-mcp-server/pkg/context"
	"github.com/github/selective-mcp-server/pkg/http/middleware"
	"github.com/github/selective-mcp-server/pkg/metrics"
	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/github/selective-mcp-server/pkg/server"
	"github.com/github/selective-mcp-server/pkg/toolsets"
)

// MCPServerFactoryFunc builds the MCP server answering a single request.
type MCPServerFactoryFunc func(r *http.Request, group *toolsets.ToolsetGroup, sel *selection.Selection, cfg *server.MCPServerConfig) (*mcp.Server, error)

type Handler struct {
	config           *ServerConfig
	logger           *slog.Logger
	group            *toolsets.ToolsetGroup
	parser           *selection.Parser
	mcpServerFactory MCPServerFactoryFunc
}

type HandlerOptions struct {
	MCPServerFactory MCPServerFactoryFunc
	SelectionParser  *selection.Parser
}

type HandlerOption func(*HandlerOptions)

func WithMCPServerFactory(f MCPServerFactoryFunc) HandlerOption {
	return func(o *HandlerOptions) {
		o.MCPServerFactory = f
	}
}

func WithSelectionParser(p *selection.Parser) HandlerOption {
	return func(o *HandlerOptions) {
		o.SelectionParser = p
	}
}

func NewHTTPMcpHandler(
	cfg *ServerConfig,
	group *toolsets.ToolsetGroup,
	logger *slog.Logger,
	options ...HandlerOption) *Handler {
	opts := &HandlerOptions{}
	for _, o := range options {
		o(opts)
	}

	factory := opts.MCPServerFactory
	if factory == nil {
		factory = DefaultMCPServerFactory
	}

	parser := opts.SelectionParser
	if parser == nil {
		parser = selection.NewParser(
			selection.WithTTL(cfg.SelectionCacheTTL),
			selection.WithMaxEntries(cfg.SelectionCacheMaxEntries),
			selection.WithLogger(logger),
		)
	}

	return &Handler{
		config:           cfg,
		logger:           logger,
		group:            group,
		parser:           parser,
		mcpServerFactory: factory,
	}
}

func (h *Handler) RegisterMiddleware(r chi.Router) {
	r.Use(
		middleware.WithMCPParse(),
		middleware.WithRequestConfig(h.parser, h.logger),
	)
}

// RegisterRoutes registers the routes for the MCP server.
// URL-based selections take precedence over the X-MCP-Tools header.
func (h *Handler) RegisterRoutes(r chi.Router) {
	basePath := h.basePath()

	r.Get("/_ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if h.config.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Base route: whole catalogue unless the header restricts it
	r.Handle(basePath, h)

	// Selection routes
	r.With(middleware.WithParamSelection(h.parser, "tools", h.logger)).Handle("/x/{tools}", h)
	r.HandleFunc("/x/*", middleware.NotFound)
	r.With(middleware.WithPathSelection(h.parser, basePath, h.logger)).Handle("/*", h)
}

func (h *Handler) basePath() string {
	p := strings.Trim(h.config.BasePath, "/")
	if p == "" {
		p = "mcp"
	}
	return "/" + p
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, _ := ghcontext.GetSelectedTools(ctx)

	group := h.group
	if names := ghcontext.GetToolsets(ctx); len(names) > 0 {
		group = group.Subset(names)
	}

	if methodInfo, ok := ghcontext.MCPMethod(ctx); ok && methodInfo != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.MethodLabel(methodInfo.Method)).Inc()
		h.logger.Debug("mcp request",
			"method", methodInfo.Method,
			"item", methodInfo.ItemName,
			"selection", sel.String(),
			"source", ghcontext.GetSelectionSource(ctx),
		)
	}

	mcpServer, err := h.mcpServerFactory(r, group, sel, &server.MCPServerConfig{
		Version:       h.config.Version,
		ErrorBehavior: h.config.ErrorBehavior,
		Logger:        h.logger,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	mcpHandler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})

	mcpHandler.ServeHTTP(w, r)
}

func DefaultMCPServerFactory(_ *http.Request, group *toolsets.ToolsetGroup, sel *selection.Selection, cfg *server.MCPServerConfig) (*mcp.Server, error) {
	return server.NewMCPServer(cfg, group, sel), nil
}
