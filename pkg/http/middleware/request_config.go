package middleware

import (
	"log/slog"
	"net/http"

	ghcontext "github.com/github/selective-mcp-server/pkg/context"
	"github.com/github/selective-mcp-server/pkg/http/headers"
	"github.com/github/selective-mcp-server/pkg/metrics"
	"github.com/github/selective-mcp-server/pkg/selection"
)

// SelectionSourceHeader marks a selection taken from the X-MCP-Tools header.
const SelectionSourceHeader = metrics.SourceHeader

// WithRequestConfig returns middleware that extracts the MCP-related headers
// and sets them in the request context. An invalid X-MCP-Tools header ends the
// request with 400 before any MCP processing.
func WithRequestConfig(parser *selection.Parser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Tools
			if raw := r.Header.Get(headers.MCPToolsHeader); raw != "" {
				sel, err := parser.Parse(raw)
				if err != nil {
					metrics.SelectionParseErrorsTotal.WithLabelValues(metrics.SourceHeader).Inc()
					logger.Debug("rejected tool selection header", "header", headers.MCPToolsHeader, "error", err)
					WriteError(w, err)
					return
				}
				if sel != nil {
					ctx = ghcontext.WithSelectedTools(ctx, sel)
					ctx = ghcontext.WithSelectionSource(ctx, SelectionSourceHeader)
				}
			}

			// Toolsets
			if toolsets := headers.ParseCommaSeparated(r.Header.Get(headers.MCPToolsetsHeader)); len(toolsets) > 0 {
				ctx = ghcontext.WithToolsets(ctx, toolsets)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
