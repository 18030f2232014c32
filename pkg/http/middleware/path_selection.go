package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	ghcontext "github.com/github/selective-mcp-server/pkg/context"
	"github.com/github/selective-mcp-server/pkg/http/mark"
	"github.com/github/selective-mcp-server/pkg/metrics"
	"github.com/github/selective-mcp-server/pkg/selection"
)

// SelectionSourcePath marks a selection taken from the URL path.
const SelectionSourcePath = metrics.SourcePath

// WithPathSelection returns middleware for catch-all routes of the form
// /{names...}{basePath}, e.g. /tool1/tool2/mcp. The prefix before basePath is
// unescaped and parsed as a selection. Paths that do not end in basePath are
// not found.
func WithPathSelection(parser *selection.Parser, basePath string, logger *slog.Logger) func(http.Handler) http.Handler {
	suffix := "/" + strings.Trim(basePath, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := "/" + chi.URLParam(r, "*")
			raw, ok := strings.CutSuffix(path, suffix)
			if !ok {
				NotFound(w, r)
				return
			}
			setSelection(w, r, next, parser, raw, logger)
		})
	}
}

// WithParamSelection returns middleware that unescapes the chi URL parameter
// param and parses it as a selection, e.g. for /x/{tools}.
func WithParamSelection(parser *selection.Parser, param string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setSelection(w, r, next, parser, chi.URLParam(r, param), logger)
		})
	}
}

// NotFound answers every request with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, mark.With(fmt.Errorf("no MCP endpoint at %s", r.URL.Path), mark.ErrNotFound))
}

func setSelection(w http.ResponseWriter, r *http.Request, next http.Handler, parser *selection.Parser, raw string, logger *slog.Logger) {
	// chi hands back the escaped form whenever the request has a RawPath
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		metrics.SelectionParseErrorsTotal.WithLabelValues(metrics.SourcePath).Inc()
		logger.Debug("rejected tool selection path", "path", r.URL.Path, "error", err)
		WriteError(w, mark.With(fmt.Errorf("invalid tool selection path: %w", err), mark.ErrBadRequest))
		return
	}

	sel, err := parser.Parse(unescaped)
	if err != nil {
		metrics.SelectionParseErrorsTotal.WithLabelValues(metrics.SourcePath).Inc()
		logger.Debug("rejected tool selection path", "path", r.URL.Path, "error", err)
		WriteError(w, err)
		return
	}

	// An explicit path without names means no restriction, even if a
	// header asked for one.
	ctx := ghcontext.WithSelectedTools(r.Context(), sel)
	ctx = ghcontext.WithSelectionSource(ctx, SelectionSourcePath)
	next.ServeHTTP(w, r.WithContext(ctx))
}
