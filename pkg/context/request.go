package context

import (
	"context"

	"github.com/github/selective-mcp-server/pkg/selection"
)

// selectedToolsCtx is the per-request state slot written by routing and read
// when the tool list is built.
type selectedToolsCtx string

var selectedToolsCtxKey selectedToolsCtx = "selected_tools"

// WithSelectedTools stores the tool selection in the context. Storing a nil
// selection records that no restriction was requested.
func WithSelectedTools(ctx context.Context, sel *selection.Selection) context.Context {
	return context.WithValue(ctx, selectedToolsCtxKey, sel)
}

// GetSelectedTools retrieves the tool selection from the context. The bool
// reports whether routing set the slot at all.
func GetSelectedTools(ctx context.Context) (*selection.Selection, bool) {
	sel, ok := ctx.Value(selectedToolsCtxKey).(*selection.Selection)
	return sel, ok
}

// selectionSourceCtxKey records where the selection came from
type selectionSourceCtxKey struct{}

// WithSelectionSource records which routing input produced the selection
func WithSelectionSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, selectionSourceCtxKey{}, source)
}

// GetSelectionSource retrieves the selection source from the context
func GetSelectionSource(ctx context.Context) string {
	if source, ok := ctx.Value(selectionSourceCtxKey{}).(string); ok {
		return source
	}
	return ""
}

// toolsetsCtxKey is a context key for the toolsets registered for a request
type toolsetsCtxKey struct{}

// WithToolsets adds the requested toolsets to the context
func WithToolsets(ctx context.Context, toolsets []string) context.Context {
	return context.WithValue(ctx, toolsetsCtxKey{}, toolsets)
}

// GetToolsets retrieves the requested toolsets from the context
func GetToolsets(ctx context.Context) []string {
	if toolsets, ok := ctx.Value(toolsetsCtxKey{}).([]string); ok {
		return toolsets
	}
	return nil
}
