// Package toolfilter restricts the tools a server lists to the caller's
// selection.
//
// Only tools/list is affected. A tools/call naming a tool that was filtered
// out of the listing is still dispatched by the server.
package toolfilter

import (
	"log/slog"
	"sort"

	"github.com/github/selective-mcp-server/pkg/metrics"
	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Filter applies a fixed ErrorBehavior to per-request selections. It holds
// no mutable state and is safe for concurrent use.
type Filter struct {
	behavior ErrorBehavior
	logger   *slog.Logger
}

type Option func(*Filter)

// WithLogger sets the logger used for Ignore and Fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func New(behavior ErrorBehavior, opts ...Option) *Filter {
	f := &Filter{
		behavior: behavior,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Filter) Behavior() ErrorBehavior {
	return f.behavior
}

// Apply reconciles tools against sel. A nil sel returns tools unchanged.
// Order follows tools; under Warn the notice tool is appended last.
func (f *Filter) Apply(tools []*mcp.Tool, sel *selection.Selection) ([]*mcp.Tool, error) {
	if sel == nil {
		f.record(metrics.OutcomeUnfiltered)
		return tools, nil
	}

	invalid, available := f.reconcile(tools, sel)
	if len(invalid) == 0 {
		f.record(metrics.OutcomeFiltered)
		return keep(tools, sel), nil
	}

	switch f.behavior {
	case Ignore:
		filtered := keep(tools, sel)
		f.logger.Debug("ignoring invalid tool selection",
			"invalid", invalid,
			"returned", len(filtered))
		f.record(metrics.OutcomeIgnored)
		return filtered, nil
	case Strict:
		f.record(metrics.OutcomeRejected)
		return nil, NewUnknownToolError(invalid, available)
	case Warn:
		filtered := keep(tools, sel)
		f.record(metrics.OutcomeWarned)
		return append(filtered, NewNoticeTool(invalid, available).Tool), nil
	case Fallback:
		f.logger.Warn("invalid tool selection, falling back to all tools",
			"invalid", invalid,
			"returned", len(tools))
		f.record(metrics.OutcomeFallback)
		return tools, nil
	default:
		f.logger.Error("unknown error behavior, returning all tools", "behavior", f.behavior.String())
		return tools, nil
	}
}

// reconcile returns the sorted selected names missing from tools and the
// sorted names of all tools.
func (f *Filter) reconcile(tools []*mcp.Tool, sel *selection.Selection) (invalid, available []string) {
	known := make(map[string]struct{}, len(tools))
	available = make([]string, 0, len(tools))
	for _, t := range tools {
		if _, dup := known[t.Name]; dup {
			continue
		}
		known[t.Name] = struct{}{}
		available = append(available, t.Name)
	}
	sort.Strings(available)

	for _, name := range sel.Names() {
		if _, ok := known[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	return invalid, available
}

func (f *Filter) record(outcome string) {
	metrics.ToolListFilterTotal.WithLabelValues(f.behavior.String(), outcome).Inc()
}

func keep(tools []*mcp.Tool, sel *selection.Selection) []*mcp.Tool {
	out := make([]*mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if sel.Has(t.Name) {
			out = append(out, t)
		}
	}
	return out
}
