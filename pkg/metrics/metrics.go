// Package metrics holds the Prometheus collectors for tool selection.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcomes recorded by ToolListFilterTotal.
const (
	OutcomeUnfiltered = "unfiltered"
	OutcomeFiltered   = "filtered"
	OutcomeIgnored    = "ignored"
	OutcomeRejected   = "rejected"
	OutcomeWarned     = "warned"
	OutcomeFallback   = "fallback"
)

// Sources recorded by SelectionParseErrorsTotal.
const (
	SourcePath   = "path"
	SourceHeader = "header"
	SourceFlag   = "flag"
)

// MethodOther labels RequestsTotal for methods outside the MCP set below.
const MethodOther = "other"

var knownMethods = map[string]bool{
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,
	"tools/list":                true,
	"tools/call":                true,
	"prompts/list":              true,
	"prompts/get":               true,
	"resources/list":            true,
	"resources/read":            true,
}

var (
	// RequestsTotal counts MCP JSON-RPC requests reaching the handler by method.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selective_mcp_requests_total",
			Help: "MCP requests by JSON-RPC method",
		},
		[]string{"method"},
	)

	// ToolListFilterTotal counts tools/list filter decisions by policy and outcome.
	ToolListFilterTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selective_mcp_tool_list_filter_total",
			Help: "Tool list filter decisions",
		},
		[]string{"behavior", "outcome"},
	)

	// SelectionParseErrorsTotal counts rejected tool selections by where they came from.
	SelectionParseErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selective_mcp_selection_parse_errors_total",
			Help: "Rejected tool selections",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		ToolListFilterTotal,
		SelectionParseErrorsTotal,
	)
}

// MethodLabel maps a JSON-RPC method to its RequestsTotal label, folding
// unknown methods into MethodOther to keep the label set bounded.
func MethodLabel(method string) string {
	if knownMethods[method] {
		return method
	}
	return MethodOther
}
