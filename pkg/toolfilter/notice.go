package toolfilter

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NoticeToolName is the name of the synthetic tool listed under Warn.
const NoticeToolName = "_selection_error_notice"

// NoticeTool is a tool fabricated for a single listing to tell the client
// that its selection named unknown tools. It is never registered on a server.
type NoticeTool struct {
	Tool    *mcp.Tool
	Message string
}

// NewNoticeTool builds the notice for the given sorted name lists.
func NewNoticeTool(invalid, available []string) NoticeTool {
	return NoticeTool{
		Tool: &mcp.Tool{
			Name: NoticeToolName,
			Description: fmt.Sprintf("ERROR NOTICE: Requested tools not found: %s. Call this tool to see the full error message.",
				strings.Join(invalid, ", ")),
			InputSchema: &jsonschema.Schema{Type: "object"},
			Annotations: &mcp.ToolAnnotations{
				Title:        "Tool selection error",
				ReadOnlyHint: true,
			},
		},
		Message: fmt.Sprintf("CONFIGURATION ERROR: The following tools were requested but do not exist: %s.\n\nAvailable tools: %s.\n\nPlease notify the administrator to update the tool selection URL.",
			strings.Join(invalid, ", "), strings.Join(available, ", ")),
	}
}

// Result is what a call to the notice tool returns.
func (n NoticeTool) Result() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: n.Message},
		},
	}
}
