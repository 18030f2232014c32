package context

import "context"

type mcpMethodInfoCtx string

var mcpMethodInfoCtxKey mcpMethodInfoCtx = "mcpmethodinfo"

// MCPMethodInfo contains pre-parsed MCP method information extracted from the JSON-RPC request.
// It lets the HTTP layer log and label requests without decoding the body twice.
type MCPMethodInfo struct {
	// Method is the MCP method being called (e.g., "tools/call", "tools/list", "initialize")
	Method string
	// ItemName is the tool being called. Only populated for tools/call.
	ItemName string
}

// WithMCPMethodInfo stores the MCPMethodInfo in the context.
func WithMCPMethodInfo(ctx context.Context, info *MCPMethodInfo) context.Context {
	return context.WithValue(ctx, mcpMethodInfoCtxKey, info)
}

// MCPMethod retrieves the MCPMethodInfo from the context.
func MCPMethod(ctx context.Context) (*MCPMethodInfo, bool) {
	if info, ok := ctx.Value(mcpMethodInfoCtxKey).(*MCPMethodInfo); ok {
		return info, true
	}
	return nil, false
}
