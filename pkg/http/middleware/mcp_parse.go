package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	ghcontext "github.com/github/selective-mcp-server/pkg/context"
)

// mcpJSONRPCRequest represents the structure of an MCP JSON-RPC request.
// We only parse the fields needed for logging.
type mcpJSONRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		// For tools/call
		Name string `json:"name,omitempty"`
	} `json:"params"`
}

// WithMCPParse creates a middleware that parses MCP JSON-RPC requests early in the
// request lifecycle and stores the parsed information in the request context.
//
// The middleware reads the request body, parses it, restores the body for downstream
// handlers, and stores the parsed MCPMethodInfo in the request context. Anything that
// is not a JSON-RPC 2.0 request passes through untouched.
func WithMCPParse() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			// Only parse POST requests (MCP uses JSON-RPC over POST)
			if r.Method != http.MethodPost || r.URL.Path == "/_ping" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if len(body) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var mcpReq mcpJSONRPCRequest
			if err := json.Unmarshal(body, &mcpReq); err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if mcpReq.JSONRPC != "2.0" || mcpReq.Method == "" {
				next.ServeHTTP(w, r)
				return
			}

			methodInfo := &ghcontext.MCPMethodInfo{
				Method: mcpReq.Method,
			}
			if mcpReq.Method == "tools/call" {
				methodInfo.ItemName = mcpReq.Params.Name
			}

			ctx := ghcontext.WithMCPMethodInfo(r.Context(), methodInfo)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
