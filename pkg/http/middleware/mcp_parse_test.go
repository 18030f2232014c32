package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ghcontext "github.com/github/selective-mcp-server/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMCPParse(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectInfo     bool
		expectedMethod string
		expectedItem   string
	}{
		{
			name:       "health check path is skipped",
			method:     http.MethodPost,
			path:       "/_ping",
			body:       `{"jsonrpc":"2.0","method":"tools/list"}`,
			expectInfo: false,
		},
		{
			name:       "GET request is skipped",
			method:     http.MethodGet,
			path:       "/mcp",
			body:       `{"jsonrpc":"2.0","method":"tools/list"}`,
			expectInfo: false,
		},
		{
			name:       "empty body is skipped",
			method:     http.MethodPost,
			path:       "/mcp",
			body:       "",
			expectInfo: false,
		},
		{
			name:       "invalid JSON is skipped",
			method:     http.MethodPost,
			path:       "/mcp",
			body:       "not valid json",
			expectInfo: false,
		},
		{
			name:       "non-JSON-RPC 2.0 is skipped",
			method:     http.MethodPost,
			path:       "/mcp",
			body:       `{"jsonrpc":"1.0","method":"tools/list"}`,
			expectInfo: false,
		},
		{
			name:       "empty method is skipped",
			method:     http.MethodPost,
			path:       "/mcp",
			body:       `{"jsonrpc":"2.0","method":""}`,
			expectInfo: false,
		},
		{
			name:           "tools/list parses method only",
			method:         http.MethodPost,
			path:           "/mcp",
			body:           `{"jsonrpc":"2.0","method":"tools/list"}`,
			expectInfo:     true,
			expectedMethod: "tools/list",
		},
		{
			name:           "tools/call parses name",
			method:         http.MethodPost,
			path:           "/mcp",
			body:           `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"echo"}}`,
			expectInfo:     true,
			expectedMethod: "tools/call",
			expectedItem:   "echo",
		},
		{
			name:           "tools/call ignores arguments",
			method:         http.MethodPost,
			path:           "/echo/mcp",
			body:           `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`,
			expectInfo:     true,
			expectedMethod: "tools/call",
			expectedItem:   "echo",
		},
		{
			name:           "prompts/get leaves item empty",
			method:         http.MethodPost,
			path:           "/mcp",
			body:           `{"jsonrpc":"2.0","method":"prompts/get","params":{"name":"my_prompt"}}`,
			expectInfo:     true,
			expectedMethod: "prompts/get",
			expectedItem:   "",
		},
		{
			name:           "resources/read leaves item empty",
			method:         http.MethodPost,
			path:           "/mcp",
			body:           `{"jsonrpc":"2.0","method":"resources/read","params":{"uri":"file:///README.md"}}`,
			expectInfo:     true,
			expectedMethod: "resources/read",
			expectedItem:   "",
		},
		{
			name:           "initialize method parses correctly",
			method:         http.MethodPost,
			path:           "/mcp",
			body:           `{"jsonrpc":"2.0","method":"initialize","params":{"capabilities":{}}}`,
			expectInfo:     true,
			expectedMethod: "initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedInfo *ghcontext.MCPMethodInfo
			var infoCaptured bool

			// Create a handler that captures the MCPMethodInfo from context
			nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				capturedInfo, infoCaptured = ghcontext.MCPMethod(r.Context())
			})

			middleware := WithMCPParse()
			handler := middleware(nextHandler)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if tt.expectInfo {
				require.True(t, infoCaptured, "MCPMethodInfo should be present in context")
				require.NotNil(t, capturedInfo)
				assert.Equal(t, tt.expectedMethod, capturedInfo.Method)
				assert.Equal(t, tt.expectedItem, capturedInfo.ItemName)
			} else {
				assert.False(t, infoCaptured, "MCPMethodInfo should not be present in context")
			}
		})
	}
}

func TestWithMCPParse_BodyRestoration(t *testing.T) {
	originalBody := `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"add"}}`

	var capturedBody string

	nextHandler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		capturedBody = string(body)
	})

	middleware := WithMCPParse()
	handler := middleware(nextHandler)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(originalBody))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, originalBody, capturedBody, "body should be restored for downstream handlers")
}
