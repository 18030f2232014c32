package headers

const (
	// ContentTypeHeader is a standard HTTP Header.
	ContentTypeHeader = "Content-Type"
	// AcceptHeader is a standard HTTP Header.
	AcceptHeader = "Accept"

	// ContentTypeJSON is the standard MIME type for JSON.
	ContentTypeJSON = "application/json"
	// ContentTypeEventStream is the standard MIME type for Event Streams.
	ContentTypeEventStream = "text/event-stream"

	// MCP-specific headers.

	// MCPToolsHeader lists the tools the request is restricted to, separated by commas or slashes.
	MCPToolsHeader = "X-MCP-Tools"
	// MCPToolsetsHeader is a comma-separated list of toolsets to register for the request.
	MCPToolsetsHeader = "X-MCP-Toolsets"
)
