package server

import (
	"context"
	"testing"

	"github.com/github/selective-mcp-server/pkg/builtin"
	"github.com/github/selective-mcp-server/pkg/selection"
	"github.com/github/selective-mcp-server/pkg/toolfilter"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, s *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	cs, err := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.0.1"}, nil).Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return cs
}

func TestNewMCPServer(t *testing.T) {
	group, err := builtin.DefaultToolsetGroup([]string{"all"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		behavior      toolfilter.ErrorBehavior
		selection     *selection.Selection
		expectedTools []string
	}{
		{
			name:          "no selection",
			selection:     nil,
			expectedTools: []string{"add", "echo", "multiply"},
		},
		{
			name:          "selection",
			selection:     selection.New("echo", "add"),
			expectedTools: []string{"add", "echo"},
		},
		{
			name:          "warn with unknown tool",
			behavior:      toolfilter.Warn,
			selection:     selection.New("echo", "subtract"),
			expectedTools: []string{"echo", toolfilter.NoticeToolName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMCPServer(&MCPServerConfig{Version: "test", ErrorBehavior: tt.behavior}, group, tt.selection)
			cs := connect(t, s)

			assert.Equal(t, Name, cs.InitializeResult().ServerInfo.Name)

			res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
			require.NoError(t, err)
			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			assert.ElementsMatch(t, tt.expectedTools, names)
		})
	}
}

func TestNewMCPServer_AppliesServerOptions(t *testing.T) {
	group, err := builtin.DefaultToolsetGroup([]string{"all"})
	require.NoError(t, err)

	s := NewMCPServer(&MCPServerConfig{
		Version: "test",
		ServerOptions: []MCPServerOption{
			func(so *mcp.ServerOptions) {
				so.Instructions = "only the selected tools are listed"
			},
		},
	}, group, nil)
	cs := connect(t, s)

	assert.Equal(t, "only the selected tools are listed", cs.InitializeResult().Instructions)
}
