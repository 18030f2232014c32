// Package builtin provides the toolsets shipped with the server.
package builtin

import (
	"context"
	"fmt"

	"github.com/github/selective-mcp-server/pkg/sanitize"
	"github.com/github/selective-mcp-server/pkg/toolsets"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const DemoToolsetName = "demo"

type EchoInput struct {
	Text string `json:"text" jsonschema:"The text to echo back"`
}

type BinaryInput struct {
	A int `json:"a" jsonschema:"First operand"`
	B int `json:"b" jsonschema:"Second operand"`
}

type NumberOutput struct {
	Result int `json:"result"`
}

func Echo() toolsets.ServerTool {
	return toolsets.NewServerTool(&mcp.Tool{
		Name:        "echo",
		Description: "Echo the input text",
		Annotations: &mcp.ToolAnnotations{Title: "Echo", ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, in EchoInput) (*mcp.CallToolResult, any, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "You said: " + sanitize.FilterInvisibleCharacters(in.Text)}},
		}, nil, nil
	})
}

func Add() toolsets.ServerTool {
	return arithmetic("add", "Add two numbers together", func(a, b int) int { return a + b })
}

func Multiply() toolsets.ServerTool {
	return arithmetic("multiply", "Multiply two numbers together", func(a, b int) int { return a * b })
}

func arithmetic(name, description string, op func(a, b int) int) toolsets.ServerTool {
	return toolsets.NewServerTool(&mcp.Tool{
		Name:        name,
		Description: description,
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, in BinaryInput) (*mcp.CallToolResult, NumberOutput, error) {
		out := NumberOutput{Result: op(in.A, in.B)}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%d", out.Result)}},
		}, out, nil
	})
}

// DemoToolset returns the echo/add/multiply toolset.
func DemoToolset() *toolsets.Toolset {
	return toolsets.NewToolset(DemoToolsetName, "Example tools for trying out tool selection").
		AddTools(Echo(), Add(), Multiply())
}

// DefaultToolsetGroup returns a group holding every builtin toolset, with the
// named toolsets enabled.
func DefaultToolsetGroup(enabled []string) (*toolsets.ToolsetGroup, error) {
	tg := toolsets.NewToolsetGroup()
	tg.AddToolset(DemoToolset())
	if err := tg.EnableToolsets(enabled, &toolsets.EnableToolsetsOptions{ErrorOnUnknown: true}); err != nil {
		return nil, err
	}
	return tg, nil
}
