package toolsets

import (
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ToolsetDoesNotExistError struct {
	Name string
}

func (e *ToolsetDoesNotExistError) Error() string {
	return fmt.Sprintf("toolset %s does not exist", e.Name)
}

func (e *ToolsetDoesNotExistError) Is(target error) bool {
	if target == nil {
		return false
	}
	if _, ok := target.(*ToolsetDoesNotExistError); ok {
		return true
	}
	return false
}

func NewToolsetDoesNotExistError(name string) *ToolsetDoesNotExistError {
	return &ToolsetDoesNotExistError{Name: name}
}

type ToolDoesNotExistError struct {
	Name string
}

func (e *ToolDoesNotExistError) Error() string {
	return fmt.Sprintf("tool %s does not exist", e.Name)
}

func NewToolDoesNotExistError(name string) *ToolDoesNotExistError {
	return &ToolDoesNotExistError{Name: name}
}

// ServerTool pairs a tool definition with the function that registers its
// handler on a server.
type ServerTool struct {
	Tool     *mcp.Tool
	register func(s *mcp.Server)
}

// NewServerTool creates a ServerTool for a typed handler. When the tool has no
// input schema one is inferred from In, so the schema is available before the
// tool is registered anywhere.
func NewServerTool[In, Out any](tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) ServerTool {
	if tool.InputSchema == nil {
		schema, err := jsonschema.For[In](nil)
		if err != nil {
			panic(fmt.Sprintf("tool (%s) has no usable input schema: %v", tool.Name, err))
		}
		tool.InputSchema = schema
	}
	return ServerTool{
		Tool: tool,
		register: func(s *mcp.Server) {
			mcp.AddTool(s, tool, handler)
		},
	}
}

// NewServerToolFromHandler creates a ServerTool for an untyped handler. The
// tool must carry its own input schema.
func NewServerToolFromHandler(tool *mcp.Tool, handler mcp.ToolHandler) ServerTool {
	return ServerTool{
		Tool: tool,
		register: func(s *mcp.Server) {
			s.AddTool(tool, handler)
		},
	}
}

// Register adds the tool to s.
func (t ServerTool) Register(s *mcp.Server) {
	t.register(s)
}

// Toolset is a named group of tools that is enabled or disabled as a unit.
type Toolset struct {
	Name        string
	Description string
	Enabled     bool
	tools       []ServerTool
}

func NewToolset(name string, description string) *Toolset {
	return &Toolset{
		Name:        name,
		Description: description,
	}
}

func (t *Toolset) AddTools(tools ...ServerTool) *Toolset {
	t.tools = append(t.tools, tools...)
	return t
}

// GetActiveTools returns the tools of an enabled toolset, nil otherwise.
func (t *Toolset) GetActiveTools() []ServerTool {
	if !t.Enabled {
		return nil
	}
	return t.tools
}

func (t *Toolset) GetAvailableTools() []ServerTool {
	return t.tools
}

func (t *Toolset) RegisterTools(s *mcp.Server) {
	for _, tool := range t.GetActiveTools() {
		tool.Register(s)
	}
}

type ToolsetGroup struct {
	Toolsets     map[string]*Toolset
	everythingOn bool
}

func NewToolsetGroup() *ToolsetGroup {
	return &ToolsetGroup{
		Toolsets: make(map[string]*Toolset),
	}
}

func (tg *ToolsetGroup) AddToolset(ts *Toolset) {
	tg.Toolsets[ts.Name] = ts
}

func (tg *ToolsetGroup) IsEnabled(name string) bool {
	if tg.everythingOn {
		return true
	}

	toolset, exists := tg.Toolsets[name]
	if !exists {
		return false
	}
	return toolset.Enabled
}

type EnableToolsetsOptions struct {
	ErrorOnUnknown bool
}

// EnableToolsets enables the named toolsets. The special name "all" enables
// every toolset in the group.
func (tg *ToolsetGroup) EnableToolsets(names []string, options *EnableToolsetsOptions) error {
	if options == nil {
		options = &EnableToolsetsOptions{}
	}

	for _, name := range names {
		if name == "all" {
			tg.everythingOn = true
			break
		}
		err := tg.EnableToolset(name)
		if err != nil && options.ErrorOnUnknown {
			return err
		}
	}
	if tg.everythingOn {
		for name := range tg.Toolsets {
			if err := tg.EnableToolset(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tg *ToolsetGroup) EnableToolset(name string) error {
	toolset, exists := tg.Toolsets[name]
	if !exists {
		return NewToolsetDoesNotExistError(name)
	}
	toolset.Enabled = true
	return nil
}

func (tg *ToolsetGroup) GetToolset(name string) (*Toolset, error) {
	toolset, exists := tg.Toolsets[name]
	if !exists {
		return nil, NewToolsetDoesNotExistError(name)
	}
	return toolset, nil
}

// ToolsetNames returns the names of all toolsets in sorted order.
func (tg *ToolsetGroup) ToolsetNames() []string {
	names := make([]string, 0, len(tg.Toolsets))
	for name := range tg.Toolsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveTools returns the tools of all enabled toolsets, ordered by toolset
// name and then by registration order.
func (tg *ToolsetGroup) ActiveTools() []ServerTool {
	var tools []ServerTool
	for _, name := range tg.ToolsetNames() {
		tools = append(tools, tg.Toolsets[name].GetActiveTools()...)
	}
	return tools
}

// FindToolByName searches all toolsets (enabled or disabled) for a tool by name.
// Returns the tool, its parent toolset name, and an error if not found.
func (tg *ToolsetGroup) FindToolByName(toolName string) (*ServerTool, string, error) {
	for _, toolsetName := range tg.ToolsetNames() {
		for _, tool := range tg.Toolsets[toolsetName].tools {
			if tool.Tool.Name == toolName {
				return &tool, toolsetName, nil
			}
		}
	}
	return nil, "", NewToolDoesNotExistError(toolName)
}

// Subset returns a new group sharing tool definitions with tg in which only
// the named toolsets that are enabled in tg are enabled. Unknown names are
// skipped. tg is not modified.
func (tg *ToolsetGroup) Subset(names []string) *ToolsetGroup {
	sub := NewToolsetGroup()
	for name, ts := range tg.Toolsets {
		clone := *ts
		clone.Enabled = false
		sub.Toolsets[name] = &clone
	}
	for _, name := range names {
		if name == "all" {
			for n, ts := range sub.Toolsets {
				ts.Enabled = tg.IsEnabled(n)
			}
			return sub
		}
		if ts, ok := sub.Toolsets[name]; ok {
			ts.Enabled = tg.IsEnabled(name)
		}
	}
	return sub
}

func (tg *ToolsetGroup) RegisterAll(s *mcp.Server) {
	for _, name := range tg.ToolsetNames() {
		tg.Toolsets[name].RegisterTools(s)
	}
}
