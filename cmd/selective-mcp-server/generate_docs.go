package main

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/github/selective-mcp-server/pkg/builtin"
	"github.com/github/selective-mcp-server/pkg/toolsets"
)

var generateDocsCmd = &cobra.Command{
	Use:   "generate-docs",
	Short: "Generate documentation for tools and toolsets",
	Long:  `Generate the automated sections of README.md with current tool and toolset information.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return generateReadmeDocs("README.md")
	},
}

func init() {
	rootCmd.AddCommand(generateDocsCmd)
}

func generateReadmeDocs(readmePath string) error {
	// Every toolset is enabled so the docs cover the whole catalogue
	group, err := builtin.DefaultToolsetGroup([]string{"all"})
	if err != nil {
		return err
	}

	// #nosec G304 - readmePath is fixed by the command, not user input
	content, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("failed to read README.md: %w", err)
	}

	updatedContent, err := replaceSection(string(content), "START AUTOMATED TOOLS", "END AUTOMATED TOOLS", generateToolsDoc(group))
	if err != nil {
		return err
	}

	if err := os.WriteFile(readmePath, []byte(updatedContent), 0600); err != nil {
		return fmt.Errorf("failed to write README.md: %w", err)
	}
	fmt.Printf("Successfully updated %s with automated documentation\n", readmePath)
	return nil
}

func generateToolsDoc(group *toolsets.ToolsetGroup) string {
	var buf strings.Builder

	for _, name := range group.ToolsetNames() {
		ts, err := group.GetToolset(name)
		if err != nil {
			continue
		}
		tools := slices.Clone(ts.GetAvailableTools())
		if len(tools) == 0 {
			continue
		}
		sort.Slice(tools, func(a, b int) bool {
			return tools[a].Tool.Name < tools[b].Tool.Name
		})

		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		fmt.Fprintf(&buf, "<details>\n\n<summary>%s</summary>\n\n", formatToolsetName(name))
		for j, tool := range tools {
			if j > 0 {
				buf.WriteString("\n\n")
			}
			writeToolDoc(&buf, tool.Tool)
		}
		buf.WriteString("\n\n</details>")
	}

	return buf.String()
}

func formatToolsetName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func writeToolDoc(buf *strings.Builder, tool *mcp.Tool) {
	title := tool.Title
	if title == "" && tool.Annotations != nil {
		title = tool.Annotations.Title
	}
	if title == "" {
		title = tool.Description
	}
	fmt.Fprintf(buf, "- **%s** - %s\n", tool.Name, title)

	schema, ok := tool.InputSchema.(*jsonschema.Schema)
	if !ok || schema == nil || len(schema.Properties) == 0 {
		buf.WriteString("  - No parameters required")
		return
	}

	// Sort parameter names for deterministic output
	paramNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		paramNames = append(paramNames, propName)
	}
	sort.Strings(paramNames)

	for i, propName := range paramNames {
		prop := schema.Properties[propName]
		requiredStr := "optional"
		if slices.Contains(schema.Required, propName) {
			requiredStr = "required"
		}

		typeStr := prop.Type
		if prop.Type == "array" {
			typeStr = "array"
			if prop.Items != nil {
				typeStr = prop.Items.Type + "[]"
			}
		}

		description := indentMultilineDescription(prop.Description, "    ")
		fmt.Fprintf(buf, "  - `%s`: %s (%s, %s)", propName, description, typeStr, requiredStr)
		if i < len(paramNames)-1 {
			buf.WriteString("\n")
		}
	}
}

// indentMultilineDescription adds indent to every line after the first so
// multi-line descriptions stay inside their markdown list item.
func indentMultilineDescription(description, indent string) string {
	if !strings.Contains(description, "\n") {
		return description
	}
	lines := strings.Split(description, "\n")
	return strings.Join(lines, "\n"+indent)
}

func replaceSection(content, startMarker, endMarker, newContent string) (string, error) {
	start := fmt.Sprintf("<!-- %s -->", startMarker)
	end := fmt.Sprintf("<!-- %s -->", endMarker)

	startIdx := strings.Index(content, start)
	endIdx := strings.Index(content, end)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("markers not found: %s / %s", start, end)
	}

	var buf strings.Builder
	buf.WriteString(content[:startIdx])
	buf.WriteString(start)
	buf.WriteString("\n")
	buf.WriteString(newContent)
	buf.WriteString("\n")
	buf.WriteString(content[endIdx:])
	return buf.String(), nil
}
