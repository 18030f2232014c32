package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/github/selective-mcp-server/pkg/builtin"
)

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path) //#nosec G304
	return string(b), err
}

func TestReplaceSection(t *testing.T) {
	content := "intro\n<!-- START AUTOMATED TOOLS -->\nold\n<!-- END AUTOMATED TOOLS -->\noutro\n"

	updated, err := replaceSection(content, "START AUTOMATED TOOLS", "END AUTOMATED TOOLS", "new")
	require.NoError(t, err)
	assert.Equal(t, "intro\n<!-- START AUTOMATED TOOLS -->\nnew\n<!-- END AUTOMATED TOOLS -->\noutro\n", updated)

	_, err = replaceSection("no markers", "START AUTOMATED TOOLS", "END AUTOMATED TOOLS", "new")
	require.Error(t, err)
}

func TestGenerateToolsDoc(t *testing.T) {
	group, err := builtin.DefaultToolsetGroup([]string{"all"})
	require.NoError(t, err)

	doc := generateToolsDoc(group)

	assert.Contains(t, doc, "<summary>Demo</summary>")
	assert.Contains(t, doc, "- **echo** - Echo")
	assert.Contains(t, doc, "- **add** - Add two numbers together")
	assert.Contains(t, doc, "  - `text`: The text to echo back (string, required)")
	assert.Contains(t, doc, "  - `a`: First operand (integer, required)")
	assert.Less(t, strings.Index(doc, "**add**"), strings.Index(doc, "**echo**"), "tools are sorted by name")
}

func TestGenerateReadmeDocs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Tools\n<!-- START AUTOMATED TOOLS -->\n<!-- END AUTOMATED TOOLS -->\n"), 0600))

	require.NoError(t, generateReadmeDocs(path))

	content, err := readFile(path)
	require.NoError(t, err)
	assert.Contains(t, content, "- **multiply**")
}

func TestIndentMultilineDescription(t *testing.T) {
	assert.Equal(t, "one", indentMultilineDescription("one", "  "))
	assert.Equal(t, "one\n  two\n  three", indentMultilineDescription("one\ntwo\nthree", "  "))
}

