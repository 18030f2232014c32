package selection

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/github/selective-mcp-server/pkg/http/mark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		absent   bool
	}{
		{
			name:   "empty string",
			input:  "",
			absent: true,
		},
		{
			name:   "whitespace only",
			input:  "   ",
			absent: true,
		},
		{
			name:   "only separators",
			input:  "/,/",
			absent: true,
		},
		{
			name:   "separators and blanks",
			input:  " / , ",
			absent: true,
		},
		{
			name:     "single name",
			input:    "tool1",
			expected: []string{"tool1"},
		},
		{
			name:     "slash separated",
			input:    "tool1/tool2/tool3",
			expected: []string{"tool1", "tool2", "tool3"},
		},
		{
			name:     "comma separated",
			input:    "tool1,tool2,tool3",
			expected: []string{"tool1", "tool2", "tool3"},
		},
		{
			name:     "mixed separators",
			input:    "a/b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "repeated separators",
			input:    "a//b,,c/,d",
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "whitespace trimmed",
			input:    " tool1 / tool2 ",
			expected: []string{"tool1", "tool2"},
		},
		{
			name:     "duplicates collapse",
			input:    "a/a/b",
			expected: []string{"a", "b"},
		},
		{
			name:     "leading underscore and digits",
			input:    "_private,tool_2",
			expected: []string{"_private", "tool_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Parse(tt.input)
			require.NoError(t, err)
			if tt.absent {
				assert.Nil(t, sel)
				return
			}
			require.NotNil(t, sel)
			assert.Equal(t, tt.expected, sel.Names())
		})
	}
}

func TestParse_InvalidNames(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid string
	}{
		{name: "leading digit", input: "1abc", invalid: "1abc"},
		{name: "dash", input: "a-b", invalid: "a-b"},
		{name: "inner space", input: "a b", invalid: "a b"},
		{name: "dot", input: "tool1,tool.2", invalid: "tool.2"},
		{name: "first violation is reported", input: "ok/bad-1/bad-2", invalid: "bad-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, sel)

			var nameErr *InvalidNameError
			require.True(t, errors.As(err, &nameErr))
			assert.Equal(t, tt.invalid, nameErr.Name)
			assert.ErrorIs(t, err, &InvalidNameError{})
			assert.ErrorIs(t, err, mark.ErrBadRequest)
			assert.Contains(t, err.Error(), tt.invalid)
		})
	}
}

func TestParse_OrderIrrelevant(t *testing.T) {
	a, err := Parse("t1,t2,t3")
	require.NoError(t, err)
	b, err := Parse("t3/t1,t2/t1")
	require.NoError(t, err)
	assert.Equal(t, a.Names(), b.Names())
}

func TestSelection_AbsentVersusEmpty(t *testing.T) {
	var absent *Selection
	empty := New()

	assert.True(t, absent.Has("anything"))
	assert.Equal(t, -1, absent.Len())
	assert.Nil(t, absent.Names())
	assert.Equal(t, "<all>", absent.String())

	assert.False(t, empty.Has("anything"))
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Names())
	assert.Equal(t, "", empty.String())
}

func TestParser_CachesSelections(t *testing.T) {
	p := NewParser(WithCacheName(fmt.Sprintf("selection-cache-test-%d", time.Now().UnixNano())))
	defer p.Flush()

	first, err := p.Parse("b,a")
	require.NoError(t, err)
	second, err := p.Parse("b,a")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"a", "b"}, second.Names())
}

func TestParser_AbsentIsCached(t *testing.T) {
	p := NewParser(WithCacheName(fmt.Sprintf("selection-cache-test-%d", time.Now().UnixNano())))
	defer p.Flush()

	sel, err := p.Parse("  ")
	require.NoError(t, err)
	assert.Nil(t, sel)

	sel, err = p.Parse("  ")
	require.NoError(t, err)
	assert.Nil(t, sel)
}

func TestParser_DoesNotCacheErrors(t *testing.T) {
	p := NewParser(WithCacheName(fmt.Sprintf("selection-cache-test-%d", time.Now().UnixNano())))
	defer p.Flush()

	_, err := p.Parse("a-b")
	require.Error(t, err)
	_, err = p.Parse("a-b")
	assert.ErrorIs(t, err, &InvalidNameError{})
}

func TestParser_DisabledCache(t *testing.T) {
	p := NewParser(WithTTL(0))

	first, err := p.Parse("a")
	require.NoError(t, err)
	second, err := p.Parse("a")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Names(), second.Names())
}

func TestParser_SkipsLongInputs(t *testing.T) {
	p := NewParser(WithCacheName(fmt.Sprintf("selection-cache-test-%d", time.Now().UnixNano())))
	defer p.Flush()

	long := strings.Repeat("a", MaxCachedInputLen) + ",b"
	first, err := p.Parse(long)
	require.NoError(t, err)
	second, err := p.Parse(long)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, first.Names(), second.Names())
}

func TestParser_MaxEntries(t *testing.T) {
	p := NewParser(
		WithCacheName(fmt.Sprintf("selection-cache-test-%d", time.Now().UnixNano())),
		WithMaxEntries(2),
	)
	defer p.Flush()

	for i := range 10 {
		sel, err := p.Parse(fmt.Sprintf("tool_%d", i))
		require.NoError(t, err)
		assert.True(t, sel.Has(fmt.Sprintf("tool_%d", i)))
	}
	assert.Equal(t, 2, p.Len())

	cached, err := p.Parse("tool_0")
	require.NoError(t, err)
	again, err := p.Parse("tool_0")
	require.NoError(t, err)
	assert.Same(t, cached, again, "entries added before the cap stay cached")

	overflow, err := p.Parse("tool_9")
	require.NoError(t, err)
	overflowAgain, err := p.Parse("tool_9")
	require.NoError(t, err)
	assert.NotSame(t, overflow, overflowAgain)
}
