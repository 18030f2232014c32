// Package selection parses the set of tool names a request is restricted to.
//
// A nil *Selection means no restriction was requested. A non-nil Selection
// with no names is a valid restriction that matches nothing.
package selection

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/github/selective-mcp-server/pkg/http/mark"
)

var (
	separatorRegexp = regexp.MustCompile(`[/,]+`)
	nameRegexp      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// InvalidNameError reports a segment that is not a valid tool name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid tool name: '%s'. Tool names must start with a letter or underscore and contain only alphanumeric characters and underscores", e.Name)
}

func (e *InvalidNameError) Is(target error) bool {
	if target == nil {
		return false
	}
	if _, ok := target.(*InvalidNameError); ok {
		return true
	}
	return false
}

// Unwrap marks the error as a client error.
func (e *InvalidNameError) Unwrap() error {
	return mark.ErrBadRequest
}

func NewInvalidNameError(name string) *InvalidNameError {
	return &InvalidNameError{Name: name}
}

// Selection is an immutable set of tool names.
type Selection struct {
	names map[string]struct{}
}

// New returns a selection holding names. New() is the empty selection.
func New(names ...string) *Selection {
	s := &Selection{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Has reports whether name is selected. An absent selection has every name.
func (s *Selection) Has(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s.names[name]
	return ok
}

// Len returns the number of selected names, or -1 for an absent selection.
func (s *Selection) Len() int {
	if s == nil {
		return -1
	}
	return len(s.names)
}

// Names returns the selected names in sorted order.
func (s *Selection) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Selection) String() string {
	if s == nil {
		return "<all>"
	}
	return strings.Join(s.Names(), ",")
}

// Parse splits raw on runs of '/' and ',' and validates every non-blank
// segment. It returns nil when raw contains no names at all.
//
//	Parse("tool1/tool2,tool3") // {tool1, tool2, tool3}
//	Parse(" ")                 // nil
func Parse(raw string) (*Selection, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := separatorRegexp.Split(raw, -1)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	for _, n := range names {
		if !nameRegexp.MatchString(n) {
			return nil, NewInvalidNameError(n)
		}
	}
	return New(names...), nil
}
