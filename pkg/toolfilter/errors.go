package toolfilter

import (
	"fmt"
	"strings"

	"github.com/github/selective-mcp-server/pkg/http/mark"
)

// UnknownToolError is returned under Strict when a selection names tools the
// server does not have. Both lists are sorted.
type UnknownToolError struct {
	Invalid   []string
	Available []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("requested tools not found: %s. Available tools: %s",
		strings.Join(e.Invalid, ", "), strings.Join(e.Available, ", "))
}

func (e *UnknownToolError) Is(target error) bool {
	if target == nil {
		return false
	}
	if _, ok := target.(*UnknownToolError); ok {
		return true
	}
	return false
}

// Unwrap marks the error as not found.
func (e *UnknownToolError) Unwrap() error {
	return mark.ErrNotFound
}

func NewUnknownToolError(invalid, available []string) *UnknownToolError {
	return &UnknownToolError{Invalid: invalid, Available: available}
}
