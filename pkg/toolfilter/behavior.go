package toolfilter

import (
	"fmt"
	"strings"
)

// ErrorBehavior decides what happens when a selection names tools the server
// does not have.
type ErrorBehavior int

const (
	// Ignore drops unknown names and lists the known ones.
	Ignore ErrorBehavior = iota
	// Strict rejects the listing with an UnknownToolError.
	Strict
	// Warn lists the known tools plus a synthetic notice tool.
	Warn
	// Fallback disables filtering and lists every tool.
	Fallback
)

var behaviorNames = [...]string{
	Ignore:   "ignore",
	Strict:   "strict",
	Warn:     "warn",
	Fallback: "fallback",
}

func (b ErrorBehavior) String() string {
	if b >= 0 && int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return fmt.Sprintf("ErrorBehavior(%d)", int(b))
}

// ParseErrorBehavior maps a case-insensitive name to an ErrorBehavior.
// The empty string selects Ignore.
func ParseErrorBehavior(s string) (ErrorBehavior, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Ignore, nil
	}
	for i, n := range behaviorNames {
		if n == name {
			return ErrorBehavior(i), nil
		}
	}
	return Ignore, fmt.Errorf("unknown error behavior %q, expected one of %s", s, strings.Join(behaviorNames[:], ", "))
}
