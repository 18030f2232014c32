package headers

import "strings"

// ParseCommaSeparated splits a comma-separated value, trims every element and
// drops the empty ones. It never returns nil.
func ParseCommaSeparated(value string) []string {
	result := []string{}
	for _, p := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
