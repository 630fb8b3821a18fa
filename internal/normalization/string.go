package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// TrimInputString keeps the caller's casing; used for display names and
// free-text content where lowercasing would mangle the input.
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
