package logging

import (
	"regexp"
)

const (
	// MaxValueLogLength is the maximum length of a caller-supplied value to log
	MaxValueLogLength = 64
)

// Matches control characters that could forge extra log lines
var controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// TruncateForLog strips control characters from a caller-supplied value and
// truncates it to MaxValueLogLength. Use this before logging request input
// such as unknown schema keys.
func TruncateForLog(value string) string {
	if value == "" {
		return ""
	}
	sanitized := controlCharPattern.ReplaceAllString(value, "?")
	return TruncateString(sanitized, MaxValueLogLength)
}

// TruncateAllForLog applies TruncateForLog to every value.
func TruncateAllForLog(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = TruncateForLog(v)
	}
	return out
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
