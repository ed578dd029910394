package util

import "strings"

// SanitizeText removes NUL and other non-printing control characters that PDF
// extractors leave behind, keeping common whitespace.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	cleaned := strings.Map(func(ch rune) rune {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			return ch
		}
		if ch < 0x20 {
			return -1
		}
		return ch
	}, s)
	return strings.TrimSpace(cleaned)
}
