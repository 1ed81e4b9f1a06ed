package util

import "strings"

const maxErrorLen = 1000

// SanitizeText removes bytes and control characters that Postgres text columns
// reject (especially NUL / 0x00).
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	// NUL bytes are not valid in PostgreSQL text.
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}

// SanitizeErrorMessage prepares a failure description for persistence:
// line breaks are flattened to spaces and the result is capped at 1000
// characters so a runaway provider error cannot bloat the job record.
func SanitizeErrorMessage(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = SanitizeText(s)
	runes := []rune(s)
	if len(runes) > maxErrorLen {
		return string(runes[:maxErrorLen])
	}
	return s
}
