// internal/textutil/textutil.go
package textutil

import (
	"html"
	"strings"
	"unicode"
)

// Ellipsis is appended when Truncate has to cut.
const Ellipsis = "…"

// Truncate cuts s to at most max runes and appends a single ellipsis
// character. Strings at or under the cap come back unchanged. Cutting
// happens on rune boundaries, never inside a multi-byte sequence.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + Ellipsis
}

// CollapseWhitespace decodes HTML entities, collapses runs of whitespace
// (including newlines and tabs) to single spaces and trims the result.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = html.UnescapeString(s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// SplitLines splits newline-separated free text into trimmed, non-empty
// lines, preserving order. Duplicates are kept.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
