package gesture

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTokens   = 3
	maxCleanLen = 50
)

// CleanText strips everything except word characters, apostrophes,
// hyphens and whitespace, then trims the result. This normalizes a raw
// selection before validity checks and before it becomes a candidate.
func CleanText(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r), r == '_',
			r == '\'', r == '-', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// IsValidWord reports whether a selection is worth capturing: after
// cleaning it must be 1-50 characters, at most three whitespace-separated
// tokens, and contain at least one Latin letter. This keeps captures to
// single words or short phrases and rejects punctuation-only or CJK-only
// selections.
func IsValidWord(text string) bool {
	clean := CleanText(text)
	if clean == "" {
		return false
	}
	if len(strings.Fields(clean)) > maxTokens {
		return false
	}
	if utf8.RuneCountInString(clean) > maxCleanLen {
		return false
	}
	for _, r := range clean {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// isWordChar matches the characters a double click expands across:
// letters plus internal apostrophes and hyphens.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\'' || r == '-'
}

// ExpandWordAt widens the clicked position to its enclosing word
// boundary, scanning left and right through word characters. It returns
// the expanded token, or an empty string when the position does not sit
// on a word.
func ExpandWordAt(text string, pos int) string {
	runes := []rune(text)
	if pos < 0 || pos >= len(runes) {
		return ""
	}

	start, end := pos, pos
	for start > 0 && isWordChar(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordChar(runes[end]) {
		end++
	}
	return string(runes[start:end])
}
