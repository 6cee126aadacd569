package validation

import (
	"errors"
	"strings"
)

// MaxWordLength is the longest word accepted after filtering.
const MaxWordLength = 50

// Sentinel errors returned by Screen.
var (
	ErrInvalidFormat = errors.New("invalid word format")
	ErrInappropriate = errors.New("inappropriate content")
)

// SanitizedWord is a lowercase word made only of ASCII letters, hyphens and
// apostrophes, 1 to MaxWordLength characters long. The zero value is not a
// valid word; only Sanitize produces non-zero values.
type SanitizedWord struct {
	s string
}

// String returns the word.
func (w SanitizedWord) String() string {
	return w.s
}

// IsZero reports whether w was never produced by Sanitize.
func (w SanitizedWord) IsZero() bool {
	return w.s == ""
}

// Sanitize normalizes raw input into a SanitizedWord. Disallowed characters
// are stripped rather than rejected, so "hello<script>" becomes "helloscript".
// It reports false when raw is not a string, or when the filtered result is
// empty or too long.
func Sanitize(raw any) (SanitizedWord, bool) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return SanitizedWord{}, false
	}

	cleaned := FilterChars(s)
	if cleaned == "" || len(cleaned) > MaxWordLength {
		return SanitizedWord{}, false
	}
	return SanitizedWord{s: cleaned}, true
}

// FilterChars trims s, drops every character outside [A-Za-z'-] and
// lowercases the rest. It applies no length or emptiness checks.
func FilterChars(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c == '-', c == '\'':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// IsSanitized reports whether s is already in sanitized form.
func IsSanitized(s string) bool {
	w, ok := Sanitize(s)
	return ok && w.s == s
}
