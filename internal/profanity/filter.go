// Package profanity implements the content-safety filter that gates lookups.
// Substring terms are compiled into an Aho-Corasick automaton so a word is
// scanned once regardless of list size.
package profanity

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"verbum/internal/validation"
)

// Filter detects profane words. It is immutable after New and safe for
// concurrent use.
type Filter struct {
	enabled    bool
	words      map[string]struct{}
	allow      map[string]struct{}
	substrings []string
	automaton  aho.AhoCorasick
	built      bool
}

// New builds a filter from wl. When enabled is false IsBlocked always
// returns false, though ContainsProfanity still answers.
func New(enabled bool, wl WordList) *Filter {
	f := &Filter{
		enabled: enabled,
		words:   toSet(wl.Words),
		allow:   toSet(wl.Allow),
	}

	for term := range toSet(wl.Substrings) {
		f.substrings = append(f.substrings, term)
	}
	if len(f.substrings) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		f.automaton = builder.Build(f.substrings)
		f.built = true
	}

	return f
}

// Enabled reports whether the filter blocks anything.
func (f *Filter) Enabled() bool {
	return f.enabled
}

// IsBlocked reports whether w must be rejected before lookup.
func (f *Filter) IsBlocked(w validation.SanitizedWord) bool {
	return f.enabled && f.ContainsProfanity(w.String())
}

// ContainsProfanity reports whether text matches the word list, ignoring
// the enabled flag.
func (f *Filter) ContainsProfanity(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	if _, ok := f.allow[text]; ok {
		return false
	}

	if _, ok := f.words[text]; ok {
		return true
	}
	for _, part := range strings.FieldsFunc(text, isWordSeparator) {
		if _, ok := f.words[part]; ok {
			return true
		}
	}

	if f.built {
		return len(f.automaton.FindAll(text)) > 0
	}
	return false
}

// Size returns the number of distinct terms.
func (f *Filter) Size() int {
	return len(f.words) + len(f.substrings)
}

func isWordSeparator(r rune) bool {
	return r == '-' || r == '\'' || r == ' '
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
