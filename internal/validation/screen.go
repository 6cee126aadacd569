package validation

// ContentFilter decides whether text is inappropriate.
type ContentFilter interface {
	Enabled() bool
	ContainsProfanity(text string) bool
	IsBlocked(w SanitizedWord) bool
}

// Screen runs raw input through sanitization and the content filter.
type Screen struct {
	filter ContentFilter
}

// NewScreen creates a screen. A nil filter lets every word through.
func NewScreen(filter ContentFilter) *Screen {
	return &Screen{filter: filter}
}

// Check returns the sanitized word, ErrInappropriate when the content filter
// blocks it, or ErrInvalidFormat for any other rejection.
//
// The profanity check runs on the character-filtered input before the
// emptiness and length checks, so an over-long profane input still reports
// ErrInappropriate.
func (s *Screen) Check(raw any) (SanitizedWord, error) {
	if str, ok := raw.(string); ok && s.filterEnabled() {
		if filtered := FilterChars(str); filtered != "" && s.filter.ContainsProfanity(filtered) {
			return SanitizedWord{}, ErrInappropriate
		}
	}

	word, ok := Sanitize(raw)
	if !ok {
		return SanitizedWord{}, ErrInvalidFormat
	}
	if s.filter != nil && s.filter.IsBlocked(word) {
		return SanitizedWord{}, ErrInappropriate
	}
	return word, nil
}

func (s *Screen) filterEnabled() bool {
	return s.filter != nil && s.filter.Enabled()
}
