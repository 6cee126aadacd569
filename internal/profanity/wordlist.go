package profanity

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var builtinWords string

// WordList is a set of profanity terms.
type WordList struct {
	Words      []string // Matched against the whole word and its hyphen/apostrophe parts
	Substrings []string // Matched anywhere inside the word
	Allow      []string // Never blocked
}

// DefaultWordList returns the built-in word list.
func DefaultWordList() WordList {
	wl, err := ParseWordList(strings.NewReader(builtinWords))
	if err != nil {
		panic(fmt.Sprintf("profanity: invalid built-in word list: %v", err))
	}
	return wl
}

// ParseWordList reads one term per line. Blank lines and lines starting with
// # are skipped, a leading * marks a substring term, a leading ! an allowed word.
func ParseWordList(r io.Reader) (WordList, error) {
	var wl WordList

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line[0] {
		case '*':
			if term := strings.TrimSpace(line[1:]); term != "" {
				wl.Substrings = append(wl.Substrings, term)
			}
		case '!':
			if term := strings.TrimSpace(line[1:]); term != "" {
				wl.Allow = append(wl.Allow, term)
			}
		default:
			wl.Words = append(wl.Words, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return WordList{}, fmt.Errorf("read word list at line %d: %w", lineNum, err)
	}
	return wl, nil
}

// LoadWordListFile reads a word list file in ParseWordList format.
func LoadWordListFile(path string) (WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return WordList{}, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer f.Close()
	return ParseWordList(f)
}

// Merge returns the union of wl and other.
func (wl WordList) Merge(other WordList) WordList {
	return WordList{
		Words:      append(append([]string(nil), wl.Words...), lower(other.Words)...),
		Substrings: append(append([]string(nil), wl.Substrings...), lower(other.Substrings)...),
		Allow:      append(append([]string(nil), wl.Allow...), lower(other.Allow)...),
	}
}

func lower(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
