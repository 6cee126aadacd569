package lexicon

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

//go:embed dict
var builtinDict embed.FS

// POS is a WordNet part of speech.
type POS string

// Parts of speech, in the order senses are returned.
const (
	Noun      POS = "n"
	Verb      POS = "v"
	Adjective POS = "a"
	Adverb    POS = "r"
)

var posOrder = []POS{Noun, Verb, Adjective, Adverb}

var posFiles = map[POS]string{
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adj",
	Adverb:    "adv",
}

// Synset is one sense: a group of interchangeable lemmas with a gloss.
type Synset struct {
	Offset string
	POS    POS
	Lemmas []string // Raw lemma names, multi-word lemmas joined by underscores
	Gloss  string
}

// Definition returns the gloss without its usage examples: the
// semicolon-separated parts that start with a double quote.
func (s Synset) Definition() string {
	var parts []string
	for part := range strings.SplitSeq(s.Gloss, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, `"`) {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// WordNet is an in-memory WordNet database loaded from the dict/ file format.
// It is read-only after loading and safe for concurrent use.
type WordNet struct {
	index      map[POS]map[string][]string
	synsets    map[POS]map[string]*Synset
	exceptions map[POS]map[string][]string
}

// Builtin loads the small dictionary embedded in the binary.
func Builtin() (*WordNet, error) {
	sub, err := fs.Sub(builtinDict, "dict")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads a WordNet dict/ directory from disk.
func LoadDir(dir string) (*WordNet, error) {
	return Load(os.DirFS(dir))
}

// Load reads index.*, data.* and *.exc files from fsys. Parts of speech whose
// index file is absent are skipped; at least one must be present.
func Load(fsys fs.FS) (*WordNet, error) {
	wn := &WordNet{
		index:      make(map[POS]map[string][]string),
		synsets:    make(map[POS]map[string]*Synset),
		exceptions: make(map[POS]map[string][]string),
	}

	loaded := 0
	for _, pos := range posOrder {
		name := posFiles[pos]

		index, err := readIndex(fsys, "index."+name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		synsets, err := readData(fsys, "data."+name, pos)
		if err != nil {
			return nil, err
		}

		exceptions, err := readExceptions(fsys, name+".exc")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		wn.index[pos] = index
		wn.synsets[pos] = synsets
		wn.exceptions[pos] = exceptions
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w: no index files found", ErrNotLoaded)
	}
	return wn, nil
}

// Synsets returns every sense of word across all parts of speech, trying
// base forms of inflected words.
func (wn *WordNet) Synsets(word string) ([]Synset, error) {
	if wn == nil {
		return nil, ErrNotLoaded
	}

	lemma := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), " ", "_")
	if lemma == "" {
		return nil, nil
	}

	var out []Synset
	seen := make(map[string]bool)
	for _, pos := range posOrder {
		for _, form := range wn.morphy(lemma, pos) {
			for _, offset := range wn.index[pos][form] {
				key := string(pos) + offset
				ss, ok := wn.synsets[pos][offset]
				if !ok || seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, *ss)
			}
		}
	}
	return out, nil
}

// Lemmas returns the number of distinct lemmas in the index.
func (wn *WordNet) Lemmas() int {
	n := 0
	for _, idx := range wn.index {
		n += len(idx)
	}
	return n
}

func readLines(fsys fs.FS, name string, fn func(lineNum int, line string) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		// License header lines start with spaces.
		if line == "" || line[0] == ' ' {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// readIndex parses lines of the form
// lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt synset_offset...
func readIndex(fsys fs.FS, name string) (map[string][]string, error) {
	index := make(map[string][]string)
	err := readLines(fsys, name, func(_ int, line string) error {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return fmt.Errorf("short index line")
		}
		synsetCnt, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad synset_cnt %q", fields[2])
		}
		pCnt, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("bad p_cnt %q", fields[3])
		}
		start := 4 + pCnt + 2
		if start+synsetCnt > len(fields) {
			return fmt.Errorf("expected %d offsets", synsetCnt)
		}
		index[fields[0]] = append([]string(nil), fields[start:start+synsetCnt]...)
		return nil
	})
	return index, err
}

// readData parses lines of the form
// synset_offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] ... | gloss
func readData(fsys fs.FS, name string, pos POS) (map[string]*Synset, error) {
	synsets := make(map[string]*Synset)
	err := readLines(fsys, name, func(_ int, line string) error {
		columns, gloss, _ := strings.Cut(line, "|")
		fields := strings.Fields(columns)
		if len(fields) < 4 {
			return fmt.Errorf("short data line")
		}
		wCnt, err := strconv.ParseUint(fields[3], 16, 16)
		if err != nil {
			return fmt.Errorf("bad w_cnt %q", fields[3])
		}
		if 4+int(wCnt)*2 > len(fields) {
			return fmt.Errorf("expected %d words", wCnt)
		}

		ss := &Synset{
			Offset: fields[0],
			POS:    pos,
			Gloss:  strings.TrimSpace(gloss),
			Lemmas: make([]string, 0, wCnt),
		}
		for i := 0; i < int(wCnt); i++ {
			ss.Lemmas = append(ss.Lemmas, stripMarker(fields[4+i*2]))
		}
		synsets[ss.Offset] = ss
		return nil
	})
	return synsets, err
}

// readExceptions parses "inflected base [base...]" lines.
func readExceptions(fsys fs.FS, name string) (map[string][]string, error) {
	exc := make(map[string][]string)
	err := readLines(fsys, name, func(_ int, line string) error {
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			exc[fields[0]] = append([]string(nil), fields[1:]...)
		}
		return nil
	})
	return exc, err
}

// stripMarker removes adjective position markers such as "(a)" or "(ip)".
func stripMarker(word string) string {
	if i := strings.IndexByte(word, '('); i > 0 && strings.HasSuffix(word, ")") {
		return word[:i]
	}
	return word
}
