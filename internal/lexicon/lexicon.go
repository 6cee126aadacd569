// Package lexicon adapts the WordNet lexical database into synonym and
// definition lookups.
package lexicon

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"verbum/internal/validation"
)

// ErrNotLoaded is returned when the lexical database is unavailable.
var ErrNotLoaded = errors.New("lexical database not loaded")

// Database returns every sense of a word, most common first.
type Database interface {
	Synsets(word string) ([]Synset, error)
}

// Result is the outcome of a lookup.
type Result struct {
	Synonyms   []string `json:"synonyms"`
	Definition string   `json:"definition"`
}

// Empty reports whether the lookup found nothing at all.
func (r Result) Empty() bool {
	return len(r.Synonyms) == 0 && r.Definition == ""
}

func emptyResult() Result {
	return Result{Synonyms: []string{}}
}

// BuildResult derives synonyms and a definition for word from its senses.
// The definition comes from the first sense. Synonyms are every lemma of
// every sense except word itself (case-insensitively), with underscores
// turned into spaces, deduplicated and sorted.
func BuildResult(word string, synsets []Synset) Result {
	res := emptyResult()
	if len(synsets) == 0 {
		return res
	}

	res.Definition = synsets[0].Definition()

	seen := make(map[string]bool)
	for _, ss := range synsets {
		for _, lemma := range ss.Lemmas {
			name := strings.Join(strings.FieldsFunc(lemma, func(r rune) bool { return r == '_' || r == ' ' }), " ")
			if name == "" || strings.EqualFold(name, word) || seen[name] {
				continue
			}
			seen[name] = true
			res.Synonyms = append(res.Synonyms, name)
		}
	}
	slices.Sort(res.Synonyms)
	return res
}

// Adapter answers lookups against a Database, caching results.
type Adapter struct {
	db    Database
	cache *lru.Cache[string, Result]
}

// NewAdapter creates an adapter. A cacheSize of zero disables caching.
func NewAdapter(db Database, cacheSize int) (*Adapter, error) {
	a := &Adapter{db: db}
	if cacheSize > 0 {
		cache, err := lru.New[string, Result](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create lookup cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

// Ready reports whether a database is attached.
func (a *Adapter) Ready() bool {
	return a != nil && a.db != nil
}

// Lookup returns synonyms and a definition for w. On failure it returns the
// empty result alongside the error; callers log the error and carry on with
// the empty result.
func (a *Adapter) Lookup(ctx context.Context, w validation.SanitizedWord) (res Result, err error) {
	word := w.String()
	if word == "" {
		return emptyResult(), nil
	}
	if err := ctx.Err(); err != nil {
		return emptyResult(), err
	}
	if !a.Ready() {
		return emptyResult(), ErrNotLoaded
	}

	if a.cache != nil {
		if cached, ok := a.cache.Get(word); ok {
			return Result{Synonyms: slices.Clone(cached.Synonyms), Definition: cached.Definition}, nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = emptyResult(), fmt.Errorf("lookup %q: panic: %v", word, r)
		}
	}()

	synsets, err := a.db.Synsets(word)
	if err != nil {
		return emptyResult(), fmt.Errorf("lookup %q: %w", word, err)
	}

	res = BuildResult(word, synsets)
	if a.cache != nil {
		a.cache.Add(word, Result{Synonyms: slices.Clone(res.Synonyms), Definition: res.Definition})
	}
	return res, nil
}
