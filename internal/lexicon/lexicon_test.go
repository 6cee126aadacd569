package lexicon

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verbum/internal/testutil"
	"verbum/internal/validation"
)

func newAdapter(t *testing.T, db Database, cacheSize int) *Adapter {
	t.Helper()
	a, err := NewAdapter(db, cacheSize)
	require.NoError(t, err)
	return a
}

func TestLookupBuiltin(t *testing.T) {
	a := newAdapter(t, builtin(t), 16)
	ctx := context.Background()

	tests := []struct {
		word       string
		synonyms   []string
		definition string
	}{
		{
			word:       "happy",
			synonyms:   []string{"felicitous", "glad", "well-chosen"},
			definition: "enjoying or showing or marked by joy or pleasure",
		},
		{
			word: "dog",
			synonyms: []string{
				"Canis familiaris", "chase", "chase after", "domestic dog", "frump",
				"give chase", "go after", "tag", "tail", "track", "trail",
			},
			definition: "a member of the genus Canis (probably descended from the common wolf) that has been domesticated by man since prehistoric times; occurs in many breeds",
		},
		{
			word:       "big",
			synonyms:   []string{"bad", "large", "severe", "swelled", "vainglorious"},
			definition: "above average in size or number or quantity or magnitude or extent",
		},
		{
			word:       "car",
			synonyms:   []string{"auto", "automobile", "machine", "motorcar"},
			definition: "a motor vehicle with four wheels; usually propelled by an internal combustion engine",
		},
		{
			word:       "xyzabcnotaword",
			synonyms:   []string{},
			definition: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			res, err := a.Lookup(ctx, testutil.Word(t, tt.word))
			require.NoError(t, err)
			assert.Equal(t, tt.synonyms, res.Synonyms)
			assert.Equal(t, tt.definition, res.Definition)
		})
	}
}

func TestLookupNeverReturnsQueriedWord(t *testing.T) {
	a := newAdapter(t, builtin(t), 0)
	for _, w := range []string{"happy", "dog", "run", "good", "glad", "fast", "quick", "sad", "house", "big", "small"} {
		res, err := a.Lookup(context.Background(), testutil.Word(t, w))
		require.NoError(t, err)
		require.NotEmpty(t, res.Synonyms, w)
		for _, syn := range res.Synonyms {
			assert.False(t, strings.EqualFold(syn, w), "%q listed as its own synonym", w)
		}
	}
}

func TestLookupInflectedWordKeepsBaseForm(t *testing.T) {
	a := newAdapter(t, builtin(t), 0)

	res, err := a.Lookup(context.Background(), testutil.Word(t, "ran"))
	require.NoError(t, err)
	assert.Contains(t, res.Synonyms, "run")
	assert.Contains(t, res.Synonyms, "turn tail")
	assert.Equal(t, "move fast by using one's feet, with one foot off the ground at any given time", res.Definition)
}

func TestBuildResult(t *testing.T) {
	synsets := []Synset{
		{Lemmas: []string{"Happy", "glad"}, Gloss: `first sense; "example"`},
		{Lemmas: []string{"glad", "Glad", "well_chosen", "HAPPY"}, Gloss: "second sense"},
	}

	res := BuildResult("happy", synsets)
	assert.Equal(t, "first sense", res.Definition)
	assert.Equal(t, []string{"Glad", "glad", "well chosen"}, res.Synonyms, "case-sensitive dedupe, self excluded")
	assert.False(t, res.Empty())

	empty := BuildResult("nothing", nil)
	assert.NotNil(t, empty.Synonyms)
	assert.True(t, empty.Empty())
}

type fakeDB struct {
	calls   int
	synsets []Synset
	err     error
	panics  bool
}

func (f *fakeDB) Synsets(string) ([]Synset, error) {
	f.calls++
	if f.panics {
		panic("corrupt database")
	}
	return f.synsets, f.err
}

func TestLookupFailuresDegradeToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("database error", func(t *testing.T) {
		dbErr := errors.New("disk on fire")
		a := newAdapter(t, &fakeDB{err: dbErr}, 0)
		res, err := a.Lookup(ctx, testutil.Word(t, "happy"))
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, []string{}, res.Synonyms)
		assert.Equal(t, "", res.Definition)
	})

	t.Run("database panic", func(t *testing.T) {
		a := newAdapter(t, &fakeDB{panics: true}, 0)
		res, err := a.Lookup(ctx, testutil.Word(t, "happy"))
		assert.ErrorContains(t, err, "panic")
		assert.True(t, res.Empty())
		assert.NotNil(t, res.Synonyms)
	})

	t.Run("no database", func(t *testing.T) {
		a := newAdapter(t, nil, 0)
		assert.False(t, a.Ready())
		res, err := a.Lookup(ctx, testutil.Word(t, "happy"))
		assert.ErrorIs(t, err, ErrNotLoaded)
		assert.True(t, res.Empty())
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		a := newAdapter(t, &fakeDB{}, 0)
		_, err := a.Lookup(cctx, testutil.Word(t, "happy"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero word", func(t *testing.T) {
		db := &fakeDB{}
		a := newAdapter(t, db, 0)
		res, err := a.Lookup(ctx, validation.SanitizedWord{})
		require.NoError(t, err)
		assert.True(t, res.Empty())
		assert.Equal(t, 0, db.calls)
	})
}

func TestLookupCache(t *testing.T) {
	db := &fakeDB{synsets: []Synset{{Lemmas: []string{"happy", "glad"}, Gloss: "joyful"}}}
	a := newAdapter(t, db, 8)
	ctx := context.Background()

	first, err := a.Lookup(ctx, testutil.Word(t, "happy"))
	require.NoError(t, err)
	first.Synonyms[0] = "mutated"

	second, err := a.Lookup(ctx, testutil.Word(t, "happy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"glad"}, second.Synonyms, "cached copy is isolated from callers")
	assert.Equal(t, 1, db.calls)
}
