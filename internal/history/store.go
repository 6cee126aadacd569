// Package history tracks how often each word has been looked up, keeps the
// table bounded by periodically trimming it to the most searched words, and
// persists it through a pluggable Backend.
package history

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"verbum/internal/logger"
	"verbum/internal/validation"
)

const (
	DefaultMaxEntries      = 100
	DefaultCleanupInterval = 300 * time.Second
	DefaultSnapshotLimit   = 50
)

// Entry is one word and how many times it was searched.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Options configures a Store. Zero values select the defaults.
type Options struct {
	MaxEntries      int
	CleanupInterval time.Duration
	Now             func() time.Time
	Logger          *log.Logger
}

// Store is the process-wide search history. All access goes through mu.
type Store struct {
	mu          sync.Mutex
	entries     map[string]int
	lastCleanup time.Time

	backend    Backend
	maxEntries int
	interval   time.Duration
	now        func() time.Time
	log        *log.Logger
}

// New creates a store and loads any saved state from backend. Missing,
// unreadable or invalid state is logged and the store starts empty.
func New(ctx context.Context, backend Backend, opts Options) *Store {
	s := &Store{
		entries:    make(map[string]int),
		backend:    backend,
		maxEntries: opts.MaxEntries,
		interval:   opts.CleanupInterval,
		now:        opts.Now,
		log:        opts.Logger,
	}
	if s.maxEntries <= 0 {
		s.maxEntries = DefaultMaxEntries
	}
	if s.interval <= 0 {
		s.interval = DefaultCleanupInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.New("history")
	}
	s.lastCleanup = s.now()
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.backend == nil {
		return
	}
	state, err := s.backend.Load(ctx)
	if err != nil {
		s.log.Warn("Could not load search history, starting empty", "err", err)
		return
	}
	if state == nil {
		return
	}

	dropped := 0
	for word, count := range state.Words {
		if count < 1 || !validation.IsSanitized(word) {
			dropped++
			continue
		}
		s.entries[word] = count
	}
	if dropped > 0 {
		s.log.Warn("Dropped invalid history entries", "count", dropped)
	}
	if state.LastCleanup > 0 {
		s.lastCleanup = fromUnixSeconds(state.LastCleanup)
	}
	s.log.Info("Loaded search history", "words", len(s.entries))
}

// Record counts one successful lookup of w, then runs the cleanup and
// persist step.
func (s *Store) Record(ctx context.Context, w validation.SanitizedWord) {
	if w.IsZero() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[w.String()]++
	s.cleanupLocked()
	_ = s.persistLocked(ctx)
}

// MaybeCleanupAndPersist trims the table to the top entries when the
// cleanup interval has elapsed, then persists.
func (s *Store) MaybeCleanupAndPersist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLocked()
	_ = s.persistLocked(ctx)
}

// Flush persists the current state and returns any backend error.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) cleanupLocked() {
	now := s.now()
	if now.Sub(s.lastCleanup) <= s.interval {
		return
	}
	if len(s.entries) > s.maxEntries {
		kept := sortedEntries(s.entries)[:s.maxEntries]
		s.entries = make(map[string]int, len(kept))
		for _, e := range kept {
			s.entries[e.Word] = e.Count
		}
		s.log.Debug("Trimmed search history", "kept", len(kept))
	}
	s.lastCleanup = now
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	state := &State{
		Words:       make(map[string]int, len(s.entries)),
		LastCleanup: unixSeconds(s.lastCleanup),
		Updated:     unixSeconds(s.now()),
	}
	for word, count := range s.entries {
		state.Words[word] = count
	}
	if err := s.backend.Save(ctx, state); err != nil {
		s.log.Error("Failed to persist search history", "err", err)
		return err
	}
	return nil
}

// Snapshot returns up to limit entries, most searched first, ties broken by
// word. A limit of zero or less returns every entry.
func (s *Store) Snapshot(limit int) []Entry {
	s.mu.Lock()
	entries := sortedEntries(s.entries)
	s.mu.Unlock()

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Totals returns the sum of all counts and the number of distinct words.
func (s *Store) Totals() (total, unique int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, count := range s.entries {
		total += count
	}
	return total, len(s.entries)
}

// Count returns how many times word has been searched.
func (s *Store) Count(word string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[word]
}

// LastCleanup returns when the table was last considered for trimming.
func (s *Store) LastCleanup() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCleanup
}

func sortedEntries(m map[string]int) []Entry {
	entries := make([]Entry, 0, len(m))
	for word, count := range m {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return entries
}
