package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"sync"
	"time"
)

// ErrNilState is returned when a backend is asked to save nothing.
var ErrNilState = errors.New("nil history state")

// State is the durable form of the history store.
type State struct {
	Words       map[string]int `json:"words"`
	LastCleanup float64        `json:"last_cleanup"` // Unix seconds
	Updated     float64        `json:"updated"`      // Unix seconds
}

// Backend loads and saves history state. Load returns (nil, nil) when no
// state has been saved yet.
type Backend interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	c.Words = maps.Clone(s.Words)
	return &c
}

func encodeState(state *State) ([]byte, error) {
	if state == nil {
		return nil, ErrNilState
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return &state, nil
}

// unixSeconds converts t to fractional Unix seconds.
func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// fromUnixSeconds converts fractional Unix seconds back to a time.
func fromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
}

// MemoryBackend keeps state in memory. Used in tests and with
// HISTORY_BACKEND=memory.
type MemoryBackend struct {
	mu      sync.Mutex
	state   *State
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryBackend creates a backend preloaded with state, which may be nil.
func NewMemoryBackend(state *State) *MemoryBackend {
	return &MemoryBackend{state: state.Clone()}
}

// Load returns a copy of the saved state.
func (m *MemoryBackend) Load(context.Context) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.state.Clone(), nil
}

// Save stores a copy of state.
func (m *MemoryBackend) Save(_ context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if state == nil {
		return ErrNilState
	}
	m.state = state.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Saved returns a copy of the last saved state.
func (m *MemoryBackend) Saved() *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}
