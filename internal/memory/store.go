// Package memory implements the bounded working-memory store: a small,
// capacity-limited collection of salient facts where inserting into a
// full store evicts the single lowest-scoring entry.
//
// The store is single-writer by design and does no internal locking.
// Embedders that share it across goroutines (the HTTP server does) must
// serialize all mutating calls themselves.
package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the store capacity when the embedder doesn't choose one.
const DefaultCapacity = 7

// Store holds up to capacity live entries in arrival order.
type Store struct {
	capacity int
	entries  []*Entry
	clock    func() time.Time
	onEvict  func(*Entry)
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock replaces the wall-clock source. Scoring reads the clock on
// every evaluation, so tests inject a fixed or stepped clock here.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithOnEvict registers a callback invoked with every evicted entry,
// after removal. Notification only — the store never persists anything.
func WithOnEvict(fn func(*Entry)) Option {
	return func(s *Store) { s.onEvict = fn }
}

// New creates a Store with the given capacity. Capacity below 1 is a
// configuration error, not something to normalize away: an evict-before-
// insert check against capacity 0 could never hold the size invariant.
func New(capacity int, opts ...Option) (*Store, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("memory: capacity must be >= 1, got %d", capacity)
	}
	s := &Store{
		capacity: capacity,
		entries:  make([]*Entry, 0, capacity),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Insert normalizes the input (clamp priority, truncate content), evicts
// the lowest-scoring entry first if the store is full, then appends a new
// entry. It always succeeds.
func (s *Store) Insert(content string, category Category, priority int, tags []string) *Entry {
	if len(s.entries) >= s.capacity {
		s.EvictOne()
	}

	now := s.clock()
	e := &Entry{
		ID:             uuid.New().String(),
		Content:        truncateContent(content),
		Category:       category,
		Priority:       clampPriority(priority),
		Tags:           tags,
		CreatedAt:      now,
		LastAccessedAt: now,
		AccessCount:    0,
	}
	s.entries = append(s.entries, e)
	return e
}

// EvictOne removes and returns the entry with the strictly minimum score
// at the current instant. Ties go to the earliest-inserted entry, never a
// random one. Returns nil when the store is empty.
func (s *Store) EvictOne() *Entry {
	if len(s.entries) == 0 {
		return nil
	}

	now := s.clock()
	minIdx := 0
	minScore := Score(s.entries[0], now)
	for i := 1; i < len(s.entries); i++ {
		if sc := Score(s.entries[i], now); sc < minScore {
			minIdx, minScore = i, sc
		}
	}

	victim := s.entries[minIdx]
	s.entries = append(s.entries[:minIdx], s.entries[minIdx+1:]...)
	if s.onEvict != nil {
		s.onEvict(victim)
	}
	return victim
}

// Access finds a live entry by id, bumps its recency and access count,
// and returns it. Unknown ids return nil with no mutation — that is a
// routine miss, not an error. Linear scan: capacity is single digits.
func (s *Store) Access(id string) *Entry {
	for _, e := range s.entries {
		if e.ID == id {
			e.LastAccessedAt = s.clock()
			e.AccessCount++
			return e
		}
	}
	return nil
}

// List returns the live entries in store order (arrival order, adjusted
// by evictions). The slice is a copy; the entries are not.
func (s *Store) List() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ScoredEntry pairs an entry with a score snapshot taken at list time.
type ScoredEntry struct {
	*Entry
	Score float64 `json:"score"`
}

// ListScored returns the live entries in store order, each annotated with
// a score computed once for this call. Scores are never stored back.
func (s *Store) ListScored() []ScoredEntry {
	now := s.clock()
	out := make([]ScoredEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = ScoredEntry{Entry: e, Score: Score(e, now)}
	}
	return out
}

// ScoreOf returns the current score of an entry using the store's clock.
// Exposed for diagnostics; identical to calling Score with time.Now.
func (s *Store) ScoreOf(e *Entry) float64 {
	return Score(e, s.clock())
}

// Clear removes every live entry and returns how many were removed.
func (s *Store) Clear() int {
	n := len(s.entries)
	s.entries = s.entries[:0]
	return n
}

// Len returns the number of live entries.
func (s *Store) Len() int { return len(s.entries) }

// Cap returns the configured capacity.
func (s *Store) Cap() int { return s.capacity }
