package main

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bodul/crosswords/puzzle"
)

var (
	// ErrPuzzleNotFound is returned when no session has the requested ID.
	ErrPuzzleNotFound = errors.New("puzzle not found")
	// ErrNoWords is returned when a puzzle is created without a first word.
	ErrNoWords = errors.New("a puzzle needs at least one word")
)

// Store holds all puzzle sessions in memory.
type Store struct {
	mu      sync.RWMutex
	puzzles map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		puzzles: make(map[string]*Session),
	}
}

// CreatePuzzle builds a puzzle from words[0] followed by the rest, which
// are kept only if they fit, and registers it under a fresh ID.
func (s *Store) CreatePuzzle(name string, words []puzzle.Word) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	sess := newSession(uuid.NewString(), name, puzzle.New(words[0], words[1:]...))

	s.mu.Lock()
	s.puzzles[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// GetPuzzle returns a session by ID, or nil if not found.
func (s *Store) GetPuzzle(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puzzles[id]
}

// ListPuzzles returns all sessions, most recent first.
func (s *Store) ListPuzzles() []*Session {
	s.mu.RLock()
	list := make([]*Session, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *Session) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list
}

// Merge folds the words of puzzle srcID into puzzle dstID and returns the
// destination along with the number of accepted words.
func (s *Store) Merge(dstID, srcID string) (*Session, int, error) {
	dst, src := s.GetPuzzle(dstID), s.GetPuzzle(srcID)
	if dst == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrPuzzleNotFound, dstID)
	}
	if src == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrPuzzleNotFound, srcID)
	}
	return dst, dst.Merge(src), nil
}
