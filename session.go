package main

import (
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/bodul/crosswords/puzzle"
)

// Player represents a contributor connected to a puzzle.
type Player struct {
	Pseudo   string    `json:"pseudo"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session is a puzzle being built collaboratively. All access to the
// underlying crossword goes through mu, which serializes insertions.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu        sync.Mutex
	crossword *puzzle.Crossword
	authors   map[puzzle.WordKey]string
	players   map[string]*Player
}

// playerColors is the palette assigned to players in order.
var playerColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#c026d3", "#ca8a04",
}

func newSession(id, name string, c *puzzle.Crossword) *Session {
	return &Session{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		crossword: c,
		authors:   make(map[puzzle.WordKey]string),
		players:   make(map[string]*Player),
	}
}

// AddPlayer adds a player to the session and returns it. Joining twice
// with the same pseudo returns the existing player.
func (s *Session) AddPlayer(pseudo string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[pseudo]; ok {
		return p
	}

	p := &Player{
		Pseudo:   pseudo,
		Color:    playerColors[len(s.players)%len(playerColors)],
		JoinedAt: time.Now(),
	}
	s.players[pseudo] = p
	return p
}

// RemovePlayer removes a player from the session.
func (s *Session) RemovePlayer(pseudo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, pseudo)
}

// Players returns a copy of the connected players keyed by pseudo.
func (s *Session) Players() map[string]Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Player, len(s.players))
	for k, p := range s.players {
		out[k] = *p
	}
	return out
}

// Place inserts w on behalf of author. It reports whether the word was
// accepted; a rejected word leaves the puzzle unchanged.
func (s *Session) Place(w puzzle.Word, author string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.crossword.InsertWord(w) {
		return false
	}
	if author != "" {
		s.authors[w.Key()] = author
	}
	return true
}

// Merge folds src's words into the session and returns how many fit.
// src is snapshotted before s is locked, so a session may merge itself.
func (s *Session) Merge(src *Session) int {
	other := src.Snapshot()
	srcAuthors := src.authorsCopy()

	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := 0
	for w := range other.All() {
		if !s.crossword.InsertWord(w) {
			continue
		}
		accepted++
		if a, ok := srcAuthors[w.Key()]; ok {
			s.authors[w.Key()] = a
		}
	}
	return accepted
}

// Snapshot returns an independent copy of the current puzzle.
func (s *Session) Snapshot() *puzzle.Crossword {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crossword.Clone()
}

// View returns the wire representation of the current puzzle.
func (s *Session) View() PuzzleView {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.crossword
	hc, vc := c.WordCount()
	size := c.Size()
	v := PuzzleView{
		ID:         s.ID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		Words:      make([]WordJSON, 0, c.Len()),
		Horizontal: hc,
		Vertical:   vc,
		Width:      size.Width,
		Height:     size.Height,
	}
	for w := range c.All() {
		v.Words = append(v.Words, toWordJSON(w, s.authors[w.Key()]))
	}
	if lt, rb, ok := c.Bounds().Corners(); ok {
		v.Bounds = &BoundsJSON{Left: lt.X, Top: lt.Y, Right: rb.X, Bottom: rb.Y}
	}
	return v
}

// Render returns the text grid of the current puzzle. It fails with
// puzzle.ErrTooLarge when the grid is too big to draw.
func (s *Session) Render() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	if _, err := s.crossword.WriteTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Session) authorsCopy() map[puzzle.WordKey]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.authors)
}
