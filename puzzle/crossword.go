package puzzle

import (
	"iter"
	"slices"
)

// Crossword is an ordered set of mutually compatible words together with
// their bounding box. The zero value is an empty puzzle ready for use.
type Crossword struct {
	words      []Word
	area       RectArea
	horizontal int
	vertical   int
}

// New builds a puzzle from first and then attempts each of rest in order.
// first is always accepted unless it runs past the coordinate range; a
// rejected word is dropped without notice. Callers needing per-word
// feedback use InsertWord.
func New(first Word, rest ...Word) *Crossword {
	c := &Crossword{}
	c.InsertWord(first)
	for _, w := range rest {
		c.InsertWord(w)
	}
	return c
}

// InsertWord adds w if it is compatible with every word already placed.
// It reports whether w was accepted; on rejection c is unchanged. Words
// that are not InRange are always rejected.
func (c *Crossword) InsertWord(w Word) bool {
	if !w.InRange() {
		return false
	}
	for _, existing := range c.words {
		if !Compatible(w, existing) {
			return false
		}
	}
	c.words = append(c.words, w)
	c.area.Embrace(w.Start())
	c.area.Embrace(w.End())
	if w.Orientation() == Vertical {
		c.vertical++
	} else {
		c.horizontal++
	}
	return true
}

// Compatible reports whether a and b may both be placed on the same grid.
//
// Perpendicular words may share at most one cell and must agree on its
// character. Parallel words must be separated by at least one empty cell
// on every side. A word that is not InRange is compatible with nothing.
func Compatible(a, b Word) bool {
	if !a.InRange() || !b.InRange() {
		return false
	}
	ra, rb := a.RectArea(), b.RectArea()

	if a.Orientation() != b.Orientation() {
		common := ra.Intersect(rb)
		switch common.Size() {
		case Dimension{}:
			return true
		case Dimension{Width: 1, Height: 1}:
			p, _, _ := common.Corners()
			ca, _ := a.CellAt(p)
			cb, _ := b.CellAt(p)
			return ca == cb
		default:
			// Perpendicular words sharing more than one cell.
			return false
		}
	}

	return rb.Intersect(ra.Inflate(1)).Empty()
}

// WordCount returns the number of horizontal and vertical words.
func (c *Crossword) WordCount() (horizontal, vertical int) {
	return c.horizontal, c.vertical
}

// Len returns the total number of placed words.
func (c *Crossword) Len() int {
	return len(c.words)
}

// Size returns the dimension of the bounding box.
func (c *Crossword) Size() Dimension {
	return c.area.Size()
}

// Bounds returns the smallest rectangle enclosing every placed word.
func (c *Crossword) Bounds() RectArea {
	return c.area
}

// Words returns a copy of the placed words in insertion order.
func (c *Crossword) Words() []Word {
	return slices.Clone(c.words)
}

// All iterates over the placed words in insertion order.
func (c *Crossword) All() iter.Seq[Word] {
	return slices.Values(c.words)
}

// Sorted returns the placed words ordered by Compare.
func (c *Crossword) Sorted() []Word {
	out := slices.Clone(c.words)
	slices.SortFunc(out, Compare)
	return out
}

// Clone returns an independent copy of c. Words are immutable, so sharing
// their content is safe.
func (c *Crossword) Clone() *Crossword {
	cp := *c
	cp.words = slices.Clone(c.words)
	return &cp
}

// Merge folds the words of other into c, in other's insertion order, and
// returns how many were accepted. Rejected words are dropped.
func (c *Crossword) Merge(other *Crossword) int {
	// Snapshot first so merging c into itself terminates.
	words := other.Words()
	accepted := 0
	for _, w := range words {
		if c.InsertWord(w) {
			accepted++
		}
	}
	return accepted
}

// Merged returns a new puzzle holding c followed by the words of other
// that fit. Neither c nor other is modified.
func (c *Crossword) Merged(other *Crossword) *Crossword {
	res := c.Clone()
	res.Merge(other)
	return res
}
