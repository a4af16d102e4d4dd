package puzzle

import (
	"cmp"
	"fmt"
	"math"
	"strings"
)

// Placeholder is returned for reads past the end of a word and stands in
// for empty word content.
const Placeholder = '?'

// Orientation is the axis a word runs along.
type Orientation uint8

const (
	// Horizontal words run left to right along X.
	Horizontal Orientation = iota
	// Vertical words run top to bottom along Y.
	Vertical
)

// ParseOrientation accepts "H", "V", "horizontal" or "vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Word is a string placed on the grid at a start cell along one axis.
// Its content is never empty.
type Word struct {
	start       Position
	orientation Orientation
	content     []rune
}

// WordKey identifies a word slot. Two words with the same key are equal
// regardless of their text.
type WordKey struct {
	Start       Position
	Orientation Orientation
}

// NewWord places s at (x, y). An empty s is replaced by a single Placeholder.
func NewWord(x, y uint, o Orientation, s string) Word {
	content := []rune(s)
	if len(content) == 0 {
		content = []rune{Placeholder}
	}
	return Word{
		start:       Position{X: x, Y: y},
		orientation: o,
		content:     content,
	}
}

// MakeWord is NewWord for untrusted input: it fails with ErrOutOfRange when
// the word would run past the coordinate range.
func MakeWord(x, y uint, o Orientation, s string) (Word, error) {
	w := NewWord(x, y, o, s)
	if !w.InRange() {
		return Word{}, fmt.Errorf("%w: %s", ErrOutOfRange, w)
	}
	return w, nil
}

// Start returns the cell holding the first character.
func (w Word) Start() Position { return w.start }

// Orientation returns the axis the word runs along.
func (w Word) Orientation() Orientation { return w.orientation }

// Len returns the number of characters, and so of cells, the word covers.
func (w Word) Len() int {
	if len(w.content) == 0 {
		return 1
	}
	return len(w.content)
}

// InRange reports whether every cell of the word has a representable
// coordinate, that is whether start+Len-1 does not overflow.
func (w Word) InRange() bool {
	n := uint(w.Len() - 1)
	if w.orientation == Vertical {
		return w.start.Y <= math.MaxUint-n
	}
	return w.start.X <= math.MaxUint-n
}

// End returns the last cell covered by the word. For a word that is not
// InRange the result is clamped to math.MaxUint.
func (w Word) End() Position {
	n := uint(w.Len() - 1)
	if w.orientation == Vertical {
		return Position{X: w.start.X, Y: addClamp(w.start.Y, n)}
	}
	return Position{X: addClamp(w.start.X, n), Y: w.start.Y}
}

// At returns the i-th character, or Placeholder for any i outside the word.
func (w Word) At(i int) rune {
	if i < 0 || i >= len(w.content) {
		return Placeholder
	}
	return w.content[i]
}

// Text returns the word's content.
func (w Word) Text() string {
	if len(w.content) == 0 {
		return string(Placeholder)
	}
	return string(w.content)
}

// RectArea returns the rectangle spanning the word's start and end cells.
func (w Word) RectArea() RectArea {
	return NewRectArea(w.start, w.End())
}

// CellAt returns the character the word places on grid cell p. ok is false
// when p is not covered by the word.
func (w Word) CellAt(p Position) (r rune, ok bool) {
	if !w.RectArea().Contains(p) {
		return Placeholder, false
	}
	if w.orientation == Vertical {
		return w.At(int(p.Y - w.start.Y)), true
	}
	return w.At(int(p.X - w.start.X)), true
}

// Key returns the ordering key of the word.
func (w Word) Key() WordKey {
	return WordKey{Start: w.start, Orientation: w.orientation}
}

func (w Word) String() string {
	return fmt.Sprintf("%s%s:%s", w.start, w.orientation, w.Text())
}

// Compare orders words by start X, start Y, then orientation (horizontal
// first). Content is ignored. It is suitable for slices.SortFunc.
func Compare(a, b Word) int {
	return cmp.Or(
		cmp.Compare(a.start.X, b.start.X),
		cmp.Compare(a.start.Y, b.start.Y),
		cmp.Compare(a.orientation, b.orientation),
	)
}

// Equal reports whether a and b occupy the same slot; see Compare.
func Equal(a, b Word) bool {
	return Compare(a, b) == 0
}
