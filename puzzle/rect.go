package puzzle

import (
	"fmt"
	"math"
)

// Position is a single grid cell.
type Position struct {
	X, Y uint
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dimension is a width/height pair. The zero Dimension means "empty".
type Dimension struct {
	Width, Height uint
}

// RectArea is an axis-aligned rectangle of grid cells, corners inclusive.
// It is either empty or bounded; the zero value is empty.
type RectArea struct {
	bounded     bool
	leftTop     Position
	rightBottom Position
}

// NewRectArea returns the rectangle spanning lt..rb. Corners inverted on
// either axis yield the empty rectangle.
func NewRectArea(lt, rb Position) RectArea {
	if rb.X < lt.X || rb.Y < lt.Y {
		return RectArea{}
	}
	return RectArea{bounded: true, leftTop: lt, rightBottom: rb}
}

// Corners returns the inclusive corners; ok is false for an empty rectangle.
func (r RectArea) Corners() (lt, rb Position, ok bool) {
	return r.leftTop, r.rightBottom, r.bounded
}

// Size returns the number of cells covered along each axis, or the zero
// Dimension when r is empty. A rectangle spanning the whole coordinate
// range reports math.MaxUint on that axis.
func (r RectArea) Size() Dimension {
	if !r.bounded {
		return Dimension{}
	}
	return Dimension{
		Width:  addClamp(r.rightBottom.X-r.leftTop.X, 1),
		Height: addClamp(r.rightBottom.Y-r.leftTop.Y, 1),
	}
}

// Empty reports whether r covers no cell.
func (r RectArea) Empty() bool {
	return r.Size() == Dimension{}
}

// Contains reports whether p lies inside r.
func (r RectArea) Contains(p Position) bool {
	return r.bounded &&
		p.X >= r.leftTop.X && p.X <= r.rightBottom.X &&
		p.Y >= r.leftTop.Y && p.Y <= r.rightBottom.Y
}

// Intersect returns the cells shared by r and other.
func (r RectArea) Intersect(other RectArea) RectArea {
	if r.Empty() || other.Empty() {
		return RectArea{}
	}
	lt1, rb1 := r.leftTop, r.rightBottom
	lt2, rb2 := other.leftTop, other.rightBottom
	if rb1.X < lt2.X || rb2.X < lt1.X {
		return RectArea{}
	}
	if rb1.Y < lt2.Y || rb2.Y < lt1.Y {
		return RectArea{}
	}
	return NewRectArea(
		Position{X: max(lt1.X, lt2.X), Y: max(lt1.Y, lt2.Y)},
		Position{X: min(rb1.X, rb2.X), Y: min(rb1.Y, rb2.Y)},
	)
}

// Embrace grows r just enough to contain p. An empty r becomes the single
// cell p. Embrace never shrinks r.
func (r *RectArea) Embrace(p Position) {
	if !r.bounded {
		*r = RectArea{bounded: true, leftTop: p, rightBottom: p}
		return
	}
	r.leftTop.X = min(r.leftTop.X, p.X)
	r.leftTop.Y = min(r.leftTop.Y, p.Y)
	r.rightBottom.X = max(r.rightBottom.X, p.X)
	r.rightBottom.Y = max(r.rightBottom.Y, p.Y)
}

// Inflate returns r grown by n cells on every side, clamped to the
// coordinate range so it never wraps. The empty rectangle stays empty.
func (r RectArea) Inflate(n uint) RectArea {
	if !r.bounded {
		return r
	}
	return RectArea{
		bounded:     true,
		leftTop:     Position{X: subClamp(r.leftTop.X, n), Y: subClamp(r.leftTop.Y, n)},
		rightBottom: Position{X: addClamp(r.rightBottom.X, n), Y: addClamp(r.rightBottom.Y, n)},
	}
}

func (r RectArea) String() string {
	if !r.bounded {
		return "RectArea(empty)"
	}
	return fmt.Sprintf("RectArea(%s-%s)", r.leftTop, r.rightBottom)
}

func subClamp(v, n uint) uint {
	if v < n {
		return 0
	}
	return v - n
}

func addClamp(v, n uint) uint {
	if v > math.MaxUint-n {
		return math.MaxUint
	}
	return v + n
}
