package puzzle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/crosswords/puzzle"
)

func rect(x1, y1, x2, y2 uint) puzzle.RectArea {
	return puzzle.NewRectArea(puzzle.Position{X: x1, Y: y1}, puzzle.Position{X: x2, Y: y2})
}

func TestRectArea_Size(t *testing.T) {
	cases := []struct {
		name string
		r    puzzle.RectArea
		want puzzle.Dimension
	}{
		{"ZeroValue", puzzle.RectArea{}, puzzle.Dimension{}},
		{"SingleCell", rect(3, 3, 3, 3), puzzle.Dimension{Width: 1, Height: 1}},
		{"Box", rect(1, 2, 4, 3), puzzle.Dimension{Width: 4, Height: 2}},
		{"InvertedX", rect(5, 0, 4, 3), puzzle.Dimension{}},
		{"InvertedY", rect(0, 5, 3, 4), puzzle.Dimension{}},
		{"LegacySentinel", rect(1, 1, 0, 0), puzzle.Dimension{}},
		{"TopEdge", rect(math.MaxUint-1, math.MaxUint, math.MaxUint, math.MaxUint), puzzle.Dimension{Width: 2, Height: 1}},
		{"FullSpanSaturates", rect(0, 0, 2, math.MaxUint), puzzle.Dimension{Width: 3, Height: math.MaxUint}},
		{"FullSpanBoth", rect(0, 0, math.MaxUint, math.MaxUint), puzzle.Dimension{Width: math.MaxUint, Height: math.MaxUint}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Size())
			assert.Equal(t, tc.want == puzzle.Dimension{}, tc.r.Empty())
		})
	}
}

func TestRectArea_Intersect(t *testing.T) {
	a := rect(0, 0, 4, 2)
	b := rect(2, 1, 6, 5)

	got := a.Intersect(b)
	assert.Equal(t, rect(2, 1, 4, 2), got)
	assert.Equal(t, got, b.Intersect(a), "intersection must commute")

	assert.True(t, a.Intersect(rect(5, 0, 6, 2)).Empty(), "disjoint on X")
	assert.True(t, a.Intersect(rect(0, 3, 4, 3)).Empty(), "disjoint on Y")
	assert.Equal(t, rect(4, 2, 4, 2), a.Intersect(rect(4, 2, 9, 9)), "touching corner")
}

func TestRectArea_IntersectProperties(t *testing.T) {
	rects := []puzzle.RectArea{
		{},
		rect(0, 0, 0, 0),
		rect(0, 0, 3, 0),
		rect(2, 0, 2, 5),
		rect(1, 1, 4, 4),
		rect(10, 10, 12, 11),
		rect(3, 3, 2, 2),
	}
	for _, a := range rects {
		if !a.Empty() {
			assert.Equal(t, a, a.Intersect(a), "%s ∩ itself", a)
		}
		for _, b := range rects {
			assert.Equal(t, a.Intersect(b), b.Intersect(a), "%s ∩ %s", a, b)
			if a.Empty() {
				assert.True(t, a.Intersect(b).Empty(), "empty %s ∩ %s", a, b)
			}
		}
	}
}

func TestRectArea_Embrace(t *testing.T) {
	var r puzzle.RectArea
	r.Embrace(puzzle.Position{X: 5, Y: 5})
	assert.Equal(t, rect(5, 5, 5, 5), r, "empty rect embraces to a single cell")

	r.Embrace(puzzle.Position{X: 2, Y: 7})
	r.Embrace(puzzle.Position{X: 3, Y: 6})
	assert.Equal(t, rect(2, 5, 5, 7), r)
	assert.Equal(t, puzzle.Dimension{Width: 4, Height: 3}, r.Size())
}

func TestRectArea_Inflate(t *testing.T) {
	assert.Equal(t, rect(1, 2, 5, 4), rect(2, 3, 4, 3).Inflate(1))
	assert.Equal(t, rect(0, 0, 2, 1), rect(0, 0, 1, 0).Inflate(1), "clamped at zero")

	top := rect(math.MaxUint-1, 0, math.MaxUint, 0).Inflate(1)
	lt, rb, ok := top.Corners()
	require.True(t, ok)
	assert.Equal(t, uint(math.MaxUint-2), lt.X)
	assert.Equal(t, uint(math.MaxUint), rb.X, "clamped at MaxUint")

	assert.True(t, puzzle.RectArea{}.Inflate(3).Empty())
}

func TestRectArea_Contains(t *testing.T) {
	r := rect(1, 1, 3, 2)
	assert.True(t, r.Contains(puzzle.Position{X: 1, Y: 1}))
	assert.True(t, r.Contains(puzzle.Position{X: 3, Y: 2}))
	assert.False(t, r.Contains(puzzle.Position{X: 0, Y: 1}))
	assert.False(t, r.Contains(puzzle.Position{X: 2, Y: 3}))
	assert.False(t, puzzle.RectArea{}.Contains(puzzle.Position{}))
}
