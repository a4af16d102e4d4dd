package puzzle

import (
	"fmt"
	"io"
	"strings"
)

// Background fills every cell no word covers when rendering.
const Background = '.'

// MaxRenderCells bounds the number of cells, margin included, that
// WriteTo will draw.
const MaxRenderCells = 1 << 22

// WriteTo writes the puzzle as a character grid: one line per row, cells
// separated by single spaces, with a one-cell margin of Background around
// the bounding box. It fails with ErrTooLarge, writing nothing, when the
// grid holds more than MaxRenderCells cells.
func (c *Crossword) WriteTo(w io.Writer) (int64, error) {
	size := c.area.Size()
	if !renderable(size) {
		return 0, fmt.Errorf("%w: %dx%d", ErrTooLarge, size.Width, size.Height)
	}
	origin, _, _ := c.area.Corners()
	rows, cols := int(size.Height)+2, int(size.Width)+2

	var (
		total int64
		line  strings.Builder
	)
	row := make([]rune, cols)
	for r := range rows {
		for x := range row {
			row[x] = Background
		}
		if r > 0 && r < rows-1 {
			c.fillRow(row, origin, origin.Y+uint(r-1))
		}

		line.Reset()
		for x, ch := range row {
			if x > 0 {
				line.WriteByte(' ')
			}
			line.WriteRune(ch)
		}
		line.WriteByte('\n')

		n, err := io.WriteString(w, line.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// fillRow draws the cells of grid row y into row, where row[0] is the
// margin left of origin.X.
func (c *Crossword) fillRow(row []rune, origin Position, y uint) {
	for _, word := range c.words {
		start := word.Start()
		x := int(start.X-origin.X) + 1
		if word.Orientation() == Vertical {
			if y >= start.Y && y <= word.End().Y {
				row[x] = word.At(int(y - start.Y))
			}
			continue
		}
		if start.Y == y {
			for i := range word.Len() {
				row[x+i] = word.At(i)
			}
		}
	}
}

func renderable(size Dimension) bool {
	if size.Width > MaxRenderCells || size.Height > MaxRenderCells {
		return false
	}
	return uint64(size.Width+2)*uint64(size.Height+2) <= MaxRenderCells
}

// String renders the grid like WriteTo. A grid too large to draw is
// summarized on one line instead.
func (c *Crossword) String() string {
	var b strings.Builder
	if _, err := c.WriteTo(&b); err != nil {
		return err.Error()
	}
	return b.String()
}
