// Package puzzle models a crossword as a set of words placed on an unbounded
// grid of non-negative integer cells, and validates each new placement against
// the words already on the grid.
//
// Placement rules:
//
//   - Words of different orientation may share at most one cell, and both must
//     place the same character there.
//   - Words of the same orientation must keep at least one empty cell of
//     clearance on every side, diagonals included.
//
// A Crossword only ever grows: accepted words are never moved or removed, and
// a rejected insertion leaves the puzzle untouched. Crossword is not safe for
// concurrent mutation; callers serialize InsertWord themselves.
package puzzle
