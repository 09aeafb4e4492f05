// Package gridgraph models a maze as a rectangular grid of cell states and
// handles its textual form.
//
// What:
//
//   - Grid wraps a rectangular rows×cols matrix of CellState (Wall, Open, Solved).
//   - ParseCSV reads the comma-separated, line-delimited maze format:
//     "1" is Open, "2" is Solved, any other token is Wall.
//   - Encode writes the same format back ("0", "1", "2").
//   - MarkPath annotates a discovered path by rewriting Open cells to Solved.
//
// Why:
//
//   - Keep input validation in one place, so search code can assume a
//     non-empty rectangular grid.
//   - Round-trip the on-disk format without surprises.
//
// Complexity:
//
//   - ParseCSV / Encode: O(R×C) time and memory.
//   - MarkPath:          O(len(path)).
//   - InBounds, IsBoundary, At: O(1).
//
// Errors:
//
//   - ErrMalformedGrid: root kind for every rejected input.
//   - ErrEmptyGrid: input has no rows or no columns (is ErrMalformedGrid).
//   - ErrNonRectangular: rows have differing lengths (is ErrMalformedGrid).
package gridgraph
