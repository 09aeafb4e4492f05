package gridgraph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a maze from comma-separated, line-delimited text.
// Each token maps through StateFromToken; blank lines are skipped and
// leading spaces before a token are ignored.
// Returns an error satisfying errors.Is(err, ErrMalformedGrid) for empty,
// ragged, or syntactically broken input. No partial grid is returned.
func ParseCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are reported as ErrNonRectangular below
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var cells [][]CellState
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
		}
		row := make([]CellState, len(rec))
		for i, tok := range rec {
			row[i] = StateFromToken(strings.TrimSpace(tok))
		}
		cells = append(cells, row)
	}

	return NewGrid(cells)
}

// ParseString is ParseCSV over an in-memory string.
func ParseString(s string) (*Grid, error) {
	return ParseCSV(strings.NewReader(s))
}

// Encode writes g in the textual grid format, one line per row.
func (g *Grid) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	rec := make([]string, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			rec[c] = g.cells[r*g.cols+c].String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("gridgraph: encode row %d: %w", r, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// EncodeString returns the textual grid format of g, newline terminated.
func (g *Grid) EncodeString() string {
	var sb strings.Builder
	_ = g.Encode(&sb) // strings.Builder never fails

	return sb.String()
}
