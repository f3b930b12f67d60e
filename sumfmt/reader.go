// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sumfmt

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vbparts/perfdata/benchmath"
	"github.com/vbparts/perfdata/capfmt"
)

// ErrShortTable is returned by Parse for a grid with too few rows to
// hold a summary.
var ErrShortTable = errors.New("summary table too short")

// A CellError reports a summary cell that could not be read.
type CellError struct {
	Row, Column int // 0-based
	Text        string
	Err         error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %d: cannot parse %q: %v", e.Row, e.Column, e.Text, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// A Grid is a parsed summary file, held row-major.
type Grid struct {
	rows [][]string
}

// A Column identifies one summarized metric in a Grid.
type Column struct {
	Index  int
	Header string // run name from row 0
}

// Parse splits data into a Grid. Rows are separated by newlines and
// cells by commas; empty cells are kept. Parse returns ErrShortTable
// if data has fewer rows than the summary layout requires.
func Parse(data []byte) (*Grid, error) {
	lines := bytes.Split(data, []byte("\n"))
	g := &Grid{rows: make([][]string, len(lines))}
	for i, l := range lines {
		l = bytes.TrimRight(l, "\r")
		g.rows[i] = strings.Split(string(l), ",")
	}
	if len(g.rows) < minRows {
		return nil, fmt.Errorf("%w: %d rows, want at least %d", ErrShortTable, len(g.rows), minRows)
	}
	return g, nil
}

// Cell returns the trimmed cell at row, col, or "" if there is no
// such cell.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return ""
	}
	return strings.TrimSpace(g.rows[row][col])
}

// Columns returns the columns of g that start a run: those with a
// non-empty header other than the label column's.
func (g *Grid) Columns() []Column {
	var cols []Column
	for i := range g.rows[rowName] {
		h := g.Cell(rowName, i)
		if h == "" || h == labelTestName {
			continue
		}
		cols = append(cols, Column{i, h})
	}
	return cols
}

// Summary reads the average and quartiles of col. It returns a
// *CellError if any of them is not a finite number.
func (g *Grid) Summary(col int) (benchmath.Summary, error) {
	var cerr *CellError
	cell := func(row int) float64 {
		if cerr != nil {
			return 0
		}
		text := g.Cell(row, col)
		v, err := parseFinite(text)
		if err != nil {
			cerr = &CellError{row, col, text, err}
		}
		return v
	}
	s := benchmath.Summary{
		Average: cell(rowAverage),
		Min:     cell(rowMin),
		Q1:      cell(rowMin + 1),
		Median:  cell(rowMin + 2),
		Q3:      cell(rowMin + 3),
		Max:     cell(rowMin + 4),
	}
	if cerr != nil {
		return benchmath.Summary{}, cerr
	}
	s.N = len(g.Values(col))
	return s, nil
}

// Values returns the samples of col: the numeric cells from the first
// data row up to the first blank or missing cell. Non-numeric and
// non-finite cells are skipped.
func (g *Grid) Values(col int) []float64 {
	var vs []float64
	for row := rowData; row < len(g.rows); row++ {
		text := g.Cell(row, col)
		if text == "" {
			break
		}
		if v, err := parseFinite(text); err == nil {
			vs = append(vs, v)
		}
	}
	return vs
}

// parseFinite parses a numeric cell. NaN and infinities are reported
// as capfmt.ErrNonNumericField.
func parseFinite(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, capfmt.ErrNonNumericField
	}
	return v, nil
}
