// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coltab builds column-major tables of text cells and writes
// them as padded CSV or as aligned text.
//
// Columns are built one at a time and may have different lengths. A
// table is only made rectangular when it is written: short columns are
// padded with empty cells.
package coltab

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Table is an ordered list of columns of text cells.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	cols [][]string
}

// NextColumn starts a new, empty column.
func (t *Table) NextColumn() *Table {
	t.cols = append(t.cols, nil)
	return t
}

// Add appends cells to the current column, starting one if t has no
// columns.
func (t *Table) Add(cells ...string) *Table {
	if len(t.cols) == 0 {
		t.NextColumn()
	}
	last := len(t.cols) - 1
	t.cols[last] = append(t.cols[last], cells...)
	return t
}

// AddFloat appends one cell per value to the current column.
func (t *Table) AddFloat(vs ...float64) *Table {
	for _, v := range vs {
		t.Add(FormatFloat(v))
	}
	return t
}

// Append appends the columns of u to t.
func (t *Table) Append(u *Table) *Table {
	for _, col := range u.cols {
		t.cols = append(t.cols, append([]string(nil), col...))
	}
	return t
}

// Columns returns the columns of t. The caller must not modify them.
func (t *Table) Columns() [][]string {
	return t.cols
}

// Len returns the number of columns in t.
func (t *Table) Len() int {
	return len(t.cols)
}

// MaxLen returns the length of the longest column of t.
func (t *Table) MaxLen() int {
	n := 0
	for _, col := range t.cols {
		n = max(n, len(col))
	}
	return n
}

// Cell returns the cell at row, col, or "" if the column is shorter.
func (t *Table) Cell(row, col int) string {
	if c := t.cols[col]; row < len(c) {
		return c[row]
	}
	return ""
}

// FormatFloat formats v the way tables hold numbers: the shortest
// decimal representation that reads back as v, with no exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes t to w as comma-separated rows. Every row has one
// cell for every column, each followed by a comma, and ends with a
// newline. Cells are written as is, without quoting.
func (t *Table) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	rows := t.MaxLen()
	for row := 0; row < rows; row++ {
		for col := range t.cols {
			bw.WriteString(t.Cell(row, col))
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Format lays out t as aligned text and writes it to w. Columns are
// separated by a space and trailing blanks are trimmed.
func (t *Table) Format(w io.Writer) error {
	ws := make([]int, len(t.cols))
	for i, col := range t.cols {
		for _, c := range col {
			ws[i] = max(ws[i], utf8.RuneCountInString(c))
		}
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	rows := t.MaxLen()
	for row := 0; row < rows; row++ {
		line.Reset()
		for col := range t.cols {
			if ws[col] == 0 {
				// Spacer column.
				continue
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			c := t.Cell(row, col)
			line.WriteString(c)
			line.WriteString(strings.Repeat(" ", ws[col]-utf8.RuneCountInString(c)))
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
