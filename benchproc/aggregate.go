// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"

	"github.com/vbparts/perfdata/benchmath"
	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/coltab"
	"github.com/vbparts/perfdata/sumfmt"
)

// An Input is one summary file. ID is the file's base name without
// extension, which names its GPU and data type.
type Input struct {
	ID   string
	Data []byte
}

// An Entry is one run included in the output.
type Entry struct {
	File    string // Input.ID
	GPU     string
	Name    string // test name
	Params  benchname.Params
	Summary benchmath.Summary
	Values  []float64
}

// FileStats records how a summary file was processed.
type FileStats struct {
	ID       string
	GPU      string
	DataType benchname.DataType

	// Skipped is set if the file's data type differs from the
	// Filter's, or if the Filter has no valid data type. All runs of
	// a skipped file count as excluded.
	Skipped bool

	Included, Excluded int

	// Err is a file-level error. A file with Err set contributes
	// nothing to the output.
	Err error

	// Errors lists a *ColumnError for each run excluded because it
	// could not be read, and Warnings a *ColumnError for each
	// included run with an invalid dimension.
	Errors   []error
	Warnings []error
}

// A ColumnError is a problem with one run of a summary file.
type ColumnError struct {
	Column int
	Header string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d (%s): %v", e.Column, e.Header, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

// An Aggregator pivots summary files into a single output table.
type Aggregator struct {
	filter  Filter
	wild    []Dim
	tab     coltab.Table
	entries []Entry
	stats   []FileStats
}

// NewAggregator returns an Aggregator for filter whose table holds the
// header block: a column of constant setting labels, a column of their
// values, an empty spacer column and a column of row labels.
func NewAggregator(filter Filter) *Aggregator {
	a := &Aggregator{filter: filter, wild: filter.Wildcards()}

	a.tab.NextColumn().Add("Constant Settings:", "Data Type")
	for d := Dim(0); d < numDims; d++ {
		a.tab.Add(dimLabels[d].constant)
	}
	a.tab.NextColumn().Add("", filter.DataType.String())
	for d := Dim(0); d < numDims; d++ {
		a.tab.Add(filter.Constant(d))
	}
	a.tab.NextColumn()

	a.tab.NextColumn().Add("GPU")
	for _, d := range a.wild {
		a.tab.Add(d.String())
	}
	a.tab.Add("", "Average", "",
		"Minimum", "1st Quartile", "Median", "3rd Quartile", "Maximum",
		"", "Full data")
	return a
}

// AddFile pivots the summary file data, identified by id, into a's
// table. The file's columns are appended only once the whole file has
// been read; if the file cannot be read at all, FileStats.Err is set
// and the table is unchanged.
func (a *Aggregator) AddFile(id string, data []byte) FileStats {
	fid := benchname.ParseFileID(id)
	st := FileStats{ID: id, GPU: fid.GPU, DataType: fid.DataType}
	defer func() { a.stats = append(a.stats, st) }()

	grid, err := sumfmt.Parse(data)
	// An invalid filter type would otherwise match every file whose
	// type is not recognized.
	if !a.filter.DataType.Valid() || fid.DataType != a.filter.DataType {
		st.Skipped = true
		if err == nil {
			st.Excluded = len(grid.Columns())
		}
		return st
	}
	if err != nil {
		st.Err = err
		return st
	}

	var (
		stage   coltab.Table
		entries []Entry
		prev    []string // wildcard values of the previous column
	)
	for _, col := range grid.Columns() {
		p, err := benchname.Decode(col.Header)
		if err != nil {
			st.Excluded++
			st.Errors = append(st.Errors, &ColumnError{col.Index, col.Header, err})
			continue
		}
		if !a.filter.Match(p) {
			st.Excluded++
			continue
		}
		sum, err := grid.Summary(col.Index)
		if err != nil {
			st.Excluded++
			st.Errors = append(st.Errors, &ColumnError{col.Index, col.Header, err})
			continue
		}
		for _, w := range p.Warnings {
			st.Warnings = append(st.Warnings, &ColumnError{col.Index, col.Header, w})
		}
		values := grid.Values(col.Index)

		gpu := ""
		if st.Included == 0 {
			gpu = fid.GPU
		}
		st.Included++
		stage.NextColumn().Add(gpu)
		cur := make([]string, len(a.wild))
		for i, d := range a.wild {
			cur[i] = d.Value(p)
			if prev != nil && prev[i] == cur[i] {
				stage.Add("")
			} else {
				stage.Add(cur[i])
			}
		}
		prev = cur
		stage.Add("").AddFloat(sum.Average).Add("")
		q := sum.Quartiles()
		stage.AddFloat(q[:]...).Add("")
		stage.AddFloat(values...)

		entries = append(entries, Entry{id, fid.GPU, col.Header, p, sum, values})
	}

	a.tab.Append(&stage)
	a.entries = append(a.entries, entries...)
	return st
}

// Table returns the output table built so far.
func (a *Aggregator) Table() *coltab.Table { return &a.tab }

// Entries returns the included runs, in output column order.
func (a *Aggregator) Entries() []Entry { return a.entries }

// Stats returns the FileStats of every file added, in order.
func (a *Aggregator) Stats() []FileStats { return a.stats }

// Filter returns the Filter of a.
func (a *Aggregator) Filter() Filter { return a.filter }

// Aggregate pivots files with filter and returns the output table and
// per-file statistics.
func Aggregate(files []Input, filter Filter) (*coltab.Table, []FileStats) {
	a := NewAggregator(filter)
	for _, f := range files {
		a.AddFile(f.ID, f.Data)
	}
	return a.Table(), a.Stats()
}
