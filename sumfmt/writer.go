// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sumfmt

import (
	"fmt"
	"io"

	"github.com/vbparts/perfdata/benchmath"
	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/capfmt"
	"github.com/vbparts/perfdata/coltab"
)

// A MetricSummary is the summary of one included metric of a run.
type MetricSummary struct {
	Kind    benchname.DataType
	Summary benchmath.Summary
	Values  []float64 // cleaned samples, in capture order
}

// A RunSummary holds the summaries of the included metrics of a run.
type RunSummary struct {
	Name    string
	Metrics []MetricSummary
}

// Summarize summarizes every included metric of run. If any included
// metric is empty, it returns an error wrapping
// benchmath.ErrEmptySeries.
func Summarize(run *capfmt.Run) (*RunSummary, error) {
	rs := &RunSummary{Name: run.Name}
	for _, m := range run.Metrics {
		if !m.Spec.Include {
			continue
		}
		s, err := benchmath.Summarize(m.Values)
		if err != nil {
			return nil, fmt.Errorf("run %s: metric %s: %w", run.Name, m.Spec, err)
		}
		rs.Metrics = append(rs.Metrics, MetricSummary{m.Spec.Kind, s, m.Values})
	}
	return rs, nil
}

// A Writer accumulates run summaries into a summary table.
type Writer struct {
	tab  coltab.Table
	runs int
}

// NewWriter returns a Writer whose table holds only the label column.
func NewWriter() *Writer {
	w := new(Writer)
	w.tab.NextColumn().Add(labels...)
	return w
}

// AddRun summarizes run and appends its columns to the table. If run
// cannot be summarized, AddRun returns the error and the table is
// unchanged.
func (w *Writer) AddRun(run *capfmt.Run) (*RunSummary, error) {
	rs, err := Summarize(run)
	if err != nil {
		return nil, err
	}
	w.Add(rs)
	return rs, nil
}

// Add appends the columns of rs to the table.
func (w *Writer) Add(rs *RunSummary) {
	var stage coltab.Table
	for i, m := range rs.Metrics {
		name := ""
		if i == 0 {
			name = rs.Name
		}
		stage.NextColumn().Add(name, m.Kind.String(), "")
		stage.AddFloat(m.Summary.Average).Add("")
		q := m.Summary.Quartiles()
		stage.AddFloat(q[:]...).Add("")
		stage.AddFloat(m.Values...)
	}
	w.tab.Append(&stage)
	w.runs++
}

// Runs returns the number of runs added to w.
func (w *Writer) Runs() int {
	return w.runs
}

// Table returns the summary table built so far.
func (w *Writer) Table() *coltab.Table {
	return &w.tab
}

// WriteCSV writes the summary table to out.
func (w *Writer) WriteCSV(out io.Writer) error {
	return w.tab.WriteCSV(out)
}
