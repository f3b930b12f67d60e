// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capfmt parses the per-run CSV logs written by the frame
// capture tool and cleans the glitches the tool leaves in them.
//
// A capture log starts with a fixed number of metadata lines, followed
// by one comma-separated line per captured frame. Each frame line has
// two leading metadata columns (index and timestamp) followed by one
// column per monitored metric. Which metric lives in which column
// depends on the GPU and on what the tool was configured to record, so
// callers describe the layout with a list of ColumnSpecs.
//
// This package is designed to be used with benchmath, which summarizes
// the series of a Run once it has been cleaned.
package capfmt

import (
	"fmt"

	"github.com/vbparts/perfdata/benchname"
)

// A ColumnSpec locates one metric in a capture log.
type ColumnSpec struct {
	// Kind is the metric held by the column.
	Kind benchname.DataType

	// Index is the data column index, not counting the two leading
	// metadata columns: Index 0 is the third comma-separated field.
	Index int

	// Include reports whether the metric is written to summaries.
	// Excluded metrics are still parsed and cleaned, since the
	// frametime series drives cleaning of every other series.
	Include bool
}

func (c ColumnSpec) String() string {
	return fmt.Sprintf("%s@%d", c.Kind, c.Index)
}

// A Metric is the series of samples of one metric over a run, one
// sample per captured frame.
type Metric struct {
	Spec   ColumnSpec
	Values []float64
}

// A Run is one benchmark execution: a test name plus one Metric per
// configured column. All Metrics of a Run have the same length and
// are index-aligned: Values[i] of every Metric describe frame i.
type Run struct {
	// Name is the run's test name, typically the capture file's
	// base name.
	Name string

	// Metrics holds one Metric per ColumnSpec, in ColumnSpec order.
	Metrics []Metric

	params    *benchname.Params
	paramsErr error
}

// Metric returns the first metric of the given kind, or nil.
func (r *Run) Metric(kind benchname.DataType) *Metric {
	for i := range r.Metrics {
		if r.Metrics[i].Spec.Kind == kind {
			return &r.Metrics[i]
		}
	}
	return nil
}

// Len returns the number of frames in r.
func (r *Run) Len() int {
	if len(r.Metrics) == 0 {
		return 0
	}
	return len(r.Metrics[0].Values)
}

// Check verifies that all metrics of r have the same length.
func (r *Run) Check() error {
	n := r.Len()
	for _, m := range r.Metrics {
		if len(m.Values) != n {
			return fmt.Errorf("run %s: metric %s has %d frames, want %d", r.Name, m.Spec, len(m.Values), n)
		}
	}
	return nil
}

// Params decodes r.Name. The result is computed on first use and
// cached.
func (r *Run) Params() (benchname.Params, error) {
	if r.params == nil {
		p, err := benchname.Decode(r.Name)
		r.params, r.paramsErr = &p, err
	}
	return *r.params, r.paramsErr
}
