// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/vbparts/perfdata/benchmath"
	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/capfmt"
	"github.com/vbparts/perfdata/sumfmt"
)

// A Diagnostic is a problem with one input. Line and Column are
// 1-based when known and 0 otherwise.
type Diagnostic struct {
	File         string
	Line, Column int
	Warning      bool // the input was still processed
	Err          error
}

func (d Diagnostic) String() string {
	msg := d.Err.Error()
	if strings.HasPrefix(msg, d.File+":") {
		return msg
	}
	return d.File + ": " + msg
}

// A FileResult records what became of one input.
type FileResult struct {
	ID          string
	Fingerprint string

	// Included and Excluded count runs.
	Included, Excluded int

	// Removed counts samples dropped as capture artifacts.
	Removed int

	// Failed is set if a file-level error kept the whole input out
	// of the output.
	Failed bool
}

// A Report is the outcome of a batch.
type Report struct {
	Files       []FileResult
	Diagnostics []Diagnostic

	// Stopped is the reason the batch stopped before its last input:
	// the context's error or the error returned by Options.Progress.
	Stopped error

	// Batch is the resultsdb batch the summaries were stored in, if
	// any.
	Batch string
}

// Included returns the total number of runs included in the output.
func (r *Report) Included() int {
	n := 0
	for _, f := range r.Files {
		n += f.Included
	}
	return n
}

// Excluded returns the total number of runs left out of the output.
func (r *Report) Excluded() int {
	n := 0
	for _, f := range r.Files {
		n += f.Excluded
	}
	return n
}

// Failed returns the number of inputs that failed entirely.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed {
			n++
		}
	}
	return n
}

// Errors returns the diagnostics that are not warnings.
func (r *Report) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Warning {
			out = append(out, d)
		}
	}
	return out
}

func (r *Report) add(file string, warning bool, err error) {
	d := Diagnostic{File: file, Warning: warning, Err: err}
	var serr *capfmt.SyntaxError
	var cerr *sumfmt.CellError
	switch {
	case errors.As(err, &serr):
		d.Line = serr.Line
		if serr.Column >= 0 {
			d.Column = serr.Column + 1
		}
	case errors.As(err, &cerr):
		d.Line, d.Column = cerr.Row+1, cerr.Column+1
	}
	r.Diagnostics = append(r.Diagnostics, d)
}

func (r *Report) addStats(st benchproc.FileStats, fingerprint string) {
	res := FileResult{ID: st.ID, Fingerprint: fingerprint, Included: st.Included, Excluded: st.Excluded}
	if st.Err != nil {
		res.Failed = true
		r.add(st.ID, false, st.Err)
	}
	for _, err := range st.Errors {
		r.add(st.ID, false, err)
	}
	for _, err := range st.Warnings {
		r.add(st.ID, true, err)
	}
	r.Files = append(r.Files, res)
}

// Summary returns a one-line summary of r.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d files, %d runs included, %d excluded", len(r.Files), r.Included(), r.Excluded())
	if n := r.Failed(); n > 0 {
		s += fmt.Sprintf(", %d files failed", n)
	}
	if r.Stopped != nil {
		s += fmt.Sprintf(" (stopped: %v)", r.Stopped)
	}
	return s
}

type diagRow struct {
	File     string
	Position string
	Level    string
	Kind     string
	Message  string
}

// kinds names the error kinds a diagnostic may carry.
var kinds = []struct {
	err  error
	name string
}{
	{benchname.ErrMalformedTestName, "MalformedTestName"},
	{benchname.ErrUnknownRendererCode, "UnknownRendererCode"},
	{benchname.ErrUnknownModeCode, "UnknownModeCode"},
	{benchname.ErrMalformedResolution, "MalformedResolution"},
	{benchname.ErrInvalidNumber, "InvalidNumber"},
	{capfmt.ErrNonNumericField, "NonNumericField"},
	{capfmt.ErrInsufficientColumns, "InsufficientColumns"},
	{benchmath.ErrEmptySeries, "EmptySeriesForStatistics"},
	{sumfmt.ErrShortTable, "ShortTable"},
}

// Kind returns the name of the kind of d's error, or "" if it is not
// one of the pipeline's error kinds.
func (d Diagnostic) Kind() string {
	for _, k := range kinds {
		if errors.Is(d.Err, k.err) {
			return k.name
		}
	}
	return ""
}

// Print writes the diagnostics of r to w as a table, followed by the
// summary line.
func (r *Report) Print(w io.Writer) error {
	if len(r.Diagnostics) > 0 {
		rows := make([]diagRow, len(r.Diagnostics))
		for i, d := range r.Diagnostics {
			row := diagRow{File: d.File, Level: "error", Kind: d.Kind(), Message: d.Err.Error()}
			if d.Warning {
				row.Level = "warning"
			}
			if d.Line > 0 {
				row.Position = fmt.Sprint(d.Line)
				if d.Column > 0 {
					row.Position += fmt.Sprintf(":%d", d.Column)
				}
			}
			rows[i] = row
		}
		if err := table.Fprint(w, table.TableFromStructs(rows)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, r.Summary())
	return err
}
