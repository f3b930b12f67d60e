// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capfmt

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// metaColumns is the number of leading per-frame metadata columns.
const metaColumns = 2

// notAvailable marks a sample the capture tool could not read.
const notAvailable = "N/A"

var (
	ErrNonNumericField     = errors.New("non-numeric field")
	ErrInsufficientColumns = errors.New("insufficient columns")
)

// A SyntaxError represents a problem on a particular line of a capture
// log. Any SyntaxError aborts parsing of the whole file.
type SyntaxError struct {
	FileName string
	Line     int // 1-based physical line number
	Column   int // 0-based comma-separated field, or -1
	Msg      string
	Err      error // ErrNonNumericField or ErrInsufficientColumns
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("%s:%d: column %d: %s", e.FileName, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Parse parses a capture log into a Run named name.
//
// The first headerLines non-blank lines are metadata and are skipped,
// along with the first frame (which is usually partial) and the last
// frame (which is usually incomplete). Blank lines are ignored
// everywhere. Every remaining line must have a numeric field for each
// of specs; a field beginning with "N/A" reads as 0, and NaN or infinite
// values are malformed.
//
// The returned Run has one Metric per spec, in order. Parse returns a
// *SyntaxError if any frame line is malformed, in which case no Run is
// produced.
func Parse(data []byte, name string, headerLines int, specs []ColumnSpec) (*Run, error) {
	type line struct {
		n    int
		text string
	}
	var lines []line
	for i, l := range bytes.Split(data, []byte("\n")) {
		l = bytes.TrimRight(l, "\r")
		if len(bytes.TrimSpace(l)) == 0 {
			continue
		}
		lines = append(lines, line{i + 1, string(l)})
	}

	// Skip the header and the first frame, and drop the last frame.
	lo := min(max(headerLines+1, 0), len(lines))
	hi := max(lo, len(lines)-1)
	frames := lines[lo:hi]

	run := &Run{Name: name, Metrics: make([]Metric, len(specs))}
	for i, spec := range specs {
		run.Metrics[i] = Metric{Spec: spec, Values: make([]float64, 0, len(frames))}
	}

	var fields []string
	for _, l := range frames {
		fields = splitFields(fields[:0], l.text)
		for i, spec := range specs {
			col := spec.Index + metaColumns
			if col < 0 || col >= len(fields) {
				return nil, &SyntaxError{name, l.n, -1,
					fmt.Sprintf("line has %d fields, too short for %s", len(fields), spec), ErrInsufficientColumns}
			}
			val, err := parseSample(fields[col])
			if err != nil {
				return nil, &SyntaxError{name, l.n, col,
					fmt.Sprintf("cannot parse %s sample %q", spec.Kind, fields[col]), ErrNonNumericField}
			}
			run.Metrics[i].Values = append(run.Metrics[i].Values, val)
		}
	}
	return run, nil
}

// splitFields appends the non-empty comma-separated fields of line to
// fields, trimming surrounding spaces. The capture tool pads fields
// with spaces and never writes an empty field that carries meaning.
func splitFields(fields []string, line string) []string {
	for _, f := range strings.Split(line, ",") {
		if f == "" {
			continue
		}
		fields = append(fields, strings.TrimSpace(f))
	}
	return fields
}

// parseSample parses one sample. NaN and infinities are rejected: they
// have no place in an ordered series.
func parseSample(f string) (float64, error) {
	if strings.HasPrefix(f, notAvailable) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonNumericField
	}
	return v, nil
}
