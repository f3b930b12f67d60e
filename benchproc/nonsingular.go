// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

// NonSingularDims returns the subset of dims for which entries have
// more than one distinct value.
func NonSingularDims(entries []Entry, dims []Dim) []Dim {
	if len(entries) <= 1 {
		// There can't be any differences.
		return nil
	}
	var out []Dim
	for _, d := range dims {
		base := d.Value(entries[0].Params)
		for _, e := range entries[1:] {
			if d.Value(e.Params) != base {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Label returns a short label for e made of its values for dims,
// separated by spaces.
func (e *Entry) Label(dims []Dim) string {
	var s string
	for i, d := range dims {
		if i > 0 {
			s += " "
		}
		s += d.Value(e.Params)
	}
	return s
}
