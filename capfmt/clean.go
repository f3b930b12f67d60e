// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capfmt

import "github.com/vbparts/perfdata/benchname"

// Clean removes capture glitches from r and returns the number of
// frames removed.
//
// The capture tool occasionally records a frametime of zero, which
// also corrupts the frames on either side of it across every metric.
// Clean finds the first non-positive frametime, removes that frame and
// its immediate neighbors from every metric of r, and repeats until no
// such frame remains. A frametime series with no positive value is
// left alone: it is a disabled metric, not a glitch.
//
// If r has no Frametime metric, Clean does nothing.
func (r *Run) Clean() (removed int) {
	ft := r.Metric(benchname.Frametime)
	if ft == nil {
		return 0
	}
	for {
		i := glitch(ft.Values)
		if i < 0 {
			return removed
		}
		lo, hi := max(i-1, 0), min(i+2, len(ft.Values))
		for j := range r.Metrics {
			m := &r.Metrics[j]
			m.Values = append(m.Values[:lo], m.Values[hi:]...)
		}
		removed += hi - lo
	}
}

// glitch returns the index of the first non-positive value in xs, or
// -1 if there is none or if no value in xs is positive.
func glitch(xs []float64) int {
	first := -1
	positive := false
	for i, x := range xs {
		if x > 0 {
			positive = true
		} else if x <= 0 && first < 0 {
			first = i
		}
		if positive && first >= 0 {
			return first
		}
	}
	return -1
}
