// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes summary statistics over series of
// capture measurements.
//
// Quartiles are nearest-rank order statistics, not interpolated: the
// k'th quartile of n sorted values is the value at index
// floor((n-1)*k/4). Downstream tools compare these numbers across
// runs, so the exact definition matters more than statistical nicety.
//
// Summaries contain a list of warnings, captured as an []error value.
// These aren't errors that prevent analysis, but should be presented
// to the user along with the results.
package benchmath

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// ErrEmptySeries is returned when summarizing a series with no values.
var ErrEmptySeries = errors.New("empty series")

// minQuartileN is the smallest sample for which the quartiles are
// distinct order statistics.
const minQuartileN = 5

// A Sample is a series of measurements in ascending order.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64

	// Warnings is a list of warnings about this sample that
	// should be reported to the user.
	Warnings []error
}

// NewSample constructs a Sample from a series of measurements. It
// sorts a copy of values, leaving values itself in capture order.
func NewSample(values []float64) *Sample {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s := &Sample{Values: sorted}
	if n := len(sorted); n > 0 && n < minQuartileN {
		s.Warnings = append(s.Warnings, fmt.Errorf("only %d values; quartiles are not distinct", n))
	}
	return s
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Quartile returns the k'th quartile of s, for k in [0, 4]. Quartile 0
// is the minimum, 2 the median and 4 the maximum. s must not be
// empty.
func (s *Sample) Quartile(k int) float64 {
	if k < 0 || k > 4 {
		panic(fmt.Sprintf("quartile %d out of range [0, 4]", k))
	}
	n := len(s.Values)
	return s.Values[(n-1)*k/4]
}

// Mean returns the arithmetic mean of s.
func (s *Sample) Mean() float64 {
	return s.sample().Sum() / float64(len(s.Values))
}

// A Summary summarizes a Sample.
type Summary struct {
	N int

	// Min, Q1, Median, Q3 and Max are quartiles 0 through 4.
	Min, Q1, Median, Q3, Max float64

	// Average is the arithmetic mean of all values.
	Average float64

	// Warnings is a list of warnings about this summary.
	Warnings []error
}

// Summarize computes the Summary of values, which need not be sorted
// and are not modified. It returns ErrEmptySeries if values is empty.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptySeries
	}
	s := NewSample(values)
	return Summary{
		N:        len(s.Values),
		Min:      s.Quartile(0),
		Q1:       s.Quartile(1),
		Median:   s.Quartile(2),
		Q3:       s.Quartile(3),
		Max:      s.Quartile(4),
		Average:  s.Mean(),
		Warnings: s.Warnings,
	}, nil
}

// Quartiles returns the five quartiles of s, from Min to Max.
func (s Summary) Quartiles() [5]float64 {
	return [5]float64{s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// IQRString returns the interquartile range of s as a percentage of
// the median, e.g. "±4%".
func (s Summary) IQRString() string {
	if math.IsInf(s.Q1, 0) || math.IsInf(s.Q3, 0) {
		return "∞"
	}

	// A range straddling zero can't be rendered as a percent.
	var csign = mathx.Sign(s.Median)
	if csign != mathx.Sign(s.Q1) || csign != mathx.Sign(s.Q3) {
		return "?"
	}

	// Only reachable with Q1 and Q3 also 0.
	if s.Median == 0 {
		return "±0%"
	}

	v := math.Max(math.Abs(s.Q3/s.Median-1), math.Abs(1-s.Q1/s.Median))
	return fmt.Sprintf("±%.0f%%", 100*v)
}
