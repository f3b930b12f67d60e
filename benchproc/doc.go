// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc filters and pivots summarized benchmark runs into
// a single wide table.
//
// The input is a sequence of summary files in the sumfmt format, one
// per GPU and data type, named like "RTX-2080-Frametime". Each column
// of a summary file is one run, named by a test name that benchname
// decodes into experiment dimensions.
//
// A Filter fixes some dimensions to exact values and leaves the others
// as wildcards. The typical steps for pivoting a set of files are:
//
// 1. Build a Filter, usually from configuration.
//
// 2. Create an Aggregator with NewAggregator. This writes the header
// block of the output table: the constant settings of the Filter and
// a column of row labels.
//
// 3. Call Aggregator.AddFile for each summary file, in order. Files
// whose data type differs from the Filter's are skipped. Every run
// that matches the Filter becomes one output column, holding the
// values of the wildcard dimensions followed by the run's summary and
// samples.
//
// 4. Write Aggregator.Table with coltab, or render Aggregator.Entries
// as charts.
package benchproc
