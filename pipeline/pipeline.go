// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline runs the two stages of capture processing over a
// sequence of inputs.
//
// Summarize turns capture logs into summary tables. Aggregate pivots
// summary tables into an output table. Both process one input at a
// time: each input is read, processed and appended to the output
// before the next one is read. After each input, the Options.Progress
// callback and the context are consulted; this is the only point at
// which a batch may stop early.
//
// Only failure to read the input set stops a batch with an error.
// Problems with a single input are recorded in the Report and the
// batch goes on with the next input.
package pipeline

import (
	"context"
	"fmt"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/capfmt"
	"github.com/vbparts/perfdata/coltab"
	"github.com/vbparts/perfdata/config"
	"github.com/vbparts/perfdata/internal/source"
	"github.com/vbparts/perfdata/resultsdb"
	"github.com/vbparts/perfdata/sumfmt"
)

// Inputs is a sequence of inputs, such as a *source.Files or a
// *source.List.
type Inputs interface {
	Scan() bool
	Input() *source.Input
	Err() error
}

// lener is implemented by Inputs that know how many inputs remain.
type lener interface {
	Len() int
}

// Progress describes the checkpoint after one input.
type Progress struct {
	File  string // ID of the input just processed
	Index int    // 1-based
	Total int    // 0 if unknown
}

func (p Progress) String() string {
	if p.Total <= 0 {
		return fmt.Sprintf("File %d", p.Index)
	}
	return fmt.Sprintf("File %d of %d (%d%%)", p.Index, p.Total, p.Index*100/p.Total)
}

// Options are optional settings for a batch.
type Options struct {
	// Progress is called at the checkpoint after each input. If it
	// returns an error, the batch stops there and the error is
	// recorded in Report.Stopped.
	Progress func(Progress) error

	// DB, if not nil, receives a summary of every run summarized by
	// Summarize, as one batch.
	DB *resultsdb.DB
}

// checkpoint reports whether the batch should go on after the input
// just processed.
func (o *Options) checkpoint(ctx context.Context, r *Report, p Progress) bool {
	if o.Progress != nil {
		if err := o.Progress(p); err != nil {
			r.Stopped = err
			return false
		}
	}
	if err := ctx.Err(); err != nil {
		r.Stopped = err
		return false
	}
	return true
}

// total returns the number of inputs in, counting the one being
// processed, or 0 if in does not know.
func total(in Inputs, index int) int {
	if l, ok := in.(lener); ok {
		return index + l.Len()
	}
	return 0
}

// A KindTable is the summary table of one data type.
type KindTable struct {
	Kind  benchname.DataType
	Table *coltab.Table
}

// A Summary is the result of Summarize.
type Summary struct {
	// Table holds every included metric of every run.
	Table *coltab.Table

	// Kinds holds one table per included data type, in column order.
	// These are the tables Aggregate reads.
	Kinds []KindTable

	// Runs are the summarized runs, in input order.
	Runs []*sumfmt.RunSummary
}

// Summarize parses, cleans and summarizes each capture log in inputs.
// Each input holds one run, named by the input's ID.
func Summarize(ctx context.Context, cfg config.Config, inputs Inputs, opts Options) (*Summary, *Report, error) {
	specs := cfg.ColumnSpecs()
	all := sumfmt.NewWriter()
	var kinds []benchname.DataType
	byKind := make(map[benchname.DataType]*sumfmt.Writer)
	for _, s := range specs {
		if s.Include && byKind[s.Kind] == nil {
			kinds = append(kinds, s.Kind)
			byKind[s.Kind] = sumfmt.NewWriter()
		}
	}

	var batch *resultsdb.Batch
	if opts.DB != nil {
		var err error
		if batch, err = opts.DB.NewBatch(ctx); err != nil {
			return nil, nil, fmt.Errorf("starting batch: %w", err)
		}
		defer batch.Abort()
	}

	sum := new(Summary)
	r := new(Report)
	for i := 1; inputs.Scan(); i++ {
		in := inputs.Input()
		res := FileResult{ID: in.ID, Fingerprint: in.Fingerprint()}

		rs, removed, err := summarizeRun(in, cfg.HeaderLines, specs, r)
		res.Removed = removed
		if err != nil {
			res.Failed = true
			res.Excluded = 1
			r.add(in.ID, false, err)
		} else {
			res.Included = 1
			all.Add(rs)
			for _, m := range rs.Metrics {
				byKind[m.Kind].Add(&sumfmt.RunSummary{Name: rs.Name, Metrics: []sumfmt.MetricSummary{m}})
			}
			sum.Runs = append(sum.Runs, rs)
			if batch != nil {
				for _, m := range rs.Metrics {
					run := &resultsdb.Run{File: in.ID, Fingerprint: res.Fingerprint, Name: rs.Name, Kind: m.Kind, Summary: m.Summary}
					if err := batch.InsertRun(ctx, run); err != nil {
						return nil, nil, fmt.Errorf("storing %s: %w", in.ID, err)
					}
				}
			}
		}
		r.Files = append(r.Files, res)

		if !opts.checkpoint(ctx, r, Progress{in.ID, i, total(inputs, i)}) {
			break
		}
	}
	if err := inputs.Err(); err != nil {
		return nil, nil, err
	}

	if batch != nil {
		if err := batch.Commit(); err != nil {
			return nil, nil, fmt.Errorf("storing batch: %w", err)
		}
		r.Batch = batch.ID
	}
	sum.Table = all.Table()
	for _, k := range kinds {
		sum.Kinds = append(sum.Kinds, KindTable{k, byKind[k].Table()})
	}
	return sum, r, nil
}

// summarizeRun processes one capture log. Test name problems are
// recorded in r as warnings; the run is still summarized.
func summarizeRun(in *source.Input, headerLines int, specs []capfmt.ColumnSpec, r *Report) (*sumfmt.RunSummary, int, error) {
	run, err := capfmt.Parse(in.Data, in.ID, headerLines, specs)
	if err != nil {
		return nil, 0, err
	}
	removed := run.Clean()
	if p, err := run.Params(); err != nil {
		r.add(in.ID, true, err)
	} else {
		for _, w := range p.Warnings {
			r.add(in.ID, true, w)
		}
	}
	rs, err := sumfmt.Summarize(run)
	return rs, removed, err
}

// Aggregate pivots each summary table in inputs into one output table
// with cfg's filter. The ID of each input names its GPU and data type,
// as in "RTX-2080-Frametime".
func Aggregate(ctx context.Context, cfg config.Config, inputs Inputs, opts Options) (*benchproc.Aggregator, *Report, error) {
	filter, err := cfg.Filter.Compile()
	if err != nil {
		return nil, nil, err
	}
	a := benchproc.NewAggregator(filter)
	r := new(Report)
	for i := 1; inputs.Scan(); i++ {
		in := inputs.Input()
		st := a.AddFile(in.ID, in.Data)
		r.addStats(st, in.Fingerprint())

		if !opts.checkpoint(ctx, r, Progress{in.ID, i, total(inputs, i)}) {
			break
		}
	}
	if err := inputs.Err(); err != nil {
		return nil, nil, err
	}
	return a, r, nil
}
