// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfpivot combines summary tables into a single pivot table.
//
// Usage:
//
//	perfpivot [flags] summary-file...
//
// Each input is a summary table written by perfsummarize, named
// after the GPU it was captured on and the data type it holds, as in
// RTX-2080-Frametime.csv. A directory or gs:// prefix stands for the
// files in it, and compressed inputs (.zst, .gz, .lz4) are read
// transparently.
//
// Perfpivot selects the runs of every input whose test names match a
// filter. The filter fixes each of the seven test name dimensions to a
// value or leaves it variable with "*":
//
//	perfpivot -type GpuUsage -renderer '*' -mode vege -count '*' results/
//
// Runs are laid out one per column, grouped by GPU, under a header
// block listing the filter's constant settings. A variable dimension
// gets a row of its own; a cell in it is left blank when it repeats
// the value to its left.
//
// The table is written to <dir>/<type>-<name>.csv, where dir and name
// are set by -o and -name. With -o -, it is written to standard output
// instead, as CSV or, with -format text, as aligned text.
//
// The -html flag also writes an HTML report, and -chart writes one
// chart per GPU (png or svg) or a single interactive page (html).
//
// Settings not given by flags come from the YAML file named by
// -config, or from built-in defaults.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/chart"
	"github.com/vbparts/perfdata/config"
	"github.com/vbparts/perfdata/internal/objstore"
	"github.com/vbparts/perfdata/internal/source"
	"github.com/vbparts/perfdata/pipeline"
	"github.com/vbparts/perfdata/report"
)

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), "Usage: perfpivot [flags] summary-file...\n\n")
		fs.PrintDefaults()
	}
}

func main() {
	log.SetPrefix("perfpivot: ")
	log.SetFlags(0)
	if err := perfpivot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func perfpivot(w, wErr io.Writer, args []string) error {
	fs := flag.NewFlagSet("perfpivot", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = usage(fs)
	flagConfig := fs.String("config", "", "read settings from YAML `file`")
	var filter struct {
		dataType, renderer, mode, count, width, height, complexity, density, spread string
	}
	fs.StringVar(&filter.dataType, "type", "", "pivot summaries of data `type`")
	fs.StringVar(&filter.renderer, "renderer", "", "select `renderer` code or name, or *")
	fs.StringVar(&filter.mode, "mode", "", "select `mode` code or name, or *")
	fs.StringVar(&filter.count, "count", "", "select particle `count`, or *")
	fs.StringVar(&filter.width, "width", "", "select resolution `width`, or *")
	fs.StringVar(&filter.height, "height", "", "select resolution `height`, or *")
	fs.StringVar(&filter.complexity, "complexity", "", "select particle `complexity`, or *")
	fs.StringVar(&filter.density, "density", "", "select particle `density`, or *")
	fs.StringVar(&filter.spread, "spread", "", "select particle `spread`, or *")
	flagOut := fs.String("o", "", "write output under `dir`, or - for standard output")
	flagName := fs.String("name", "", "base `name` of output files")
	flagFormat := fs.String("format", "csv", "standard output `format`: csv or text")
	flagHTML := fs.Bool("html", false, "also write an HTML report")
	flagChart := fs.String("chart", "", "also write charts as `format` png, svg or html")
	flagChartKind := fs.String("chart-kind", "", "draw runs as `kind` box or bar")
	flagVerbose := fs.Bool("v", false, "print progress and all diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no inputs")
	}
	switch *flagFormat {
	case "csv", "text":
	default:
		return fmt.Errorf("unknown -format %q", *flagFormat)
	}
	switch *flagChart {
	case "", "png", "svg", "html":
	default:
		return fmt.Errorf("unknown -chart %q", *flagChart)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			return err
		}
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Filter.DataType, filter.dataType)
	set(&cfg.Filter.Renderer, filter.renderer)
	set(&cfg.Filter.Mode, filter.mode)
	set(&cfg.Filter.ParticleCount, filter.count)
	set(&cfg.Filter.ResolutionWidth, filter.width)
	set(&cfg.Filter.ResolutionHeight, filter.height)
	set(&cfg.Filter.Complexity, filter.complexity)
	set(&cfg.Filter.Density, filter.density)
	set(&cfg.Filter.Spread, filter.spread)
	set(&cfg.OutputDir, *flagOut)
	set(&cfg.Name, *flagName)
	set(&cfg.Chart.Kind, *flagChartKind)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	store := objstore.New(objstore.Options{
		CredentialsFile: cfg.Storage.CredentialsFile,
		AccessToken:     cfg.Storage.AccessToken,
	})
	defer store.Close()

	files := &source.Files{Paths: fs.Args(), Store: store, Context: ctx, AllowLabels: true}
	var opts pipeline.Options
	if *flagVerbose {
		opts.Progress = func(p pipeline.Progress) error {
			fmt.Fprintln(wErr, p)
			return nil
		}
	}
	agg, rep, err := pipeline.Aggregate(ctx, cfg, files, opts)
	if err != nil {
		return err
	}

	if err := writeOutputs(ctx, w, store, cfg, agg, *flagFormat, *flagHTML, *flagChart); err != nil {
		return err
	}

	if *flagVerbose {
		return rep.Print(wErr)
	}
	for _, d := range rep.Errors() {
		fmt.Fprintln(wErr, d)
	}
	fmt.Fprintln(wErr, rep.Summary())
	return nil
}

func writeOutputs(ctx context.Context, w io.Writer, store *objstore.Store, cfg config.Config, agg *benchproc.Aggregator, format string, html bool, chartFormat string) error {
	filter := agg.Filter()
	if cfg.OutputDir == "-" {
		if format == "text" {
			return agg.Table().Format(w)
		}
		return agg.Table().WriteCSV(w)
	}

	create := func(loc string, write func(io.Writer) error) error {
		f, err := store.Create(ctx, loc)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", loc, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", loc, err)
		}
		return nil
	}

	if err := create(cfg.OutputPath(".csv"), agg.Table().WriteCSV); err != nil {
		return err
	}

	groups := chart.Groups(agg.Entries())
	dims := filter.Wildcards()
	kind := chart.Kind(cfg.Chart.Kind)
	var images []string
	switch chartFormat {
	case "png", "svg":
		for _, g := range groups {
			pl, err := chart.Plot(g, filter.DataType, dims, kind)
			if err != nil {
				return err
			}
			width, height := chart.Size(len(g.Entries), cfg.Chart.Width, cfg.Chart.Height)
			loc := cfg.OutputPath("-" + slug(g.GPU) + "." + chartFormat)
			err = create(loc, func(out io.Writer) error {
				if chartFormat == "svg" {
					return chart.WriteSVG(out, pl, width, height)
				}
				return chart.WritePNG(out, pl, width, height)
			})
			if err != nil {
				return err
			}
			images = append(images, baseName(loc))
		}
	case "html":
		err := create(cfg.OutputPath("-charts.html"), func(out io.Writer) error {
			return chart.WriteHTML(out, groups, filter.DataType, dims, kind)
		})
		if err != nil {
			return err
		}
	}

	if html {
		page := &report.Page{
			Title:   fmt.Sprintf("%s: %s", filter.DataType, cfg.Name),
			Filter:  filter.String(),
			Table:   agg.Table(),
			Entries: agg.Entries(),
			Charts:  images,
		}
		err := create(cfg.OutputPath(".html"), func(out io.Writer) error {
			return report.Write(out, page)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// slug makes a GPU name usable in a file name.
func slug(gpu string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_':
			return r
		}
		return '-'
	}, gpu)
}

func baseName(loc string) string {
	return loc[strings.LastIndex(loc, "/")+1:]
}
