// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfsummarize summarizes capture logs into summary tables.
//
// Usage:
//
//	perfsummarize [flags] capture-file...
//
// Each input is the frame log of one test run, named after the test:
// fwd_co_1048576_1024x768_2_400_29.csv is a Forward renderer run in
// CompComp mode with 1048576 particles at 1024x768, and so on. A
// directory or gs:// prefix stands for the files in it, and compressed
// inputs (.zst, .gz, .lz4) are read transparently.
//
// For each run, perfsummarize reads the metric columns configured in
// the -config file (by default, frametime only), drops the samples
// around capture glitches, and computes the average and quartiles of
// every included metric.
//
// The summaries of each data type are written to <dir>/<gpu>-<type>.csv,
// the form perfpivot reads, where dir and gpu are set by -o and -gpu.
// With -o -, a single table with every included metric is written to
// standard output instead.
//
// If the configuration names a database, the summaries are also stored
// in it as one batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/vbparts/perfdata/config"
	"github.com/vbparts/perfdata/internal/objstore"
	"github.com/vbparts/perfdata/internal/source"
	"github.com/vbparts/perfdata/pipeline"
	"github.com/vbparts/perfdata/resultsdb"
	_ "github.com/vbparts/perfdata/resultsdb/sqlite3"
)

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), "Usage: perfsummarize [flags] capture-file...\n\n")
		fs.PrintDefaults()
	}
}

func main() {
	log.SetPrefix("perfsummarize: ")
	log.SetFlags(0)
	if err := perfsummarize(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func perfsummarize(w, wErr io.Writer, args []string) error {
	fs := flag.NewFlagSet("perfsummarize", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = usage(fs)
	flagConfig := fs.String("config", "", "read settings from YAML `file`")
	flagHeader := fs.Int("header", -1, "skip `n` metadata lines at the top of each capture")
	flagOut := fs.String("o", "", "write summaries under `dir`, or - for standard output")
	flagGPU := fs.String("gpu", "", "`name` of the GPU the captures were made on")
	flagDB := fs.String("db", "", "store summaries in database `driver:dsn`")
	flagVerbose := fs.Bool("v", false, "print progress and all diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no inputs")
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			return err
		}
	}
	if *flagHeader >= 0 {
		cfg.HeaderLines = *flagHeader
	}
	if *flagOut != "" {
		cfg.OutputDir = *flagOut
	}
	if *flagDB != "" {
		driver, dsn, ok := strings.Cut(*flagDB, ":")
		if !ok {
			return fmt.Errorf("-db must be driver:dsn")
		}
		cfg.Database = config.Database{Driver: driver, DSN: dsn}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gpu := *flagGPU
	if gpu == "" {
		gpu = cfg.Name
	}
	gpu = strings.ReplaceAll(gpu, " ", "-")

	ctx := context.Background()
	store := objstore.New(objstore.Options{
		CredentialsFile: cfg.Storage.CredentialsFile,
		AccessToken:     cfg.Storage.AccessToken,
	})
	defer store.Close()

	var opts pipeline.Options
	if cfg.Database.Driver != "" {
		db, err := resultsdb.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		opts.DB = db
	}
	if *flagVerbose {
		opts.Progress = func(p pipeline.Progress) error {
			fmt.Fprintln(wErr, p)
			return nil
		}
	}

	files := &source.Files{Paths: fs.Args(), Store: store, Context: ctx, AllowLabels: true}
	sum, rep, err := pipeline.Summarize(ctx, cfg, files, opts)
	if err != nil {
		return err
	}

	if cfg.OutputDir == "-" {
		if err := sum.Table.WriteCSV(w); err != nil {
			return err
		}
	} else {
		for _, k := range sum.Kinds {
			loc := outputPath(cfg.OutputDir, gpu+"-"+k.Kind.String()+".csv")
			f, err := store.Create(ctx, loc)
			if err != nil {
				return err
			}
			if err := k.Table.WriteCSV(f); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", loc, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", loc, err)
			}
		}
	}

	if *flagVerbose {
		if err := rep.Print(wErr); err != nil {
			return err
		}
	} else {
		for _, d := range rep.Errors() {
			fmt.Fprintln(wErr, d)
		}
		fmt.Fprintln(wErr, rep.Summary())
	}
	if rep.Batch != "" {
		fmt.Fprintf(wErr, "stored as batch %s\n", rep.Batch)
	}
	return nil
}

func outputPath(dir, name string) string {
	switch {
	case dir == "":
		return name
	case strings.HasSuffix(dir, "/"):
		return dir + name
	}
	return dir + "/" + name
}
