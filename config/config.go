// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of a pipeline run.
//
// A Config starts from Default, may be loaded from a YAML file with
// Load, and is then typically overridden by command-line flags. Once
// validated it is passed by value and not modified.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/capfmt"
)

// Wildcard is the filter value that matches every value of a
// dimension.
const Wildcard = "*"

type Config struct {
	// HeaderLines is the number of metadata lines at the top of
	// each capture log.
	HeaderLines int `yaml:"header_lines"`

	// Columns lays out the metrics of a capture log.
	Columns []Column `yaml:"columns"`

	Filter Filter `yaml:"filter"`

	// OutputDir is the local directory or gs:// prefix output
	// files are written under.
	OutputDir string `yaml:"output_dir"`

	// Name is the base name of output files.
	Name string `yaml:"name"`

	Storage  Storage  `yaml:"storage"`
	Database Database `yaml:"database"`
	Chart    Chart    `yaml:"chart"`
}

// A Column is one metric column of a capture log.
type Column struct {
	Kind    benchname.DataType `yaml:"kind"`
	Index   int                `yaml:"index"`
	Include bool               `yaml:"include"`
}

// Filter selects the runs to pivot. Every dimension is either
// Wildcard, or a value: a renderer or mode code or display name, or
// an integer.
type Filter struct {
	DataType         string `yaml:"data_type"`
	Renderer         string `yaml:"renderer"`
	Mode             string `yaml:"mode"`
	ParticleCount    string `yaml:"particle_count"`
	ResolutionWidth  string `yaml:"resolution_width"`
	ResolutionHeight string `yaml:"resolution_height"`
	Complexity       string `yaml:"complexity"`
	Density          string `yaml:"density"`
	Spread           string `yaml:"spread"`
}

// Storage configures Cloud Storage access.
type Storage struct {
	CredentialsFile string `yaml:"credentials_file"`
	AccessToken     string `yaml:"access_token"`
}

// Database configures the optional summary store. An empty Driver
// disables it.
type Database struct {
	Driver string `yaml:"driver"` // "sqlite3" or "mysql"
	DSN    string `yaml:"dsn"`
}

// Chart configures chart output.
type Chart struct {
	Kind   string  `yaml:"kind"` // "box" or "bar"
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"` // in centimeters
}

// Default returns the default configuration: ten header lines, a
// single frametime column, and a filter on frametime that varies
// renderer and mode while fixing the other dimensions.
func Default() Config {
	return Config{
		HeaderLines: 10,
		Columns:     []Column{{Kind: benchname.Frametime, Index: 0, Include: true}},
		Filter: Filter{
			DataType:         benchname.Frametime.String(),
			Renderer:         Wildcard,
			Mode:             Wildcard,
			ParticleCount:    "1048576",
			ResolutionWidth:  "1024",
			ResolutionHeight: "768",
			Complexity:       "2",
			Density:          "400",
			Spread:           "29",
		},
		OutputDir: "results",
		Name:      "results",
		Chart:     Chart{Kind: "box", Width: 24, Height: 12},
	}
}

// Load reads the YAML file at path over Default and validates the
// result. Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that c is usable.
func (c Config) Validate() error {
	if c.HeaderLines < 0 {
		return fmt.Errorf("header_lines must not be negative, got %d", c.HeaderLines)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("no columns defined")
	}
	seen := make(map[int]bool)
	included := make(map[benchname.DataType]bool)
	for i, col := range c.Columns {
		if !col.Kind.Valid() {
			return fmt.Errorf("column %d: kind is required", i)
		}
		if col.Index < 0 {
			return fmt.Errorf("column %d (%s): index must not be negative", i, col.Kind)
		}
		if seen[col.Index] {
			return fmt.Errorf("column %d (%s): duplicate index %d", i, col.Kind, col.Index)
		}
		seen[col.Index] = true
		if col.Include {
			if included[col.Kind] {
				return fmt.Errorf("column %d (%s): kind included twice", i, col.Kind)
			}
			included[col.Kind] = true
		}
	}
	if _, err := c.Filter.Compile(); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch c.Database.Driver {
	case "", "sqlite3", "mysql":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.Chart.Kind {
	case "box", "bar":
	default:
		return fmt.Errorf("unknown chart kind %q", c.Chart.Kind)
	}
	return nil
}

// ColumnSpecs returns the capture layout of c.
func (c Config) ColumnSpecs() []capfmt.ColumnSpec {
	specs := make([]capfmt.ColumnSpec, len(c.Columns))
	for i, col := range c.Columns {
		specs[i] = capfmt.ColumnSpec{Kind: col.Kind, Index: col.Index, Include: col.Include}
	}
	return specs
}

// OutputPath returns the location of the output file with the given
// extension, named after the filter's data type and c.Name as in
// "results/Frametime-results.csv". The data type is written in its
// canonical spelling whatever case the filter gives it.
func (c Config) OutputPath(ext string) string {
	dt := c.Filter.DataType
	if d := benchname.ParseDataType(dt); d.Valid() {
		dt = d.String()
	}
	name := dt + "-" + c.Name + ext
	switch {
	case c.OutputDir == "":
		return name
	case strings.HasSuffix(c.OutputDir, "/"):
		return c.OutputDir + name
	}
	return c.OutputDir + "/" + name
}

// Compile converts f into a benchproc.Filter.
func (f Filter) Compile() (benchproc.Filter, error) {
	var out benchproc.Filter
	out.DataType = benchname.ParseDataType(f.DataType)
	if !out.DataType.Valid() {
		return out, fmt.Errorf("filter: unknown data type %q", f.DataType)
	}

	var err error
	if f.Renderer == Wildcard {
		out.Renderer = benchproc.Any[benchname.Renderer]()
	} else {
		r, rerr := benchname.ParseRenderer(f.Renderer)
		if rerr != nil {
			return out, fmt.Errorf("filter: %w", rerr)
		}
		out.Renderer = benchproc.Exact(r)
	}
	if f.Mode == Wildcard {
		out.Mode = benchproc.Any[benchname.Mode]()
	} else {
		m, merr := benchname.ParseMode(f.Mode)
		if merr != nil {
			return out, fmt.Errorf("filter: %w", merr)
		}
		out.Mode = benchproc.Exact(m)
	}

	ints := []struct {
		name string
		val  string
		dst  *benchproc.Match[int]
	}{
		{"particle_count", f.ParticleCount, &out.ParticleCount},
		{"resolution_width", f.ResolutionWidth, &out.ResolutionWidth},
		{"resolution_height", f.ResolutionHeight, &out.ResolutionHeight},
		{"complexity", f.Complexity, &out.Complexity},
		{"density", f.Density, &out.Density},
		{"spread", f.Spread, &out.Spread},
	}
	for _, d := range ints {
		if d.val == Wildcard {
			*d.dst = benchproc.Any[int]()
			continue
		}
		v, perr := strconv.Atoi(strings.TrimSpace(d.val))
		if perr != nil {
			err = fmt.Errorf("filter: %s must be %q or an integer, got %q", d.name, Wildcard, d.val)
			break
		}
		*d.dst = benchproc.Exact(v)
	}
	return out, err
}
