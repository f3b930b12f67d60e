// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/capfmt"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, []capfmt.ColumnSpec{{Kind: benchname.Frametime, Index: 0, Include: true}}, cfg.ColumnSpecs())
	require.Equal(t, "results/Frametime-results.csv", cfg.OutputPath(".csv"))

	f, err := cfg.Filter.Compile()
	require.NoError(t, err)
	require.Equal(t, "Frametime * * 1048576 1024x768 2 400 29", f.String())
	require.Equal(t, []benchproc.Dim{benchproc.DimRenderer, benchproc.DimMode}, f.Wildcards())
}

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/full.yaml")
	require.NoError(t, err)
	require.Equal(t, 12, cfg.HeaderLines)
	require.Equal(t, []Column{
		{benchname.Frametime, 0, true},
		{benchname.GpuUsage, 3, true},
		{benchname.FbUsage, 4, false},
	}, cfg.Columns)
	require.Equal(t, "gs://vbparts-results/run1/GpuUsage-sweep.png", cfg.OutputPath(".png"))
	require.Equal(t, Storage{CredentialsFile: "key.json"}, cfg.Storage)
	require.Equal(t, Database{Driver: "sqlite3", DSN: "results.db"}, cfg.Database)
	// Unset chart fields keep their defaults.
	require.Equal(t, Chart{Kind: "bar", Width: 24, Height: 12}, cfg.Chart)

	f, err := cfg.Filter.Compile()
	require.NoError(t, err)
	require.Equal(t, benchname.GpuUsage, f.DataType)
	r, ok := f.Renderer.Value()
	require.True(t, ok)
	require.Equal(t, benchname.GBuffer6, r)
	require.Equal(t, []benchproc.Dim{benchproc.DimMode, benchproc.DimParticleCount, benchproc.DimSpread}, f.Wildcards())
	w, ok := f.ResolutionWidth.Value()
	require.True(t, ok)
	require.Equal(t, 1920, w)
}

func TestLoadPartial(t *testing.T) {
	cfg, err := Load("testdata/partial.yaml")
	require.NoError(t, err)
	want := Default()
	want.HeaderLines = 9
	require.Equal(t, want, cfg)
}

func TestLoadErrors(t *testing.T) {
	for _, name := range []string{"badcolumns", "badkind", "badfilter", "missing"} {
		_, err := Load("testdata/" + name + ".yaml")
		require.Error(t, err, name)
	}
}

func TestValidate(t *testing.T) {
	check := func(desc string, edit func(*Config)) {
		t.Helper()
		cfg := Default()
		edit(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: want error", desc)
		}
	}
	check("negative header", func(c *Config) { c.HeaderLines = -1 })
	check("no columns", func(c *Config) { c.Columns = nil })
	check("invalid kind", func(c *Config) { c.Columns[0].Kind = benchname.DataTypeInvalid })
	check("negative index", func(c *Config) { c.Columns[0].Index = -1 })
	check("kind included twice", func(c *Config) {
		c.Columns = append(c.Columns, Column{benchname.Frametime, 1, true})
	})
	check("bad mode", func(c *Config) { c.Filter.Mode = "nope" })
	check("bad count", func(c *Config) { c.Filter.ParticleCount = "many" })
	check("bad data type", func(c *Config) { c.Filter.DataType = "Framerate" })
	check("no name", func(c *Config) { c.Name = "" })
	check("bad driver", func(c *Config) { c.Database.Driver = "postgres" })
	check("bad chart", func(c *Config) { c.Chart.Kind = "pie" })

	// A column that is only parsed may repeat an included kind.
	cfg := Default()
	cfg.Columns = append(cfg.Columns, Column{benchname.Frametime, 1, false})
	require.NoError(t, cfg.Validate())
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = ""
	require.Equal(t, "Frametime-results.csv", cfg.OutputPath(".csv"))
	cfg.OutputDir = "out/"
	require.Equal(t, "out/Frametime-results.html", cfg.OutputPath(".html"))
	cfg.Filter.DataType = "gpuusage"
	require.Equal(t, "out/GpuUsage-results.csv", cfg.OutputPath(".csv"))
}
