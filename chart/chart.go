// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws the runs selected by a benchproc.Aggregator, one
// chart per GPU.
//
// Each run is drawn as a box spanning its quartiles, with whiskers to
// its minimum and maximum, or as a bar of its average. Runs are
// colored by renderer so that renderers can be told apart across
// charts.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
)

// A Kind selects how runs are drawn.
type Kind string

const (
	Box Kind = "box"
	Bar Kind = "bar"
)

// A Group is the runs of one GPU, in output order.
type Group struct {
	GPU     string
	Entries []benchproc.Entry
}

// Groups splits entries by GPU, in order of first appearance.
func Groups(entries []benchproc.Entry) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.GPU]
		if !ok {
			i = len(groups)
			index[e.GPU] = i
			groups = append(groups, Group{GPU: e.GPU})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

var rendererHues = map[benchname.Renderer]float64{
	benchname.Forward:  0,
	benchname.GBuffer3: 90,
	benchname.GBuffer6: 180,
	benchname.VBuffer:  270,
}

// RendererColor returns the color runs of renderer r are drawn in.
// Invalid renderers are gray.
func RendererColor(r benchname.Renderer) color.Color {
	h, ok := rendererHues[r]
	if !ok {
		return color.Gray{0x80}
	}
	return palette.HSVA{H: h / 360, S: 0.7, V: 0.85, A: 1}
}

// Labels returns an axis label for each entry of g made of the values
// of dims. If no dimension varies, the test names are used instead.
func (g Group) Labels(dims []benchproc.Dim) []string {
	dims = benchproc.NonSingularDims(g.Entries, dims)
	labels := make([]string, len(g.Entries))
	for i := range g.Entries {
		if len(dims) == 0 {
			labels[i] = g.Entries[i].Name
		} else {
			labels[i] = g.Entries[i].Label(dims)
		}
	}
	return labels
}

// Plot draws g. dims are the wildcard dimensions of the filter that
// selected g, used to label runs.
func Plot(g Group, dt benchname.DataType, dims []benchproc.Dim, kind Kind) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s: %s", g.GPU, dt)
	if u := dt.Unit(); u != "" {
		pl.Y.Label.Text = fmt.Sprintf("%s (%s)", dt, u)
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	w := vg.Points(20)
	var plotters []plot.Plotter
	for i, e := range g.Entries {
		clr := RendererColor(e.Params.Renderer)
		switch kind {
		case Bar:
			b, err := plotter.NewBarChart(plotter.Values{e.Summary.Average}, w)
			if err != nil {
				return nil, err
			}
			b.XMin = float64(i)
			b.Color = clr
			b.LineStyle.Color = color.Black
			plotters = append(plotters, b)
		default:
			q := e.Summary.Quartiles()
			b, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(q[:]))
			if err != nil {
				return nil, err
			}
			// Draw the nearest-rank summary, whiskers to the
			// extremes, with no outliers.
			b.Median, b.Quartile1, b.Quartile3 = e.Summary.Median, e.Summary.Q1, e.Summary.Q3
			b.Min, b.Max = e.Summary.Min, e.Summary.Max
			b.AdjLow, b.AdjHigh = e.Summary.Min, e.Summary.Max
			b.Outside = nil
			b.FillColor = clr
			b.BoxStyle.Color = color.Black
			plotters = append(plotters, b)
		}
	}
	pl.Add(plotters...)
	pl.NominalX(g.Labels(dims)...)

	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft
	if kind == Bar && pl.Y.Min > 0 {
		pl.Y.Min = 0
	}
	return pl, nil
}

// Size returns a width and height in centimeters for a chart of n
// runs, unless width and height are given.
func Size(n int, width, height float64) (vg.Length, vg.Length) {
	if width <= 0 {
		width = 1.5 * float64(2+n)
	}
	if height <= 0 {
		height = math.Max(width/3, 8)
	}
	return vg.Length(width) * vg.Centimeter, vg.Length(height) * vg.Centimeter
}

// WritePNG draws pl on a w by h canvas and writes it to out as PNG.
func WritePNG(out io.Writer, pl *plot.Plot, w, h vg.Length) error {
	dpi := 150
	// Keep images within common size limits.
	if px := float64(dpi) * float64(w/vg.Inch); px > 8190 {
		dpi = int(math.Trunc(float64(dpi) * 8190 / px))
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(out)
	return err
}

// WriteSVG draws pl on a w by h canvas and writes it to out as SVG.
func WriteSVG(out io.Writer, pl *plot.Plot, w, h vg.Length) error {
	can := vgsvg.New(w, h)
	pl.Draw(draw.New(can))
	_, err := can.WriteTo(out)
	return err
}
