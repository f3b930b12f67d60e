// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/benchproc"
)

// WriteHTML writes an interactive page with one chart per group.
func WriteHTML(w io.Writer, groups []Group, dt benchname.DataType, dims []benchproc.Dim, kind Kind) error {
	page := components.NewPage()
	page.SetPageTitle(dt.String())
	for _, g := range groups {
		page.AddCharts(echart(g, dt, dims, kind))
	}
	return page.Render(w)
}

func echart(g Group, dt benchname.DataType, dims []benchproc.Dim, kind Kind) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", 120+60*len(g.Entries)),
			Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: g.GPU, Subtitle: dt.String()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: dt.Unit()}),
	}
	labels := g.Labels(dims)

	if kind == Bar {
		data := make([]opts.BarData, len(g.Entries))
		for i, e := range g.Entries {
			data[i] = opts.BarData{
				Name:      labels[i],
				Value:     e.Summary.Average,
				ItemStyle: &opts.ItemStyle{Color: hex(RendererColor(e.Params.Renderer))},
			}
		}
		c := charts.NewBar()
		c.SetGlobalOptions(global...)
		c.SetXAxis(labels).AddSeries("Average", data)
		return c
	}

	data := make([]opts.BoxPlotData, len(g.Entries))
	for i, e := range g.Entries {
		q := e.Summary.Quartiles()
		data[i] = opts.BoxPlotData{
			Name:      labels[i],
			Value:     q[:],
			ItemStyle: &opts.ItemStyle{Color: hex(RendererColor(e.Params.Renderer))},
		}
	}
	c := charts.NewBoxPlot()
	c.SetGlobalOptions(global...)
	c.SetXAxis(labels).AddSeries(dt.String(), data)
	return c
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
