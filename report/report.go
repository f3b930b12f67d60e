// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a pivot table and its runs as an HTML page.
package report

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/vbparts/perfdata/benchproc"
	"github.com/vbparts/perfdata/coltab"
)

// A Page is the content of a report.
type Page struct {
	Title  string
	Filter string // filter description, shown under the title

	// Table is the pivot table, rendered as a grid.
	Table *coltab.Table

	// Entries are the runs in Table, listed with their spread.
	Entries []benchproc.Entry

	// Charts are locations of chart images, relative to the page.
	Charts []string
}

type row struct {
	Cells []string
}

type entryRow struct {
	GPU, Name      string
	N              int
	Average, Range string
}

func (p *Page) rows() []row {
	if p.Table == nil {
		return nil
	}
	n, cols := p.Table.MaxLen(), p.Table.Len()
	rows := make([]row, n)
	for r := range rows {
		rows[r].Cells = make([]string, cols)
		for c := 0; c < cols; c++ {
			rows[r].Cells[c] = p.Table.Cell(r, c)
		}
	}
	return rows
}

func (p *Page) entries() []entryRow {
	out := make([]entryRow, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = entryRow{
			GPU:     e.GPU,
			Name:    e.Name,
			N:       e.Summary.N,
			Average: coltab.FormatFloat(e.Summary.Average),
			Range:   e.Summary.IQRString(),
		}
	}
	return out
}

var tmpl = template.Must(template.New("report").Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; }
td { border: 1px solid #ccc; padding: 2px 6px; text-align: right; }
td:first-child { text-align: left; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Filter}}<p>Filter: <code>{{.}}</code></p>{{end}}
{{with .Rows}}<table class="pivot">
{{range .}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{with .Entries}}<h2>Runs</h2>
<table class="runs">
<tr><td>GPU</td><td>Test name</td><td>N</td><td>Average</td><td>Spread</td></tr>
{{range .}}<tr><td>{{.GPU}}</td><td>{{.Name}}</td><td>{{.N}}</td><td>{{.Average}}</td><td>{{.Range}}</td></tr>
{{end}}</table>{{end}}
{{range .Charts}}<p><img src="{{.}}"></p>
{{end}}</body>
</html>
`

// Write renders p to w.
func Write(w io.Writer, p *Page) error {
	return tmpl.Execute(w, struct {
		Title, Filter string
		Rows          []row
		Entries       []entryRow
		Charts        []string
	}{p.Title, p.Filter, p.rows(), p.entries(), p.Charts})
}
