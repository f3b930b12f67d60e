// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vbparts/perfdata/benchname"
	"github.com/vbparts/perfdata/capfmt"
	"github.com/vbparts/perfdata/sumfmt"
)

// summaryFile builds a summary file from alternating test names and
// frametime series.
func summaryFile(t *testing.T, runs ...any) []byte {
	t.Helper()
	w := sumfmt.NewWriter()
	for i := 0; i < len(runs); i += 2 {
		run := &capfmt.Run{Name: runs[i].(string), Metrics: []capfmt.Metric{{
			Spec:   capfmt.ColumnSpec{Kind: benchname.Frametime, Include: true},
			Values: runs[i+1].([]float64),
		}}}
		if _, err := w.AddRun(run); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := w.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAggregate(t *testing.T) {
	const suffix = "_1048576_1024x768_2_400_29"
	files := []Input{
		{"RTX-2080-Frametime", summaryFile(t,
			"fwd_co"+suffix, []float64{10, 12},
			"fwd_ge"+suffix, []float64{11},
			"g3_co_1048576_1024x768_2_400_30", []float64{1},
			"oops", []float64{1},
			"g3_ge"+suffix, []float64{9},
		)},
		{"RTX-2080-GpuUsage", summaryFile(t, "fwd_co"+suffix, []float64{50})},
		{"Bad-Frametime", []byte("Test name,x,\n")},
		{"GTX-1060-Frametime", summaryFile(t, "v_co"+suffix, []float64{20})},
	}
	tab, stats := Aggregate(files, defaultFilter())

	cols := tab.Columns()
	want := [][]string{
		{"Constant Settings:", "Data Type", "Renderer", "Mode", "Particle Count",
			"Resolution Width", "Resolution Height", "Particle Complexity",
			"Particle Density (x1000)", "Particle Spread (x1000)"},
		{"", "Frametime", "[Variable]", "[Variable]", "1048576", "1024", "768", "2", "400", "29"},
		nil,
		{"GPU", "Renderer", "Mode", "", "Average", "", "Minimum", "1st Quartile",
			"Median", "3rd Quartile", "Maximum", "", "Full data"},
		{"RTX 2080", "Forward", "CompComp", "", "11", "", "10", "10", "10", "10", "12", "", "10", "12"},
		{"", "", "GeomGeom", "", "11", "", "11", "11", "11", "11", "11", "", "11"},
		{"", "GBuffer3", "", "", "9", "", "9", "9", "9", "9", "9", "", "9"},
		{"GTX 1060", "VBuffer", "CompComp", "", "20", "", "20", "20", "20", "20", "20", "", "20"},
	}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	if len(stats) != 4 {
		t.Fatalf("got %d file stats, want 4", len(stats))
	}
	check := func(st FileStats, gpu string, skipped bool, included, excluded, nerrors int) {
		t.Helper()
		if st.GPU != gpu || st.Skipped != skipped || st.Included != included || st.Excluded != excluded || len(st.Errors) != nerrors {
			t.Errorf("%s: got %+v", st.ID, st)
		}
	}
	check(stats[0], "RTX 2080", false, 3, 2, 1)
	check(stats[1], "RTX 2080", true, 0, 1, 0)
	check(stats[2], "Bad", false, 0, 0, 0)
	check(stats[3], "GTX 1060", false, 1, 0, 0)

	if !errors.Is(stats[0].Errors[0], benchname.ErrMalformedTestName) {
		t.Errorf("got %v, want ErrMalformedTestName", stats[0].Errors[0])
	}
	var ce *ColumnError
	if !errors.As(stats[0].Errors[0], &ce) || ce.Header != "oops" || ce.Column != 4 {
		t.Errorf("got %v, want ColumnError for oops in column 4", stats[0].Errors[0])
	}
	if !errors.Is(stats[2].Err, sumfmt.ErrShortTable) {
		t.Errorf("got %v, want ErrShortTable", stats[2].Err)
	}
}

func TestAggregatorEntries(t *testing.T) {
	f := defaultFilter()
	f.Renderer = Exact(benchname.Forward)
	f.Mode = Exact(benchname.CompComp)
	f.Spread = Any[int]()

	a := NewAggregator(f)
	a.AddFile("A-Frametime", summaryFile(t,
		"fwd_co_1048576_1024x768_2_400_29", []float64{3, 1, 2},
		"fwd_co_1048576_1024x768_2_400_30", []float64{4},
		"fwd_co_1048576_1024x768_2_400_x", []float64{5},
		"fwd_ge_1048576_1024x768_2_400_29", []float64{6},
	))

	var names []string
	for _, e := range a.Entries() {
		names = append(names, e.Name)
	}
	want := []string{"fwd_co_1048576_1024x768_2_400_29", "fwd_co_1048576_1024x768_2_400_30", "fwd_co_1048576_1024x768_2_400_x"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	e := a.Entries()[0]
	if e.GPU != "A" || e.Summary.Median != 2 || e.Summary.N != 3 || !cmp.Equal(e.Values, []float64{3, 1, 2}) {
		t.Errorf("got entry %+v", e)
	}
	st := a.Stats()[0]
	if len(st.Warnings) != 1 || !errors.Is(st.Warnings[0], benchname.ErrInvalidNumber) {
		t.Errorf("got warnings %v, want one ErrInvalidNumber", st.Warnings)
	}

	// Only the spread row varies.
	var buf strings.Builder
	a.Table().Format(&buf)
	if !strings.Contains(buf.String(), "Particle spread") || strings.Contains(buf.String(), "Particle density\n") {
		t.Errorf("unexpected row labels:\n%s", buf.String())
	}
}

func TestAggregateModeFixed(t *testing.T) {
	// Every renderer in both modes; only CompComp runs are kept.
	const suffix = "_1048576_1024x768_2_400_29"
	var runs []any
	for i, name := range []string{
		"fwd_co", "fwd_ge", "g3_co", "g3_ge", "g6_co", "g6_ge", "v_co", "v_ge",
	} {
		runs = append(runs, name+suffix, []float64{float64(i + 1)})
	}
	f := defaultFilter()
	f.Mode = Exact(benchname.CompComp)
	a := NewAggregator(f)
	st := a.AddFile("RTX-2080-Frametime", summaryFile(t, runs...))
	if st.Included != 4 || st.Excluded != 4 || st.Skipped || len(st.Errors) != 0 {
		t.Errorf("got %+v", st)
	}

	var names []string
	for _, e := range a.Entries() {
		names = append(names, e.Name)
		if e.Params.Mode != benchname.CompComp {
			t.Errorf("%s: mode %v included", e.Name, e.Params.Mode)
		}
	}
	want := []string{"fwd_co" + suffix, "g3_co" + suffix, "g6_co" + suffix, "v_co" + suffix}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	cols := a.Table().Columns()
	if len(cols) != 8 {
		t.Fatalf("got %d columns, want 8", len(cols))
	}
	wantConst := []string{"", "Frametime", "[Variable]", "CompComp", "1048576", "1024", "768", "2", "400", "29"}
	if diff := cmp.Diff(wantConst, cols[1]); diff != "" {
		t.Errorf("constants mismatch (-want +got):\n%s", diff)
	}
	wantLabels := []string{"GPU", "Renderer", "", "Average", "",
		"Minimum", "1st Quartile", "Median", "3rd Quartile", "Maximum", "", "Full data"}
	if diff := cmp.Diff(wantLabels, cols[3]); diff != "" {
		t.Errorf("row labels mismatch (-want +got):\n%s", diff)
	}
	for i, r := range []string{"Forward", "GBuffer3", "GBuffer6", "VBuffer"} {
		if got := cols[4+i][1]; got != r {
			t.Errorf("column %d: renderer %q, want %q", 4+i, got, r)
		}
	}
}

func TestAggregateInvalidDataType(t *testing.T) {
	// A filter without a data type matches no file.
	a := NewAggregator(Filter{})
	st := a.AddFile("noext", summaryFile(t, "fwd_co_1048576_1024x768_2_400_29", []float64{1}))
	if !st.Skipped || st.Included != 0 || st.Excluded != 1 {
		t.Errorf("got %+v", st)
	}
	if len(a.Entries()) != 0 {
		t.Errorf("got entries %v", a.Entries())
	}
}
