// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var inputs = []string{"testdata/RTX-2080-Frametime.csv", "testdata/GTX-1060-Frametime.csv"}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	var got, gotErr bytes.Buffer
	t.Logf("perfpivot %s", strings.Join(args, " "))
	if err := perfpivot(&got, &gotErr, args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	compare(t, name+".stdout", got.String())
	compare(t, name+".stderr", gotErr.String())
}

func compare(t *testing.T, path, got string) {
	t.Helper()
	want, err := os.ReadFile(filepath.Join("testdata", path))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", path, diff)
	}
}

func TestPivot(t *testing.T) {
	golden(t, "pivot", append([]string{"-o", "-"}, inputs...)...)
}

func TestText(t *testing.T) {
	var out, errOut bytes.Buffer
	args := append([]string{"-o", "-", "-format", "text"}, inputs...)
	if err := perfpivot(&out, &errOut, args); err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(out.String(), "\n")
	if !strings.HasPrefix(first, "Constant Settings:") || !strings.HasSuffix(first, "GTX 1060") {
		t.Errorf("unexpected first line %q", first)
	}
	if strings.Contains(out.String(), ",") {
		t.Errorf("text output contains commas:\n%s", out.String())
	}
}

func TestFilterFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	// Fixing the mode leaves only the GTX 1060 run.
	args := append([]string{"-o", "-", "-mode", "GeomGeom"}, inputs...)
	if err := perfpivot(&out, &errOut, args); err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(out.String(), "\n")
	if want := "Constant Settings:,,,GPU,GTX 1060,"; first != want {
		t.Errorf("first row = %q, want %q", first, want)
	}
	if want := "2 files, 1 runs included, 2 excluded\n"; errOut.String() != want {
		t.Errorf("stderr = %q, want %q", errOut.String(), want)
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	args := append([]string{"-o", dir, "-name", "sweep", "-html", "-chart", "png", "-v"}, inputs...)
	if err := perfpivot(&out, &errOut, args); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected stdout %q", out.String())
	}
	if !strings.Contains(errOut.String(), "File 2 of 2 (100%)") {
		t.Errorf("missing progress in stderr:\n%s", errOut.String())
	}

	csv, err := os.ReadFile(filepath.Join(dir, "Frametime-sweep.csv"))
	if err != nil {
		t.Fatal(err)
	}
	compare(t, "pivot.stdout", string(csv))

	for _, name := range []string{"Frametime-sweep-RTX-2080.png", "Frametime-sweep-GTX-1060.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG", name)
		}
	}

	html, err := os.ReadFile(filepath.Join(dir, "Frametime-sweep.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(html, []byte("Frametime-sweep-RTX-2080.png")) {
		t.Errorf("report does not reference the RTX 2080 chart")
	}
}

func TestHTMLChart(t *testing.T) {
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	args := append([]string{"-o", dir, "-chart", "html", "-chart-kind", "bar"}, inputs...)
	if err := perfpivot(&out, &errOut, args); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Frametime-results-charts.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("GTX 1060")) {
		t.Errorf("chart page does not mention GTX 1060")
	}
}

func TestErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-format", "json", "x"},
		{"-chart", "gif", "x"},
		{"-renderer", "deferred", "x"},
		{"-config", "testdata/missing.yaml", "x"},
		{"testdata/missing.csv"},
	} {
		var out, errOut bytes.Buffer
		if err := perfpivot(&out, &errOut, args); err == nil {
			t.Errorf("perfpivot %v: want error", args)
		}
	}
}
