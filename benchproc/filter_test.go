// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"reflect"
	"testing"

	"github.com/vbparts/perfdata/benchname"
)

// defaultFilter fixes every dimension except renderer and mode.
func defaultFilter() Filter {
	return Filter{
		DataType:         benchname.Frametime,
		Renderer:         Any[benchname.Renderer](),
		Mode:             Any[benchname.Mode](),
		ParticleCount:    Exact(1048576),
		ResolutionWidth:  Exact(1024),
		ResolutionHeight: Exact(768),
		Complexity:       Exact(2),
		Density:          Exact(400),
		Spread:           Exact(29),
	}
}

func TestFilterMatch(t *testing.T) {
	f := defaultFilter()
	check := func(name string, want bool) {
		t.Helper()
		p, _ := benchname.Decode(name)
		if got := f.Match(p); got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	check("fwd_co_1048576_1024x768_2_400_29", true)
	check("v_vege_1048576_1024x768_2_400_29", true)
	// Wildcards match invalid fields.
	check("bogus_xx_1048576_1024x768_2_400_29", true)
	check("fwd_co_1048576_1024x768_2_400_30", false)
	check("fwd_co_1048576_1920x1080_2_400_29", false)
	// Exact dimensions never match invalid fields.
	check("fwd_co_1048576_1024x768_two_400_29", false)
	check("fwd_co_1048576_1024_2_400_29", false)

	f.Renderer = Exact(benchname.GBuffer3)
	f.Spread = Any[int]()
	check("g3_co_1048576_1024x768_2_400_30", true)
	check("g6_co_1048576_1024x768_2_400_29", false)
	check("bogus_co_1048576_1024x768_2_400_29", false)
	check("g3_co_1048576_1024x768_2_400_x", true)
}

func TestFilterDims(t *testing.T) {
	f := defaultFilter()
	if got, want := f.Wildcards(), []Dim{DimRenderer, DimMode}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wildcards() = %v, want %v", got, want)
	}
	var consts []string
	for d := Dim(0); d < numDims; d++ {
		consts = append(consts, f.Constant(d))
	}
	want := []string{"[Variable]", "[Variable]", "1048576", "1024", "768", "2", "400", "29"}
	if !reflect.DeepEqual(consts, want) {
		t.Errorf("constants = %v, want %v", consts, want)
	}

	f.Mode = Exact(benchname.VertGeom)
	f.Density = Any[int]()
	if got := f.Constant(DimMode); got != "VertGeom" {
		t.Errorf("Constant(DimMode) = %q", got)
	}
	if got, want := f.Wildcards(), []Dim{DimRenderer, DimDensity}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wildcards() = %v, want %v", got, want)
	}
	if got := f.String(); got != "Frametime * VertGeom 1048576 1024x768 2 * 29" {
		t.Errorf("String() = %q", got)
	}
}
