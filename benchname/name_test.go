// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchname

import (
	"errors"
	"reflect"
	"testing"
)

func v(x int) Int { return ValidInt(x) }

func TestDecode(t *testing.T) {
	check := func(name string, want Params, wantWarn ...error) {
		t.Helper()
		got, err := Decode(name)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			return
		}
		warnings := got.Warnings
		got.Warnings = nil
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
		if len(warnings) != len(wantWarn) {
			t.Errorf("%s: got warnings %v, want %v", name, warnings, wantWarn)
			return
		}
		for i, w := range wantWarn {
			if !errors.Is(warnings[i], w) {
				t.Errorf("%s: warning %d is %v, want %v", name, i, warnings[i], w)
			}
		}
	}

	all := Params{Forward, CompComp, v(0), v(1024), v(768), v(2), v(400), v(29), nil}
	check("fwd_co_0_1024x768_2_400_29", all)

	bogus := all
	bogus.Renderer = RendererInvalid
	check("bogus_co_0_1024x768_2_400_29", bogus, ErrUnknownRendererCode)

	check("v_vege_1048576_1920x1080_-3_3_300",
		Params{VBuffer, VertGeom, v(1048576), v(1920), v(1080), v(-3), v(3), v(300), nil})
	check("g3_ge_1_1x1_0_0_0", Params{GBuffer3, GeomGeom, v(1), v(1), v(1), v(0), v(0), v(0), nil})
	check("g6_ve_1_1x1_0_0_0", Params{GBuffer6, VertVert, v(1), v(1), v(1), v(0), v(0), v(0), nil})

	// Field-level failures.
	check("fwd_xx_-1_1024x768_2_400_29",
		Params{Forward, ModeInvalid, Int{}, v(1024), v(768), v(2), v(400), v(29), nil},
		ErrUnknownModeCode, ErrInvalidNumber)
	check("fwd_co_0_1024_2_400_29",
		Params{Forward, CompComp, v(0), Int{}, Int{}, v(2), v(400), v(29), nil},
		ErrMalformedResolution)
	check("fwd_co_0_1024x768x2_2_400_29",
		Params{Forward, CompComp, v(0), Int{}, Int{}, v(2), v(400), v(29), nil},
		ErrMalformedResolution)
	check("fwd_co_0_axb_2_400_29",
		Params{Forward, CompComp, v(0), Int{}, Int{}, v(2), v(400), v(29), nil},
		ErrInvalidNumber, ErrInvalidNumber)
	check("fwd_co_0_1024x-1_x_y_z",
		Params{Forward, CompComp, v(0), v(1024), Int{}, Int{}, Int{}, Int{}, nil},
		ErrInvalidNumber, ErrInvalidNumber, ErrInvalidNumber, ErrInvalidNumber)

	// Codes are case sensitive.
	check("FWD_co_0_1024x768_2_400_29", bogus, ErrUnknownRendererCode)
}

func TestDecodeMalformed(t *testing.T) {
	for _, name := range []string{"a_b_c", "", "fwd_co_0_1024x768_2_400_29_x", "fwd-co-0-1024x768-2-400-29"} {
		p, err := Decode(name)
		if !errors.Is(err, ErrMalformedTestName) {
			t.Errorf("%q: got error %v, want ErrMalformedTestName", name, err)
		}
		if p.Renderer != RendererInvalid || p.ParticleCount.Valid || p.Warnings != nil {
			t.Errorf("%q: got partial params %+v", name, p)
		}
	}
}

func TestEncode(t *testing.T) {
	for _, name := range []string{
		"fwd_co_0_1024x768_2_400_29",
		"v_vege_1048576_1920x1080_-3_3_300",
		"g6_ge_5_640x480_2_400_29",
	} {
		p, err := Decode(name)
		if err != nil {
			t.Fatal(err)
		}
		got, err := p.Encode()
		if err != nil {
			t.Errorf("%s: %v", name, err)
		} else if got != name {
			t.Errorf("Encode(Decode(%q)) = %q", name, got)
		}
	}

	p, _ := Decode("bogus_co_0_1024x768_2_400_29")
	if _, err := p.Encode(); err == nil {
		t.Errorf("encoding invalid params succeeded")
	}
}

func TestCodes(t *testing.T) {
	checkR := func(s string, want Renderer) {
		t.Helper()
		got, err := ParseRenderer(s)
		if want == RendererInvalid {
			if err == nil {
				t.Errorf("ParseRenderer(%q) succeeded", s)
			}
			return
		}
		if err != nil || got != want {
			t.Errorf("ParseRenderer(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	checkR("fwd", Forward)
	checkR("Forward", Forward)
	checkR("gbuffer6", GBuffer6)
	checkR("v", VBuffer)
	checkR("All", RendererInvalid)

	if m, err := ParseMode("vege"); err != nil || m != VertGeom {
		t.Errorf("ParseMode(vege) = %v, %v", m, err)
	}
	if m, err := ParseMode("GeomGeom"); err != nil || m != GeomGeom {
		t.Errorf("ParseMode(GeomGeom) = %v, %v", m, err)
	}

	if got := ParseDataType("fbusage"); got != FbUsage {
		t.Errorf("ParseDataType(fbusage) = %v", got)
	}
	if got := ParseDataType("Frames"); got != DataTypeInvalid {
		t.Errorf("ParseDataType(Frames) = %v", got)
	}
	if Frametime.Unit() != "ms" || DataTypeInvalid.Unit() != "" {
		t.Errorf("bad units")
	}
	if RendererInvalid.String() != "invalid" || Renderer(99).String() != "invalid" {
		t.Errorf("bad invalid renderer name")
	}
}

func TestParseFileID(t *testing.T) {
	check := func(id string, want FileID) {
		t.Helper()
		if got := ParseFileID(id); got != want {
			t.Errorf("ParseFileID(%q) = %+v, want %+v", id, got, want)
		}
	}
	check("RTX-2080-Frametime", FileID{"RTX 2080", Frametime})
	check("GTX1060-gpuusage", FileID{"GTX1060", GpuUsage})
	check("Intel-UHD-620-Bogus", FileID{"Intel UHD 620", DataTypeInvalid})
	check("Frametime", FileID{"", Frametime})
}
