// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchname decodes the structured test names produced by the
// particle benchmark driver.
//
// A test name encodes seven experiment dimensions separated by
// underscores:
//
//	R_M_P_WxH_C_D_S
//	fwd_co_1048576_1024x768_2_400_29
//
// R is the renderer code, M the generation mode code, P the particle
// count, WxH the window resolution, C the particle complexity, and D
// and S the particle density and spread, both scaled by 1000.
//
// Decoding is forgiving at the field level: an unknown code or a
// malformed number makes only that field invalid and is reported as a
// warning. Only a name with the wrong number of fields fails outright.
package benchname

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// numFields is the number of underscore-separated fields in a test
// name.
const numFields = 7

var (
	// ErrMalformedTestName is matched by the error Decode returns
	// for a name that does not have seven fields.
	ErrMalformedTestName = errors.New("malformed test name")

	ErrUnknownRendererCode = errors.New("unknown renderer code")
	ErrUnknownModeCode     = errors.New("unknown mode code")
	ErrMalformedResolution = errors.New("malformed resolution")
	ErrInvalidNumber       = errors.New("invalid number")
)

// A DecodeError reports a test name that could not be split into its
// fields. It matches ErrMalformedTestName.
type DecodeError struct {
	Name   string
	Fields int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot parse %q: splitting results in %d fields instead of %d", e.Name, e.Fields, numFields)
}

func (e *DecodeError) Unwrap() error { return ErrMalformedTestName }

// A FieldError is a warning about a single field of a test name.
type FieldError struct {
	Field string // dimension name, e.g. "renderer"
	Token string // offending text
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Token, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// An Int is an integer test dimension that may be invalid.
type Int struct {
	Value int
	Valid bool
}

// ValidInt returns a valid Int holding v.
func ValidInt(v int) Int { return Int{v, true} }

func (i Int) String() string {
	if !i.Valid {
		return "invalid"
	}
	return strconv.Itoa(i.Value)
}

// Params are the experiment dimensions decoded from a test name.
type Params struct {
	Renderer         Renderer
	Mode             Mode
	ParticleCount    Int
	ResolutionWidth  Int
	ResolutionHeight Int
	Complexity       Int
	Density          Int
	Spread           Int

	// Warnings lists a *FieldError for each field that failed to
	// decode and was left invalid.
	Warnings []error
}

// Decode parses a test name into its Params. It fails only if name
// does not have exactly seven underscore-separated fields; other
// problems leave the affected field invalid and are recorded in
// Params.Warnings.
func Decode(name string) (Params, error) {
	f := strings.Split(name, "_")
	if len(f) != numFields {
		return Params{}, &DecodeError{name, len(f)}
	}

	var p Params
	warn := func(field, tok string, err error) {
		p.Warnings = append(p.Warnings, &FieldError{field, tok, err})
	}

	if p.Renderer = renderers.decode(f[0]); p.Renderer == RendererInvalid {
		warn("renderer", f[0], ErrUnknownRendererCode)
	}
	if p.Mode = modes.decode(f[1]); p.Mode == ModeInvalid {
		warn("mode", f[1], ErrUnknownModeCode)
	}

	// Counts and resolutions cannot be negative; the particle
	// parameters can.
	natural := func(field, tok string) Int {
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			warn(field, tok, ErrInvalidNumber)
			return Int{}
		}
		return ValidInt(v)
	}
	integer := func(field, tok string) Int {
		v, err := strconv.Atoi(tok)
		if err != nil {
			warn(field, tok, ErrInvalidNumber)
			return Int{}
		}
		return ValidInt(v)
	}

	p.ParticleCount = natural("particle count", f[2])
	if res := strings.Split(f[3], "x"); len(res) != 2 {
		warn("resolution", f[3], ErrMalformedResolution)
	} else {
		p.ResolutionWidth = natural("resolution width", res[0])
		p.ResolutionHeight = natural("resolution height", res[1])
	}
	p.Complexity = integer("complexity", f[4])
	p.Density = integer("density", f[5])
	p.Spread = integer("spread", f[6])
	return p, nil
}

// Valid reports whether every field of p decoded successfully.
func (p Params) Valid() bool {
	if !p.Renderer.Valid() || !p.Mode.Valid() {
		return false
	}
	for _, i := range p.ints() {
		if !i.Valid {
			return false
		}
	}
	return true
}

func (p Params) ints() [6]Int {
	return [6]Int{p.ParticleCount, p.ResolutionWidth, p.ResolutionHeight, p.Complexity, p.Density, p.Spread}
}

// Encode returns the test name for p. It fails if any field of p is
// invalid.
func (p Params) Encode() (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("cannot encode %s: invalid field", p)
	}
	return fmt.Sprintf("%s_%s_%d_%dx%d_%d_%d_%d",
		p.Renderer.Code(), p.Mode.Code(), p.ParticleCount.Value,
		p.ResolutionWidth.Value, p.ResolutionHeight.Value,
		p.Complexity.Value, p.Density.Value, p.Spread.Value), nil
}

// String formats p for diagnostics.
func (p Params) String() string {
	return fmt.Sprintf("%s, %s, %s, %sx%s, %s, %s, %s",
		p.Renderer, p.Mode, p.ParticleCount, p.ResolutionWidth,
		p.ResolutionHeight, p.Complexity, p.Density, p.Spread)
}

// A FileID identifies the GPU and dataset type of an intermediate
// summary file from its name, e.g. "RTX-2080-Frametime".
type FileID struct {
	GPU      string
	DataType DataType
}

// ParseFileID splits id on "-". The last field names the data type;
// the remaining fields, joined with spaces, name the GPU. An
// unrecognized data type yields DataTypeInvalid.
func ParseFileID(id string) FileID {
	f := strings.Split(id, "-")
	return FileID{
		GPU:      strings.Join(f[:len(f)-1], " "),
		DataType: ParseDataType(f[len(f)-1]),
	}
}
