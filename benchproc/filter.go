// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"fmt"
	"strconv"

	"github.com/vbparts/perfdata/benchname"
)

// A Match is a predicate over one dimension: either a wildcard that
// matches every value, or an exact value.
type Match[T comparable] struct {
	value T
	exact bool
}

// Any returns a wildcard Match.
func Any[T comparable]() Match[T] { return Match[T]{} }

// Exact returns a Match that matches only v.
func Exact[T comparable](v T) Match[T] { return Match[T]{v, true} }

// IsAny reports whether m is a wildcard.
func (m Match[T]) IsAny() bool { return !m.exact }

// Value returns the exact value of m, and false if m is a wildcard.
func (m Match[T]) Value() (T, bool) { return m.value, m.exact }

func (m Match[T]) String() string {
	if !m.exact {
		return "*"
	}
	return fmt.Sprint(m.value)
}

func matchInt(m Match[int], i benchname.Int) bool {
	return !m.exact || i.Valid && i.Value == m.value
}

// A Filter selects runs by their experiment dimensions.
type Filter struct {
	// DataType is the data type of the summary files to read. It is
	// always exact.
	DataType benchname.DataType

	Renderer Match[benchname.Renderer]
	Mode     Match[benchname.Mode]

	ParticleCount    Match[int]
	ResolutionWidth  Match[int]
	ResolutionHeight Match[int]
	Complexity       Match[int]
	Density          Match[int]
	Spread           Match[int]
}

// Match reports whether p satisfies every exact dimension of f. An
// exact dimension never matches an invalid field. Wildcards match
// anything, including invalid fields.
func (f *Filter) Match(p benchname.Params) bool {
	if v, ok := f.Renderer.Value(); ok && p.Renderer != v {
		return false
	}
	if v, ok := f.Mode.Value(); ok && p.Mode != v {
		return false
	}
	return matchInt(f.ParticleCount, p.ParticleCount) &&
		matchInt(f.ResolutionWidth, p.ResolutionWidth) &&
		matchInt(f.ResolutionHeight, p.ResolutionHeight) &&
		matchInt(f.Complexity, p.Complexity) &&
		matchInt(f.Density, p.Density) &&
		matchInt(f.Spread, p.Spread)
}

// IsAny reports whether dimension d of f is a wildcard.
func (f *Filter) IsAny(d Dim) bool {
	switch d {
	case DimRenderer:
		return f.Renderer.IsAny()
	case DimMode:
		return f.Mode.IsAny()
	}
	return f.intMatch(d).IsAny()
}

// Wildcards returns the wildcard dimensions of f, in Dim order.
func (f *Filter) Wildcards() []Dim {
	var out []Dim
	for d := Dim(0); d < numDims; d++ {
		if f.IsAny(d) {
			out = append(out, d)
		}
	}
	return out
}

// Constant returns the exact value of dimension d of f as it appears in
// the constant settings block, or "[Variable]" for a wildcard.
func (f *Filter) Constant(d Dim) string {
	if f.IsAny(d) {
		return "[Variable]"
	}
	switch d {
	case DimRenderer:
		return f.Renderer.String()
	case DimMode:
		return f.Mode.String()
	}
	v, _ := f.intMatch(d).Value()
	return strconv.Itoa(v)
}

func (f *Filter) intMatch(d Dim) Match[int] {
	switch d {
	case DimParticleCount:
		return f.ParticleCount
	case DimResolutionWidth:
		return f.ResolutionWidth
	case DimResolutionHeight:
		return f.ResolutionHeight
	case DimComplexity:
		return f.Complexity
	case DimDensity:
		return f.Density
	case DimSpread:
		return f.Spread
	}
	panic(fmt.Sprintf("bad dimension %d", d))
}

func (f *Filter) String() string {
	return fmt.Sprintf("%s %s %s %s %sx%s %s %s %s", f.DataType,
		f.Renderer, f.Mode, f.ParticleCount, f.ResolutionWidth, f.ResolutionHeight,
		f.Complexity, f.Density, f.Spread)
}

// A Dim is one experiment dimension of a test name.
type Dim int

const (
	DimRenderer Dim = iota
	DimMode
	DimParticleCount
	DimResolutionWidth
	DimResolutionHeight
	DimComplexity
	DimDensity
	DimSpread

	numDims
)

var dimLabels = [numDims]struct{ constant, row string }{
	{"Renderer", "Renderer"},
	{"Mode", "Mode"},
	{"Particle Count", "Particle count"},
	{"Resolution Width", "Resolution width"},
	{"Resolution Height", "Resolution height"},
	{"Particle Complexity", "Particle complexity"},
	{"Particle Density (x1000)", "Particle density"},
	{"Particle Spread (x1000)", "Particle spread"},
}

// String returns the row label of d.
func (d Dim) String() string {
	if d < 0 || d >= numDims {
		return fmt.Sprintf("Dim(%d)", int(d))
	}
	return dimLabels[d].row
}

// Value returns the value of dimension d in p as it appears in output
// tables. Invalid fields format as "invalid".
func (d Dim) Value(p benchname.Params) string {
	switch d {
	case DimRenderer:
		return p.Renderer.String()
	case DimMode:
		return p.Mode.String()
	case DimParticleCount:
		return p.ParticleCount.String()
	case DimResolutionWidth:
		return p.ResolutionWidth.String()
	case DimResolutionHeight:
		return p.ResolutionHeight.String()
	case DimComplexity:
		return p.Complexity.String()
	case DimDensity:
		return p.Density.String()
	case DimSpread:
		return p.Spread.String()
	}
	panic(fmt.Sprintf("bad dimension %d", d))
}
