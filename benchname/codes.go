// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchname

import (
	"fmt"
	"strings"
)

// A codeTable maps between the short codes used in test names, the
// display names used in output tables, and an enumeration whose zero
// value is the invalid variant.
type codeTable[T ~int] struct {
	kind  string
	names []string // indexed by T; names[0] is the invalid name
	codes []string // indexed by T; "" if a value has no code
}

// decode looks up code exactly. A miss returns the invalid variant.
func (t *codeTable[T]) decode(code string) T {
	for i := 1; i < len(t.codes); i++ {
		if t.codes[i] != "" && t.codes[i] == code {
			return T(i)
		}
	}
	return 0
}

// lookup accepts either a code or a display name, ignoring case for
// names.
func (t *codeTable[T]) lookup(s string) (T, error) {
	if v := t.decode(s); v != 0 {
		return v, nil
	}
	for i := 1; i < len(t.names); i++ {
		if strings.EqualFold(t.names[i], s) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", t.kind, s)
}

func (t *codeTable[T]) name(v T) string {
	if v <= 0 || int(v) >= len(t.names) {
		return t.names[0]
	}
	return t.names[v]
}

func (t *codeTable[T]) code(v T) string {
	if v <= 0 || int(v) >= len(t.codes) {
		return ""
	}
	return t.codes[v]
}

// A Renderer is the rendering technique a test ran with.
type Renderer int

const (
	RendererInvalid Renderer = iota
	Forward
	GBuffer3
	GBuffer6
	VBuffer
)

var renderers = codeTable[Renderer]{
	kind:  "renderer",
	names: []string{"invalid", "Forward", "GBuffer3", "GBuffer6", "VBuffer"},
	codes: []string{"", "fwd", "g3", "g6", "v"},
}

// ParseRenderer returns the Renderer named by s, which may be either a
// test-name code such as "g3" or a display name such as "GBuffer3".
func ParseRenderer(s string) (Renderer, error) { return renderers.lookup(s) }

func (r Renderer) String() string { return renderers.name(r) }

// Code returns the test-name code for r, or "" if r is invalid.
func (r Renderer) Code() string { return renderers.code(r) }

// Valid reports whether r is a known renderer.
func (r Renderer) Valid() bool { return r > RendererInvalid && int(r) < len(renderers.names) }

// A Mode is the particle generation mode a test ran with.
type Mode int

const (
	ModeInvalid Mode = iota
	CompComp
	GeomGeom
	VertVert
	VertGeom
)

var modes = codeTable[Mode]{
	kind:  "mode",
	names: []string{"invalid", "CompComp", "GeomGeom", "VertVert", "VertGeom"},
	codes: []string{"", "co", "ge", "ve", "vege"},
}

// ParseMode returns the Mode named by s, either a code or a display
// name.
func ParseMode(s string) (Mode, error) { return modes.lookup(s) }

func (m Mode) String() string { return modes.name(m) }

// Code returns the test-name code for m, or "" if m is invalid.
func (m Mode) Code() string { return modes.code(m) }

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m > ModeInvalid && int(m) < len(modes.names) }

// A DataType is the kind of telemetry held by a capture column or by
// an intermediate summary file.
type DataType int

const (
	DataTypeInvalid DataType = iota
	Frametime
	GpuUsage
	MemoryUsage
	SharedMemory
	BusUsage
	DedicatedMemory
	FbUsage
)

// Data types have no short codes; they are always spelled out.
var dataTypes = codeTable[DataType]{
	kind:  "data type",
	names: []string{"invalid", "Frametime", "GpuUsage", "MemoryUsage", "SharedMemory", "BusUsage", "DedicatedMemory", "FbUsage"},
	codes: []string{"", "", "", "", "", "", "", ""},
}

var dataTypeUnits = [...]string{"", "ms", "%", "MB", "MB", "%", "MB", "%"}

// ParseDataType returns the DataType named by s, ignoring case, or
// DataTypeInvalid.
func ParseDataType(s string) DataType {
	dt, _ := dataTypes.lookup(s)
	return dt
}

func (d DataType) String() string { return dataTypes.name(d) }

// Valid reports whether d is a known data type.
func (d DataType) Valid() bool { return d > DataTypeInvalid && int(d) < len(dataTypes.names) }

// Unit returns the unit the capture tool reports d in.
func (d DataType) Unit() string {
	if !d.Valid() {
		return ""
	}
	return dataTypeUnits[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d DataType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid data type %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataType) UnmarshalText(text []byte) error {
	dt := ParseDataType(string(text))
	if dt == DataTypeInvalid {
		return fmt.Errorf("unknown data type %q", text)
	}
	*d = dt
	return nil
}
