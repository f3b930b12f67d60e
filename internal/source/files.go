// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source reads the input files of a pipeline run.
package source

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/vbparts/perfdata/internal/objstore"
)

// An Input is the complete content of one input file.
type Input struct {
	// Path is the location the input was read from.
	Path string

	// ID names the input. By default it is the base name of Path
	// without its extensions, e.g. "RTX-2080-Frametime" for
	// "results/RTX-2080-Frametime.csv.zst".
	ID string

	// Data is the decompressed content.
	Data []byte

	// Sum is the xxhash of Data.
	Sum uint64
}

// Fingerprint returns Sum in hex.
func (in *Input) Fingerprint() string {
	return fmt.Sprintf("%016x", in.Sum)
}

// NewInput returns an Input holding data, with its ID derived from
// name.
func NewInput(name string, data []byte) Input {
	return Input{Path: name, ID: ID(name), Data: data, Sum: xxhash.Sum64(data)}
}

// ID returns the base name of loc with compression and data
// extensions removed.
func ID(loc string) string {
	base := path.Base(filepath.ToSlash(loc))
	for {
		ext := path.Ext(base)
		if ext == "" || ext == base {
			return base
		}
		switch ext {
		case ".zst", ".gz", ".lz4", ".csv", ".txt":
			base = strings.TrimSuffix(base, ext)
		default:
			return base
		}
	}
}

// A Files reads a sequence of input files.
//
// Each entry of Paths is a location understood by objstore. A
// directory expands to the files in it. Compressed files ending in
// .zst, .gz or .lz4 are decompressed transparently.
type Files struct {
	// Paths is the list of locations to read.
	//
	// If AllowLabels is set, these strings may be of the form
	// id=path, and the id part will be used as the Input's ID.
	Paths []string

	// Store opens locations. If nil, a Store with default options
	// is used.
	Store *objstore.Store

	// Context is used for remote reads. If nil,
	// context.Background() is used.
	Context context.Context

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	AllowStdin bool

	// AllowLabels indicates that custom IDs are allowed in Paths.
	AllowLabels bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet.
	inputs []input

	cur Input
	err error
}

type input struct {
	path string
	id   string
}

func (f *Files) ctx() context.Context {
	if f.Context == nil {
		return context.Background()
	}
	return f.Context
}

// init does first-use initialization of f.
func (f *Files) init() error {
	f.inputs = []input{}
	if f.Store == nil {
		f.Store = objstore.New(objstore.Options{})
	}
	paths := f.Paths
	if f.AllowStdin && len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, p := range paths {
		id := ""
		if i := strings.Index(p, "="); f.AllowLabels && i >= 0 {
			id, p = p[:i], p[i+1:]
		}
		if p == "-" {
			if !f.AllowStdin {
				return fmt.Errorf("reading standard input is not allowed")
			}
			if id == "" {
				id = "stdin"
			}
			f.inputs = append(f.inputs, input{p, id})
			continue
		}
		locs, err := f.Store.List(f.ctx(), p)
		if err != nil {
			return err
		}
		for _, loc := range locs {
			lid := id
			if lid == "" || len(locs) > 1 {
				lid = ID(loc)
			}
			f.inputs = append(f.inputs, input{loc, lid})
		}
	}
	return nil
}

// Len returns the number of inputs not yet scanned, expanding
// directories if needed. It returns 0 if the inputs cannot be listed;
// Err reports why.
func (f *Files) Len() int {
	if f.inputs == nil && f.err == nil {
		if f.err = f.init(); f.err != nil {
			return 0
		}
	}
	return len(f.inputs)
}

// Scan reads the next input in the sequence of files and reports
// whether one was read. The caller should use the Input method to get
// it. If Scan reaches the end of the sequence, or if an I/O error
// occurs, it returns false. In this case, the caller should use the
// Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		if f.err = f.init(); f.err != nil {
			return false
		}
	}
	if len(f.inputs) == 0 {
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	data, err := f.read(inp.path)
	if err != nil {
		f.err = err
		return false
	}
	f.cur = Input{Path: inp.path, ID: inp.id, Data: data, Sum: xxhash.Sum64(data)}
	return true
}

func (f *Files) read(loc string) ([]byte, error) {
	rc, err := f.Store.Open(f.ctx(), loc)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	r, err := decompress(loc, rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	return data, nil
}

// decompress wraps r in a decompressor chosen by the extension of loc.
func decompress(loc string, r io.Reader) (io.ReadCloser, error) {
	switch path.Ext(loc) {
	case ".zst":
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case ".gz":
		return gzip.NewReader(r)
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return io.NopCloser(r), nil
}

// Input returns the input that was just read by Scan.
func (f *Files) Input() *Input {
	return &f.cur
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// A List is a sequence of in-memory inputs.
type List struct {
	Inputs []Input

	i int
}

// Scan advances to the next input.
func (l *List) Scan() bool {
	if l.i >= len(l.Inputs) {
		return false
	}
	l.i++
	return true
}

// Input returns the current input.
func (l *List) Input() *Input { return &l.Inputs[l.i-1] }

// Len returns the number of inputs not yet scanned.
func (l *List) Len() int { return len(l.Inputs) - l.i }

// Err always returns nil.
func (l *List) Err() error { return nil }
