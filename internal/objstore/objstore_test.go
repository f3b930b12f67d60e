// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	s := New(Options{})
	defer s.Close()

	dir := t.TempDir()
	loc := filepath.Join(dir, "out", "Frametime-results.csv")
	w, err := s.Create(ctx, loc)
	require.NoError(t, err)
	_, err = io.WriteString(w, "a,b,\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := s.Open(ctx, loc)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "a,b,\n", string(data))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "out", "b.csv"), nil, 0666))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out", ".hidden"), nil, 0666))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out", "sub"), 0777))

	got, err := s.List(ctx, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "out", "Frametime-results.csv"), filepath.Join(dir, "out", "b.csv")}, got)

	got, err = s.List(ctx, loc)
	require.NoError(t, err)
	require.Equal(t, []string{loc}, got)

	_, err = s.List(ctx, filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestSplitGS(t *testing.T) {
	b, o, err := splitGS("gs://bucket/a/b.csv")
	require.NoError(t, err)
	require.Equal(t, "bucket", b)
	require.Equal(t, "a/b.csv", o)

	b, o, err = splitGS("gs://bucket")
	require.NoError(t, err)
	require.Equal(t, "bucket", b)
	require.Equal(t, "", o)

	_, _, err = splitGS("gs:///object")
	require.Error(t, err)

	require.True(t, IsRemote("gs://x/y"))
	require.False(t, IsRemote("/tmp/gs://x"))
}

func TestCreateRemoteDirectory(t *testing.T) {
	s := New(Options{})
	_, err := s.Create(context.Background(), "gs://bucket/dir/")
	require.Error(t, err)
}

func TestContentType(t *testing.T) {
	require.Equal(t, "text/csv", contentType("x/Frametime-all.csv"))
	require.Equal(t, "image/png", contentType("chart.png"))
	require.Equal(t, "application/octet-stream", contentType("data.zst"))
}
