// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objstore opens input and output locations that may be local
// files, standard input and output, or Google Cloud Storage objects.
//
// A location is "-" for standard input or output, gs://bucket/object
// for a Cloud Storage object, or a local path. List also accepts
// gs://bucket/prefix/ for every object under prefix.
package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const gsScheme = "gs://"

// Options configure access to Cloud Storage. With no options set,
// application default credentials are used.
type Options struct {
	// CredentialsFile is a service account key file.
	CredentialsFile string

	// AccessToken is an OAuth2 access token, such as the output of
	// "gcloud auth print-access-token".
	AccessToken string
}

func (o Options) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	if o.AccessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.AccessToken})
		opts = append(opts, option.WithTokenSource(ts))
	}
	return opts
}

// A Store opens locations. The Cloud Storage client is created on
// first use, so a Store that only touches local files never needs
// credentials.
type Store struct {
	opts Options

	mu  sync.Mutex
	gcs *storage.Client
}

// New returns a Store that uses opts for Cloud Storage access.
func New(opts Options) *Store {
	return &Store{opts: opts}
}

// IsRemote reports whether loc names a Cloud Storage location.
func IsRemote(loc string) bool {
	return strings.HasPrefix(loc, gsScheme)
}

// splitGS splits gs://bucket/object into bucket and object.
func splitGS(loc string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(loc, gsScheme)
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("malformed location %q: missing bucket", loc)
	}
	return bucket, object, nil
}

func (s *Store) client(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gcs == nil {
		c, err := storage.NewClient(ctx, s.opts.clientOptions()...)
		if err != nil {
			return nil, fmt.Errorf("creating storage client: %w", err)
		}
		s.gcs = c
	}
	return s.gcs, nil
}

// Open opens loc for reading.
func (s *Store) Open(ctx context.Context, loc string) (io.ReadCloser, error) {
	switch {
	case loc == "-":
		return io.NopCloser(os.Stdin), nil
	case IsRemote(loc):
		bucket, object, err := splitGS(loc)
		if err != nil {
			return nil, err
		}
		c, err := s.client(ctx)
		if err != nil {
			return nil, err
		}
		r, err := c.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		return r, nil
	}
	return os.Open(loc)
}

// Create opens loc for writing, replacing any existing content. For
// Cloud Storage, the object is only written when the returned writer
// is closed successfully.
func (s *Store) Create(ctx context.Context, loc string) (io.WriteCloser, error) {
	switch {
	case loc == "-":
		return nopWriteCloser{os.Stdout}, nil
	case IsRemote(loc):
		bucket, object, err := splitGS(loc)
		if err != nil {
			return nil, err
		}
		if object == "" || strings.HasSuffix(object, "/") {
			return nil, fmt.Errorf("cannot write to %q: not an object", loc)
		}
		c, err := s.client(ctx)
		if err != nil {
			return nil, err
		}
		w := c.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = contentType(object)
		return w, nil
	}
	if dir := filepath.Dir(loc); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, err
		}
	}
	return os.Create(loc)
}

// List expands loc into the locations it names. A local directory or
// a gs:// location ending in "/" expands to the files or objects
// directly inside it, sorted by name; anything else expands to itself.
func (s *Store) List(ctx context.Context, loc string) ([]string, error) {
	if IsRemote(loc) {
		if !strings.HasSuffix(loc, "/") {
			return []string{loc}, nil
		}
		bucket, prefix, err := splitGS(loc)
		if err != nil {
			return nil, err
		}
		c, err := s.client(ctx)
		if err != nil {
			return nil, err
		}
		var out []string
		it := c.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("listing %s: %w", loc, err)
			}
			if attrs.Name == "" {
				// A sub-prefix.
				continue
			}
			out = append(out, gsScheme+path.Join(bucket, attrs.Name))
		}
		sort.Strings(out)
		return out, nil
	}

	if loc == "-" {
		return []string{loc}, nil
	}
	fi, err := os.Stat(loc)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{loc}, nil
	}
	ents, err := os.ReadDir(loc)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, filepath.Join(loc, e.Name()))
	}
	return out, nil
}

// Close releases the Cloud Storage client, if one was created.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gcs == nil {
		return nil
	}
	err := s.gcs.Close()
	s.gcs = nil
	return err
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".html":
		return "text/html; charset=utf-8"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
