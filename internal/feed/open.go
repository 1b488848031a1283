// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"m4o.io/osmgeom/internal/codec"
)

// Stdin is the path naming standard input.
const Stdin = "-"

// ErrUnknownFormat is returned for a document whose format cannot be told
// from its name.
var ErrUnknownFormat = errors.New("unknown document format")

// Format is an enumeration of document formats.
type Format int

const (
	// UNKNOWN is detected from the document name.
	UNKNOWN Format = iota
	XML
	PBF
)

// ParseFormat returns the format called name: "xml" or "osm" for OSM XML,
// "pbf" for OSM PBF, and "auto" or "" for UNKNOWN, which Open detects from
// the document name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return UNKNOWN, nil
	case "xml", "osm":
		return XML, nil
	case "pbf":
		return PBF, nil
	default:
		return UNKNOWN, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// FormatFromName returns the format named by the extension of name, after
// any compression extension.
func FormatFromName(name string) (Format, error) {
	_, rest := codec.FromName(name)

	switch strings.ToLower(filepath.Ext(rest)) {
	case ".osm", ".xml":
		return XML, nil
	case ".pbf":
		return PBF, nil
	default:
		return UNKNOWN, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// openOptions provides optional configuration parameters for Open.
type openOptions struct {
	format Format
	procs  int
	wrap   func(f *os.File) (io.ReadCloser, error)
}

// OpenOption configures how a document is opened.
type OpenOption func(*openOptions)

// WithFormat overrides the format detected from the document name.  Standard
// input is read as XML unless a format is given.
func WithFormat(f Format) OpenOption {
	return func(o *openOptions) {
		o.format = f
	}
}

// WithProcs lets you set the number of goroutines decoding PBF blocks.
func WithProcs(n int) OpenOption {
	return func(o *openOptions) {
		o.procs = max(n, 1)
	}
}

// WithInputWrapper wraps the opened file before it is decompressed, for
// instance to report progress.
func WithInputWrapper(wrap func(f *os.File) (io.ReadCloser, error)) OpenOption {
	return func(o *openOptions) {
		o.wrap = wrap
	}
}

var defaultOpenConfig = openOptions{
	procs: runtime.GOMAXPROCS(-1),
	wrap: func(f *os.File) (io.ReadCloser, error) {
		return f, nil
	},
}

// Source is an open document.  Closing it closes the scanner and the
// underlying file.
type Source struct {
	osm.Scanner

	Name        string
	Format      Format
	Compression codec.Compression

	closers []io.Closer
}

// Open opens the document at path, or standard input for Stdin.
func Open(ctx context.Context, path string, opts ...OpenOption) (*Source, error) {
	cfg := defaultOpenConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	src := &Source{Name: path, Format: cfg.format}

	if src.Format == UNKNOWN {
		if path == Stdin {
			src.Format = XML
		} else {
			f, err := FormatFromName(path)
			if err != nil {
				return nil, err
			}

			src.Format = f
		}
	}

	var f *os.File
	if path == Stdin {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, err
		}
	}

	in, err := cfg.wrap(f)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	src.closers = append(src.closers, in)
	src.Compression, _ = codec.FromName(path)

	r, err := codec.NewReader(in, src.Compression)
	if err != nil {
		_ = src.Close()

		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}

	src.closers = append(src.closers, r)
	src.Scanner = NewScanner(ctx, r, src.Format, cfg.procs)

	return src, nil
}

// NewScanner returns a scanner over r in format f.
func NewScanner(ctx context.Context, r io.Reader, f Format, procs int) osm.Scanner {
	if f == PBF {
		return osmpbf.New(ctx, r, procs)
	}

	return osmxml.New(ctx, r)
}

// Close closes the scanner, then the decompressor and the file.
func (s *Source) Close() error {
	var errs []error

	if s.Scanner != nil {
		errs = append(errs, s.Scanner.Close())
	}

	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}

	return errors.Join(errs...)
}
