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

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/destel/rill"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/internal/feed"
)

// Document is a reconstructed input document.
type Document struct {
	Path   string
	Engine *osmgeom.Engine

	// Err is the scan error of a truncated document.  Engine still holds
	// everything read before it.
	Err error
}

// InputFormats are the choices of the input format flag.
var InputFormats = []string{"auto", "xml", "pbf"}

// Options configure Process.
type Options struct {
	CPU      int
	Progress bool

	// Format overrides the format detected from document names.
	Format feed.Format
	Engine []osmgeom.EngineOption
}

// Process reconstructs every document of paths, several at a time, and
// calls fn with each in the order of paths.  Documents that cannot be opened
// stop the run; truncated documents are handed to fn with their error.
func Process(ctx context.Context, paths []string, opts Options, fn func(Document) error) error {
	if len(paths) == 0 {
		paths = []string{feed.Stdin}
	}

	cpu := max(opts.CPU, 1)
	parallel := min(cpu, len(paths))

	openOpts := []feed.OpenOption{feed.WithProcs(cpu / parallel)}
	if opts.Format != feed.UNKNOWN {
		openOpts = append(openOpts, feed.WithFormat(opts.Format))
	}

	if opts.Progress && len(paths) == 1 {
		openOpts = append(openOpts, feed.WithInputWrapper(ProgressWrapper(os.Stderr)))
	}

	docs := rill.OrderedMap(rill.FromSlice(paths, nil), parallel, func(path string) (Document, error) {
		return reconstruct(ctx, path, opts.Engine, openOpts)
	})

	return rill.ForEach(docs, 1, fn)
}

func reconstruct(ctx context.Context, path string, engineOpts []osmgeom.EngineOption, openOpts []feed.OpenOption) (Document, error) {
	src, err := feed.Open(ctx, path, openOpts...)
	if err != nil {
		return Document{}, err
	}

	doc := Document{Path: path, Engine: osmgeom.NewEngine(engineOpts...)}

	doc.Err = feed.Run(ctx, src, doc.Engine)
	if doc.Err != nil {
		slog.Error("document truncated", "path", path, "error", doc.Err)
	}

	if err := src.Close(); err != nil {
		slog.Warn("unable to close document", "path", path, "error", err)
	}

	return doc, nil
}
