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

package emit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/geometry"
)

// WKT writes one tab separated line per feature: kind, id, name, category
// and the geometry as well-known text.
type WKT struct {
	w *bufio.Writer
}

var _ osmgeom.Emitter = (*WKT)(nil)

// NewWKT returns a WKT emitter writing to w.  Flush must be called once
// every feature is emitted.
func NewWKT(w io.Writer) *WKT {
	return &WKT{w: bufio.NewWriter(w)}
}

var fieldEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// Emit writes f as a single line.
func (e *WKT) Emit(_ context.Context, f osmgeom.Feature) error {
	text, err := geometry.WKT(f.Geometry)
	if err != nil {
		return fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	_, err = fmt.Fprintf(e.w, "%s\t%s\t%s\t%s\t%s\n",
		f.Kind, fieldEscaper.Replace(string(f.ID)), fieldEscaper.Replace(f.Name), fieldEscaper.Replace(string(f.Category)), text)

	return err
}

// Flush writes any buffered output.
func (e *WKT) Flush() error {
	return e.w.Flush()
}
