// Copyright 2017-25 the original author or authors.
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

package osmgeom

import (
	"log/slog"

	"m4o.io/osmgeom/internal/resolve"
)

// DefaultKindTag is the tag key holding a composite's declared kind.
const DefaultKindTag = "type"

// engineOptions provides optional configuration parameters for Engine construction.
type engineOptions struct {
	logger       *slog.Logger // destination of per-entity diagnostics
	kindTag      string       // tag key holding the composite kind
	lineKinds    []string     // kinds resolved as line collections
	areaKinds    []string     // kinds resolved as area collections
	boundaryKeys []string     // tag keys keeping closed paths as rings
	validate     bool         // check resolved composites for validity
}

// EngineOption configures how we set up the engine.
type EngineOption func(*engineOptions)

// WithLogger lets you set the logger diagnostics are written to.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithKindTag lets you set the tag key holding a composite's kind.
func WithKindTag(key string) EngineOption {
	return func(o *engineOptions) {
		o.kindTag = key
	}
}

// WithLineKinds lets you set the kinds resolved as line collections.
func WithLineKinds(kinds ...string) EngineOption {
	return func(o *engineOptions) {
		o.lineKinds = kinds
	}
}

// WithAreaKinds lets you set the kinds resolved as area collections.
func WithAreaKinds(kinds ...string) EngineOption {
	return func(o *engineOptions) {
		o.areaKinds = kinds
	}
}

// WithBoundaryKeys lets you set the tag keys that keep a closed path as
// boundary linework instead of a filled area.
func WithBoundaryKeys(keys ...string) EngineOption {
	return func(o *engineOptions) {
		o.boundaryKeys = keys
	}
}

// WithValidation turns the validity check of resolved composites on or off.
func WithValidation(v bool) EngineOption {
	return func(o *engineOptions) {
		o.validate = v
	}
}

// defaultEngineConfig provides a default configuration for engines.
var defaultEngineConfig = engineOptions{
	kindTag:      DefaultKindTag,
	lineKinds:    resolve.DefaultLineKinds,
	areaKinds:    resolve.DefaultAreaKinds,
	boundaryKeys: resolve.DefaultBoundaryKeys,
	validate:     true,
}
