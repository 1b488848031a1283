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

package osmgeom

import (
	"context"
	"strings"

	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/model"
)

// NameTag is the tag key holding an entity's name.
const NameTag = "name"

// Category is the label a Classifier attaches to an entity.
type Category string

// Classifier derives the category of an entity from its tags.  It reports
// false when the tags fall in no category.
type Classifier func(tags map[string]string) (Category, bool)

// KeyClassifier returns a Classifier categorizing an entity by the first of
// keys present in its tags, as "key=value".
func KeyClassifier(keys ...string) Classifier {
	return func(tags map[string]string) (Category, bool) {
		for _, k := range keys {
			if v, ok := tags[k]; ok {
				return Category(k + "=" + v), true
			}
		}

		return "", false
	}
}

// Feature is a reconstructed entity handed to an Emitter.
type Feature struct {
	Kind     model.EntityType
	ID       model.ID
	Name     string
	Type     string
	Tags     map[string]string
	Geometry geometry.Geometry
	Category Category
}

// Emitter receives reconstructed features.
type Emitter interface {
	Emit(ctx context.Context, f Feature) error
}

// EmitterFunc adapts a function to an Emitter.
type EmitterFunc func(ctx context.Context, f Feature) error

// Emit calls fn(ctx, f).
func (fn EmitterFunc) Emit(ctx context.Context, f Feature) error {
	return fn(ctx, f)
}

type emitOptions struct {
	classify   Classifier
	namedOnly  bool
	taggedOnly bool
}

// EmitOption configures Engine.Emit.
type EmitOption func(*emitOptions)

// WithClassifier attaches the category c derives to every feature.
func WithClassifier(c Classifier) EmitOption {
	return func(o *emitOptions) {
		o.classify = c
	}
}

// WithNamedOnly emits only entities carrying a name tag.
func WithNamedOnly() EmitOption {
	return func(o *emitOptions) {
		o.namedOnly = true
	}
}

// WithTaggedOnly skips points without tags.  Such points usually only
// exist as path vertices.
func WithTaggedOnly() EmitOption {
	return func(o *emitOptions) {
		o.taggedOnly = true
	}
}

// Emit hands every entity with a reconstructed geometry to em, in the order
// of Entities.  It stops at the first error em returns or when ctx is done.
func (e *Engine) Emit(ctx context.Context, em Emitter, opts ...EmitOption) error {
	var cfg emitOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	for ent := range e.Entities() {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, ok := e.feature(ent, &cfg)
		if !ok {
			continue
		}

		if err := em.Emit(ctx, f); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) feature(ent model.Entity, cfg *emitOptions) (Feature, bool) {
	g := ent.GetGeometry()
	if g == nil {
		return Feature{}, false
	}

	tags := ent.GetTags()
	name := strings.TrimSpace(tags[NameTag])

	if cfg.namedOnly && name == "" {
		return Feature{}, false
	}

	if cfg.taggedOnly && ent.GetType() == model.POINT && len(tags) == 0 {
		return Feature{}, false
	}

	f := Feature{
		Kind:     ent.GetType(),
		ID:       ent.GetID(),
		Name:     name,
		Type:     tags[e.kindTag],
		Tags:     tags,
		Geometry: g,
	}

	if cfg.classify != nil {
		if c, ok := cfg.classify(tags); ok {
			f.Category = c
		}
	}

	return f, true
}
