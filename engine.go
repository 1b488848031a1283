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

// Package osmgeom reconstructs point, line and area geometries from a
// stream of map entities in which paths reference points and composites
// reference points, paths and other composites.
//
// An Engine is fed points, then paths, then composites, and finally told
// the stream ended.  Composites that reference entities not yet known are
// retried once at the end of the stream.
package osmgeom

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/golang/geo/r2"

	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/internal/index"
	"m4o.io/osmgeom/internal/resolve"
	"m4o.io/osmgeom/model"
)

var (
	// ErrDuplicateID is returned when an entity ID is fed twice for the same
	// entity type.
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrEngineClosed is returned when entities are fed after the end of the
	// stream.
	ErrEngineClosed = errors.New("engine closed")

	// ErrUnknownPoint is returned for a path referencing a point that was
	// not fed before it.
	ErrUnknownPoint = resolve.ErrUnknownPoint

	// ErrEmptyPath is returned for a path without point references.
	ErrEmptyPath = resolve.ErrEmptyPath
)

// Engine indexes the entities of a single document and reconstructs their
// geometries.  An Engine is not safe for concurrent use.
type Engine struct {
	points     *index.Index[model.ID, model.Point]
	paths      *index.Index[model.ID, model.Path]
	composites *index.Index[model.ID, model.Composite]
	queue      *resolve.Queue

	builder  resolve.PathBuilder
	resolver *resolve.Resolver

	kindTag  string
	validate bool
	log      *slog.Logger

	stats  Stats
	closed bool
}

// NewEngine returns an empty engine.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &Engine{
		points:     index.New[model.ID, model.Point](),
		paths:      index.New[model.ID, model.Path](),
		composites: index.New[model.ID, model.Composite](),
		queue:      resolve.NewQueue(),
		builder:    resolve.PathBuilder{BoundaryKeys: cfg.boundaryKeys},
		resolver: &resolve.Resolver{
			KindTag:   cfg.kindTag,
			LineKinds: cfg.lineKinds,
			AreaKinds: cfg.areaKinds,
			Logger:    cfg.logger,
		},
		kindTag:  cfg.kindTag,
		validate: cfg.validate,
		log:      cfg.logger,
	}
}

// OnPoint indexes a point at (x, y).
func (e *Engine) OnPoint(id model.ID, x, y float64, tags map[string]string) error {
	if e.closed {
		return ErrEngineClosed
	}

	p := model.Point{ID: id, Tags: tags, Coord: geometry.Coord{X: x, Y: y}}
	if err := e.points.Put(id, p); err != nil {
		e.log.Warn("duplicate point", "id", id)

		return fmt.Errorf("point %s: %w", id, ErrDuplicateID)
	}

	e.stats.Points++

	return nil
}

// OnPath builds the geometry of a path from already indexed points and
// indexes it.  A path referencing an unknown point is logged and skipped;
// the returned error is informational and the stream may continue.
func (e *Engine) OnPath(id model.ID, pointIDs []model.ID, tags map[string]string) error {
	if e.closed {
		return ErrEngineClosed
	}

	if e.paths.Has(id) {
		e.log.Warn("duplicate path", "id", id)

		return fmt.Errorf("path %s: %w", id, ErrDuplicateID)
	}

	g, err := e.builder.Build(pointIDs, tags, e.points)
	if err != nil {
		e.stats.SkippedPaths++

		var upe *resolve.UnknownPointError
		if errors.As(err, &upe) {
			e.log.Warn("path references unknown point", "id", id, "point", upe.Point)
		} else {
			e.log.Warn("path skipped", "id", id, "error", err)
		}

		return fmt.Errorf("path %s: %w", id, err)
	}

	_ = e.paths.Put(id, model.Path{ID: id, Tags: tags, PointIDs: pointIDs, Geometry: g})
	e.stats.Paths++

	return nil
}

// OnComposite resolves a composite against the entities indexed so far.
// A composite with members that are not yet known is deferred until
// OnEndOfStream.
func (e *Engine) OnComposite(id model.ID, members []model.Member, tags map[string]string) error {
	if e.closed {
		return ErrEngineClosed
	}

	if e.composites.Has(id) || e.queue.Contains(id) {
		e.log.Warn("duplicate composite", "id", id)

		return fmt.Errorf("composite %s: %w", id, ErrDuplicateID)
	}

	e.stats.Composites++

	c := model.Composite{ID: id, Tags: tags, Members: members}

	out := e.resolver.Resolve(c, e.lookups(), false)
	if out.Deferred {
		e.log.Debug("composite deferred", "id", id, "member", out.Missing)
		e.queue.Push(c)
		e.stats.Deferred++

		return nil
	}

	if out.Geometry == nil {
		e.log.Warn("composite unresolved", "id", id)
		e.stats.Unresolved++
	} else {
		e.stats.Resolved++
	}

	e.store(c, out.Geometry)

	return nil
}

// OnEndOfStream retries every deferred composite once, in the order they
// were deferred, and closes the engine to further input.  Composites that
// still cannot be built are logged and dropped.  Calling OnEndOfStream
// again has no effect.
func (e *Engine) OnEndOfStream() {
	if e.closed {
		return
	}

	e.closed = true

	e.queue.Drain(func(c model.Composite) bool {
		out := e.resolver.Resolve(c, e.lookups(), true)
		if out.Geometry == nil {
			return false
		}

		e.stats.ResolvedDeferred++
		e.store(c, out.Geometry)

		return true
	})

	for _, id := range e.queue.Pending() {
		e.log.Warn("composite unresolved", "id", id)
		e.stats.Unresolved++
	}
}

// store writes a composite to its index, once.
func (e *Engine) store(c model.Composite, g geometry.Geometry) {
	c.Geometry = g

	if g != nil && e.validate {
		if err := geometry.Validate(g); err != nil {
			e.log.Warn("composite extracted but invalid", "id", c.ID, "error", err)
			e.stats.Invalid++
		}
	}

	_ = e.composites.Put(c.ID, c)
}

func (e *Engine) lookups() resolve.Lookups {
	return resolve.Lookups{Points: e.points, Paths: e.paths, Composites: e.composites}
}

// Closed reports whether OnEndOfStream has been called.
func (e *Engine) Closed() bool {
	return e.closed
}

// Stats returns the counts collected so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Point returns the indexed point with id.
func (e *Engine) Point(id model.ID) (model.Point, bool) {
	return e.points.Get(id)
}

// Path returns the indexed path with id.
func (e *Engine) Path(id model.ID) (model.Path, bool) {
	return e.paths.Get(id)
}

// Composite returns the indexed composite with id.  Deferred composites are
// not indexed until they are resolved.
func (e *Engine) Composite(id model.ID) (model.Composite, bool) {
	return e.composites.Get(id)
}

// Unresolved returns the composites still deferred, in the order they were
// deferred.
func (e *Engine) Unresolved() []model.ID {
	return e.queue.Pending()
}

// Entities iterates every indexed entity: points, then paths, then
// composites, each in the order they were fed.
func (e *Engine) Entities() iter.Seq[model.Entity] {
	return func(yield func(model.Entity) bool) {
		for _, p := range e.points.All {
			if !yield(p) {
				return
			}
		}

		for _, p := range e.paths.All {
			if !yield(p) {
				return
			}
		}

		for _, c := range e.composites.All {
			if !yield(c) {
				return
			}
		}
	}
}

// Bound returns the extent of every reconstructed geometry.  The result is
// empty when nothing was reconstructed.
func (e *Engine) Bound() r2.Rect {
	b := r2.EmptyRect()

	for ent := range e.Entities() {
		if g := ent.GetGeometry(); g != nil {
			b = b.Union(g.Bound())
		}
	}

	return b
}
