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

package resolve

import (
	"log/slog"
	"strings"

	"github.com/peterstace/simplefeatures/rtree"

	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/internal/ring"
	"m4o.io/osmgeom/model"
)

// RoleInner marks a member ring as a hole candidate.  Every other role,
// including none, marks a shell candidate.
const RoleInner = "inner"

var (
	// DefaultLineKinds are the kind tag values of line collections.
	DefaultLineKinds = []string{"multilinestring", "route"}

	// DefaultAreaKinds are the kind tag values of area collections.
	DefaultAreaKinds = []string{"multipolygon", "boundary"}
)

// Kind is the declared kind of a composite.
type Kind int

const (
	// Untyped composites resolve to their members' geometries.
	Untyped Kind = iota

	// LineCollection composites resolve to a geometry.MultiLine.
	LineCollection

	// AreaCollection composites resolve to a geometry.Area or
	// geometry.MultiArea.
	AreaCollection
)

// PathLookup finds indexed paths.
type PathLookup interface {
	Get(id model.ID) (model.Path, bool)
}

// CompositeLookup finds indexed composites.
type CompositeLookup interface {
	Get(id model.ID) (model.Composite, bool)
}

// Lookups bundles the indices a composite is resolved against.
type Lookups struct {
	Points     PointLookup
	Paths      PathLookup
	Composites CompositeLookup
}

// Outcome is the result of one resolution attempt.  Geometry is nil when
// the attempt was deferred or nothing could be built.
type Outcome struct {
	Geometry geometry.Geometry
	Deferred bool

	// Missing is the first member that could not be found.
	Missing model.ID
}

// Resolver builds composite geometries.
type Resolver struct {
	KindTag   string
	LineKinds []string
	AreaKinds []string
	Logger    *slog.Logger
}

// Kind classifies the composite by the value of its kind tag, ignoring case.
func (r *Resolver) Kind(tags map[string]string) Kind {
	v, ok := tags[r.KindTag]
	if !ok {
		return Untyped
	}

	switch {
	case containsFold(r.LineKinds, v):
		return LineCollection
	case containsFold(r.AreaKinds, v):
		return AreaCollection
	default:
		return Untyped
	}
}

// Resolve attempts to build the geometry of c.
//
// Line collections collect the lines of their path members, silently
// skipping members that cannot be found.  Area collections assemble shells
// and holes from their path members.  Every other composite, and any line
// or area collection that produced nothing, resolves each member against
// the path, point and composite lookups.  Outside line collections, a
// member that cannot be found defers the whole composite unless queued is
// set, in which case the member is skipped.
func (r *Resolver) Resolve(c model.Composite, l Lookups, queued bool) Outcome {
	var g geometry.Geometry

	switch r.Kind(c.Tags) {
	case LineCollection:
		g = r.lines(c, l.Paths)
	case AreaCollection:
		var missing model.ID

		g, missing = r.areas(c, l.Paths)
		if missing != "" && !queued {
			return Outcome{Deferred: true, Missing: missing}
		}
	}

	if g != nil {
		return Outcome{Geometry: g}
	}

	return r.members(c, l, queued)
}

func (r *Resolver) lines(c model.Composite, paths PathLookup) geometry.Geometry {
	var lines []geometry.Line

	for _, m := range c.Members {
		if !isPathMember(m) {
			continue
		}

		p, ok := paths.Get(m.ID)
		if !ok {
			continue
		}

		switch g := p.Geometry.(type) {
		case geometry.Line:
			lines = append(lines, g)
		case geometry.Ring:
			lines = append(lines, g.AsLine())
		case geometry.Area:
			lines = append(lines, g.Shell.AsLine())
		}
	}

	if len(lines) == 0 {
		return nil
	}

	return geometry.MultiLine{Lines: lines}
}

// areas returns the area geometry of c and the first path member that could
// not be found.
func (r *Resolver) areas(c model.Composite, paths PathLookup) (geometry.Geometry, model.ID) {
	var (
		outerRings, innerRings []geometry.Ring
		outerWays, innerWays   []geometry.Line
		missing                model.ID
	)

	for _, m := range c.Members {
		if !isPathMember(m) {
			continue
		}

		p, ok := paths.Get(m.ID)
		if !ok {
			if missing == "" {
				missing = m.ID
			}

			continue
		}

		inner := m.Role == RoleInner

		switch g := p.Geometry.(type) {
		case geometry.Area:
			if inner {
				innerRings = append(innerRings, g.Shell)
			} else {
				outerRings = append(outerRings, g.Shell)
			}
		case geometry.Ring:
			if inner {
				innerRings = append(innerRings, g)
			} else {
				outerRings = append(outerRings, g)
			}
		case geometry.Line:
			if rg, ok := geometry.NewRing(g.Coords); ok {
				if inner {
					innerRings = append(innerRings, rg)
				} else {
					outerRings = append(outerRings, rg)
				}
			} else if inner {
				innerWays = append(innerWays, g)
			} else {
				outerWays = append(outerWays, g)
			}
		}
	}

	outerRings = append(outerRings, r.closeWays(c.ID, outerWays)...)
	innerRings = append(innerRings, r.closeWays(c.ID, innerWays)...)

	switch len(outerRings) {
	case 0:
		return nil, missing
	case 1:
		return geometry.Area{Shell: outerRings[0], Holes: innerRings}, missing
	default:
		return geometry.MultiArea{Areas: assignHoles(outerRings, innerRings)}, missing
	}
}

// closeWays merges open fragments and keeps the rings that result.
func (r *Resolver) closeWays(id model.ID, ways []geometry.Line) []geometry.Ring {
	if len(ways) == 0 {
		return nil
	}

	var rings []geometry.Ring

	for _, g := range ring.Merge(ways) {
		switch g := g.(type) {
		case geometry.Ring:
			rings = append(rings, g)
		case geometry.Line:
			r.logger().Debug("dropping unclosed fragment", "id", id, "positions", len(g.Coords))
		}
	}

	return rings
}

// assignHoles builds one area per outer ring holding the inner rings it
// contains.
func assignHoles(outers, inners []geometry.Ring) []geometry.Area {
	areas := make([]geometry.Area, len(outers))

	items := make([]rtree.BulkItem, len(outers))
	for i, o := range outers {
		areas[i].Shell = o
		items[i] = rtree.BulkItem{Box: toBox(o), RecordID: i}
	}

	tree := rtree.BulkLoad(items)

	for _, in := range inners {
		var candidates []int

		_ = tree.RangeSearch(toBox(in), func(i int) error {
			candidates = append(candidates, i)

			return nil
		})

		for _, i := range candidates {
			if outers[i].ContainsRing(in) {
				areas[i].Holes = append(areas[i].Holes, in)
			}
		}
	}

	return areas
}

func toBox(r geometry.Ring) rtree.Box {
	b := r.Bound()

	return rtree.Box{MinX: b.X.Lo, MinY: b.Y.Lo, MaxX: b.X.Hi, MaxY: b.Y.Hi}
}

func (r *Resolver) members(c model.Composite, l Lookups, queued bool) Outcome {
	geoms := make([]geometry.Geometry, 0, len(c.Members))

	for _, m := range c.Members {
		g, ok := lookupMember(m, l)
		if !ok {
			if !queued {
				return Outcome{Deferred: true, Missing: m.ID}
			}

			r.logger().Debug("skipping unknown member", "id", c.ID, "member", m.ID)

			continue
		}

		geoms = append(geoms, g)
	}

	switch len(geoms) {
	case 0:
		return Outcome{}
	case 1:
		return Outcome{Geometry: geoms[0]}
	default:
		return Outcome{Geometry: geometry.Collection{Geometries: geoms}}
	}
}

// lookupMember resolves m against the path, point and composite lookups in
// that order.  A declared member type restricts the search to its lookup.
func lookupMember(m model.Member, l Lookups) (geometry.Geometry, bool) {
	if m.Type == model.ANY || m.Type == model.PATH {
		if p, ok := l.Paths.Get(m.ID); ok && p.Geometry != nil {
			return p.Geometry, true
		}
	}

	if m.Type == model.ANY || m.Type == model.POINT {
		if p, ok := l.Points.Get(m.ID); ok {
			return p.GetGeometry(), true
		}
	}

	if m.Type == model.ANY || m.Type == model.COMPOSITE {
		if c, ok := l.Composites.Get(m.ID); ok && c.Geometry != nil {
			return c.Geometry, true
		}
	}

	return nil, false
}

func isPathMember(m model.Member) bool {
	return m.Type == model.PATH || m.Type == model.ANY
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}

	return r.Logger
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}

	return false
}
