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

// Package geometry contains the planar geometry variants reconstructed from
// OpenStreetMap-like entities.
package geometry

//go:generate stringer -type=Shape

import (
	"github.com/golang/geo/r2"
)

// Coord is a planar (x, y) position.  For geographic input x is the
// longitude and y the latitude.
type Coord = r2.Point

// Shape is an enumeration of the geometry variants.
type Shape int

const (
	// POINT is a single position.
	POINT Shape = iota

	// LINE is an open polyline.
	LINE

	// RING is a closed polyline kept as boundary linework.
	RING

	// AREA is a filled polygon with a shell and zero or more holes.
	AREA

	// MULTILINE is a collection of lines.
	MULTILINE

	// MULTIAREA is a collection of areas.
	MULTIAREA

	// COLLECTION is a heterogeneous collection of geometries.
	COLLECTION
)

// MinRingCoords is the smallest number of positions a Ring may hold,
// including the closing position.
const MinRingCoords = 4

// Geometry is the tagged variant over all reconstructed shapes.  Callers
// match on the concrete type with a type switch.
type Geometry interface {
	isGeometry() // prevents extensions

	// Shape reports the variant.
	Shape() Shape

	// Bound returns the smallest rectangle containing the geometry.
	Bound() r2.Rect
}

// Point is a single position.
type Point struct {
	Coord Coord
}

// Line is an open polyline of at least two positions.
type Line struct {
	Coords []Coord
}

// Ring is a closed polyline of at least MinRingCoords positions whose first
// and last positions coincide.
type Ring struct {
	Coords []Coord
}

// Area is a polygon.
type Area struct {
	Shell Ring
	Holes []Ring
}

// MultiLine is a collection of lines.
type MultiLine struct {
	Lines []Line
}

// MultiArea is a collection of areas.
type MultiArea struct {
	Areas []Area
}

// Collection is a heterogeneous collection of geometries.
type Collection struct {
	Geometries []Geometry
}

var (
	_ Geometry = Point{}
	_ Geometry = Line{}
	_ Geometry = Ring{}
	_ Geometry = Area{}
	_ Geometry = MultiLine{}
	_ Geometry = MultiArea{}
	_ Geometry = Collection{}
)

func (Point) isGeometry()      {}
func (Line) isGeometry()       {}
func (Ring) isGeometry()       {}
func (Area) isGeometry()       {}
func (MultiLine) isGeometry()  {}
func (MultiArea) isGeometry()  {}
func (Collection) isGeometry() {}

func (Point) Shape() Shape      { return POINT }
func (Line) Shape() Shape       { return LINE }
func (Ring) Shape() Shape       { return RING }
func (Area) Shape() Shape       { return AREA }
func (MultiLine) Shape() Shape  { return MULTILINE }
func (MultiArea) Shape() Shape  { return MULTIAREA }
func (Collection) Shape() Shape { return COLLECTION }

func (p Point) Bound() r2.Rect { return r2.RectFromPoints(p.Coord) }

func (l Line) Bound() r2.Rect { return boundOf(l.Coords) }

func (r Ring) Bound() r2.Rect { return boundOf(r.Coords) }

// Bound of an area is the bound of its shell.
func (a Area) Bound() r2.Rect { return a.Shell.Bound() }

func (m MultiLine) Bound() r2.Rect {
	b := r2.EmptyRect()
	for _, l := range m.Lines {
		b = b.Union(l.Bound())
	}

	return b
}

func (m MultiArea) Bound() r2.Rect {
	b := r2.EmptyRect()
	for _, a := range m.Areas {
		b = b.Union(a.Bound())
	}

	return b
}

func (c Collection) Bound() r2.Rect {
	b := r2.EmptyRect()
	for _, g := range c.Geometries {
		if g != nil {
			b = b.Union(g.Bound())
		}
	}

	return b
}

func boundOf(coords []Coord) r2.Rect {
	if len(coords) == 0 {
		return r2.EmptyRect()
	}

	return r2.RectFromPoints(coords...)
}

// NewRing creates a Ring from coords, returning false when the positions do
// not form a closed sequence of at least MinRingCoords positions.
func NewRing(coords []Coord) (Ring, bool) {
	if !IsClosed(coords) || len(coords) < MinRingCoords {
		return Ring{}, false
	}

	return Ring{Coords: coords}, true
}

// IsClosed reports whether the sequence has at least two positions and its
// first and last positions coincide.
func IsClosed(coords []Coord) bool {
	return len(coords) > 1 && coords[0] == coords[len(coords)-1]
}

// AsLine returns the ring's positions as a line.
func (r Ring) AsLine() Line {
	return Line{Coords: r.Coords}
}

// Equal reports whether two geometries are the same variant with exactly
// the same positions in the same order.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch a := a.(type) {
	case Point:
		b, ok := b.(Point)
		return ok && a.Coord == b.Coord
	case Line:
		b, ok := b.(Line)
		return ok && equalCoords(a.Coords, b.Coords)
	case Ring:
		b, ok := b.(Ring)
		return ok && equalCoords(a.Coords, b.Coords)
	case Area:
		b, ok := b.(Area)
		return ok && equalArea(a, b)
	case MultiLine:
		b, ok := b.(MultiLine)
		if !ok || len(a.Lines) != len(b.Lines) {
			return false
		}

		for i := range a.Lines {
			if !equalCoords(a.Lines[i].Coords, b.Lines[i].Coords) {
				return false
			}
		}

		return true
	case MultiArea:
		b, ok := b.(MultiArea)
		if !ok || len(a.Areas) != len(b.Areas) {
			return false
		}

		for i := range a.Areas {
			if !equalArea(a.Areas[i], b.Areas[i]) {
				return false
			}
		}

		return true
	case Collection:
		b, ok := b.(Collection)
		if !ok || len(a.Geometries) != len(b.Geometries) {
			return false
		}

		for i := range a.Geometries {
			if !Equal(a.Geometries[i], b.Geometries[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func equalArea(a, b Area) bool {
	if !equalCoords(a.Shell.Coords, b.Shell.Coords) || len(a.Holes) != len(b.Holes) {
		return false
	}

	for i := range a.Holes {
		if !equalCoords(a.Holes[i].Coords, b.Holes[i].Coords) {
			return false
		}
	}

	return true
}

func equalCoords(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
