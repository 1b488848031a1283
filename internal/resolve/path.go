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

// Package resolve turns paths and composites into geometries by resolving
// their references against the engine's indices.
package resolve

import (
	"errors"
	"fmt"

	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/model"
)

var (
	// ErrUnknownPoint is returned when a path references a point that has
	// not been indexed.
	ErrUnknownPoint = errors.New("unknown point")

	// ErrEmptyPath is returned for a path without point references.
	ErrEmptyPath = errors.New("empty path")
)

// UnknownPointError names the point a path failed to resolve.  It matches
// ErrUnknownPoint with errors.Is.
type UnknownPointError struct {
	Point model.ID
}

func (e *UnknownPointError) Error() string {
	return fmt.Sprintf("%s %s", ErrUnknownPoint, e.Point)
}

func (e *UnknownPointError) Unwrap() error {
	return ErrUnknownPoint
}

// DefaultBoundaryKeys are the tag keys marking a closed path as boundary
// linework rather than a filled area.
var DefaultBoundaryKeys = []string{"barrier", "highway"}

// PointLookup finds indexed points.
type PointLookup interface {
	Get(id model.ID) (model.Point, bool)
}

// PathBuilder classifies a path's resolved coordinates as a point, line,
// ring or area.
type PathBuilder struct {
	// BoundaryKeys keep closed paths carrying any of these tag keys as a
	// geometry.Ring instead of a geometry.Area.
	BoundaryKeys []string
}

// Build resolves ids against points in order and classifies the result:
//   - more than three positions with coinciding ends is an Area, or a Ring
//     when tags hold one of the boundary keys;
//   - more than one position is a Line;
//   - a single position is a Point.
//
// A reference to an unknown point fails the whole path with ErrUnknownPoint.
func (b PathBuilder) Build(ids []model.ID, tags map[string]string, points PointLookup) (geometry.Geometry, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyPath
	}

	coords := make([]geometry.Coord, len(ids))

	for i, id := range ids {
		p, ok := points.Get(id)
		if !ok {
			return nil, &UnknownPointError{Point: id}
		}

		coords[i] = p.Coord
	}

	switch {
	case len(coords) > 3 && geometry.IsClosed(coords):
		ring := geometry.Ring{Coords: coords}
		if b.isBoundary(tags) {
			return ring, nil
		}

		return geometry.Area{Shell: ring}, nil
	case len(coords) > 1:
		return geometry.Line{Coords: coords}, nil
	default:
		return geometry.Point{Coord: coords[0]}, nil
	}
}

func (b PathBuilder) isBoundary(tags map[string]string) bool {
	for _, k := range b.BoundaryKeys {
		if _, ok := tags[k]; ok {
			return true
		}
	}

	return false
}
