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

package geometry

import (
	"errors"
	"fmt"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrNilGeometry is returned when a nil geometry is converted.
var ErrNilGeometry = errors.New("nil geometry")

// ToGeom converts g into its go-geom representation.  Rings become closed
// line strings since LINEARRING is not a standalone OGC type.
func ToGeom(g Geometry) (geom.T, error) {
	switch g := g.(type) {
	case nil:
		return nil, ErrNilGeometry
	case Point:
		return geom.NewPointFlat(geom.XY, []float64{g.Coord.X, g.Coord.Y}), nil
	case Line:
		return geom.NewLineStringFlat(geom.XY, flatten(nil, g.Coords)), nil
	case Ring:
		return geom.NewLineStringFlat(geom.XY, flatten(nil, g.Coords)), nil
	case Area:
		flat, ends := flattenArea(nil, nil, g)
		return geom.NewPolygonFlat(geom.XY, flat, ends), nil
	case MultiLine:
		var (
			flat []float64
			ends []int
		)

		for _, l := range g.Lines {
			flat = flatten(flat, l.Coords)
			ends = append(ends, len(flat))
		}

		return geom.NewMultiLineStringFlat(geom.XY, flat, ends), nil
	case MultiArea:
		var (
			flat  []float64
			endss [][]int
		)

		for _, a := range g.Areas {
			var ends []int
			flat, ends = flattenArea(flat, nil, a)
			endss = append(endss, ends)
		}

		return geom.NewMultiPolygonFlat(geom.XY, flat, endss), nil
	case Collection:
		gc := geom.NewGeometryCollection()

		for _, m := range g.Geometries {
			t, err := ToGeom(m)
			if err != nil {
				return nil, err
			}

			if err := gc.Push(t); err != nil {
				return nil, fmt.Errorf("unable to build collection: %w", err)
			}
		}

		return gc, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

// WKT renders g as well-known text.
func WKT(g Geometry) (string, error) {
	t, err := ToGeom(g)
	if err != nil {
		return "", err
	}

	return wkt.Marshal(t)
}

// flattenArea appends the shell and holes of a to flat, recording the end
// offset of every ring.
func flattenArea(flat []float64, ends []int, a Area) ([]float64, []int) {
	flat = flatten(flat, a.Shell.Coords)
	ends = append(ends, len(flat))

	for _, h := range a.Holes {
		flat = flatten(flat, h.Coords)
		ends = append(ends, len(flat))
	}

	return flat, ends
}

func flatten(flat []float64, coords []Coord) []float64 {
	for _, c := range coords {
		flat = append(flat, c.X, c.Y)
	}

	return flat
}
