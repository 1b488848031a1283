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

// Package emit writes reconstructed features as GeoJSON, WKT or PostGIS
// rows.
package emit

import (
	"bufio"
	"context"
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/geometry"
)

// GeoJSON writes one GeoJSON feature per line.
type GeoJSON struct {
	w *bufio.Writer
}

var _ osmgeom.Emitter = (*GeoJSON)(nil)

// NewGeoJSON returns a GeoJSON emitter writing to w.  Flush must be called
// once every feature is emitted.
func NewGeoJSON(w io.Writer) *GeoJSON {
	return &GeoJSON{w: bufio.NewWriter(w)}
}

// Emit writes f as a single line.
func (e *GeoJSON) Emit(_ context.Context, f osmgeom.Feature) error {
	g, err := toGeoJSON(f.Geometry)
	if err != nil {
		return fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	gf := geojson.NewFeature(g)
	gf.ID = ref(f)
	gf.SetProperty("kind", f.Kind.String())
	gf.SetProperty("id", string(f.ID))

	if f.Name != "" {
		gf.SetProperty("name", f.Name)
	}

	if f.Type != "" {
		gf.SetProperty("type", f.Type)
	}

	if f.Category != "" {
		gf.SetProperty("category", string(f.Category))
	}

	if len(f.Tags) > 0 {
		gf.SetProperty("tags", f.Tags)
	}

	b, err := gf.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%s %s: %w", f.Kind, f.ID, err)
	}

	if _, err = e.w.Write(b); err != nil {
		return err
	}

	return e.w.WriteByte('\n')
}

// Flush writes any buffered output.
func (e *GeoJSON) Flush() error {
	return e.w.Flush()
}

func toGeoJSON(g geometry.Geometry) (*geojson.Geometry, error) {
	switch g := g.(type) {
	case nil:
		return nil, geometry.ErrNilGeometry
	case geometry.Point:
		return geojson.NewPointGeometry(position(g.Coord)), nil
	case geometry.Line:
		return geojson.NewLineStringGeometry(positions(g.Coords)), nil
	case geometry.Ring:
		return geojson.NewLineStringGeometry(positions(g.Coords)), nil
	case geometry.Area:
		return geojson.NewPolygonGeometry(polygon(g)), nil
	case geometry.MultiLine:
		lines := make([][][]float64, len(g.Lines))
		for i, l := range g.Lines {
			lines[i] = positions(l.Coords)
		}

		return geojson.NewMultiLineStringGeometry(lines...), nil
	case geometry.MultiArea:
		polys := make([][][][]float64, len(g.Areas))
		for i, a := range g.Areas {
			polys[i] = polygon(a)
		}

		return geojson.NewMultiPolygonGeometry(polys...), nil
	case geometry.Collection:
		members := make([]*geojson.Geometry, len(g.Geometries))
		for i, m := range g.Geometries {
			gm, err := toGeoJSON(m)
			if err != nil {
				return nil, err
			}

			members[i] = gm
		}

		return geojson.NewCollectionGeometry(members...), nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

func position(c geometry.Coord) []float64 {
	return []float64{c.X, c.Y}
}

func positions(coords []geometry.Coord) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = position(c)
	}

	return out
}

func polygon(a geometry.Area) [][][]float64 {
	rings := make([][][]float64, 0, 1+len(a.Holes))
	rings = append(rings, positions(a.Shell.Coords))

	for _, h := range a.Holes {
		rings = append(rings, positions(h.Coords))
	}

	return rings
}

// ref is the kind qualified id of f, since ids are only unique per kind.
func ref(f osmgeom.Feature) string {
	return fmt.Sprintf("%s/%s", f.Kind, f.ID)
}
