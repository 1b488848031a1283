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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmgeom/geometry"
	"m4o.io/osmgeom/model"
)

func TestEntities(t *testing.T) {
	line := geometry.Line{Coords: []geometry.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}}

	test_cases := []struct {
		entity   model.Entity
		typ      model.EntityType
		geometry geometry.Geometry
	}{
		{model.Point{ID: "1", Coord: geometry.Coord{X: 2, Y: 3}}, model.POINT, geometry.Point{Coord: geometry.Coord{X: 2, Y: 3}}},
		{model.Path{ID: "1", PointIDs: []model.ID{"1", "2"}, Geometry: line}, model.PATH, line},
		{model.Composite{ID: "1"}, model.COMPOSITE, nil},
	}

	for _, tc := range test_cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			assert.Equal(t, model.ID("1"), tc.entity.GetID())
			assert.Equal(t, tc.typ, tc.entity.GetType())
			assert.Equal(t, tc.geometry, tc.entity.GetGeometry())
		})
	}
}

func TestEntityTypeString(t *testing.T) {
	assert.Equal(t, "POINT", model.POINT.String())
	assert.Equal(t, "PATH", model.PATH.String())
	assert.Equal(t, "COMPOSITE", model.COMPOSITE.String())
	assert.Equal(t, "ANY", model.ANY.String())
	assert.Equal(t, "EntityType(9)", model.EntityType(9).String())
}

func TestTags(t *testing.T) {
	tags := map[string]string{"name": "Library"}

	assert.Equal(t, tags, model.Point{Tags: tags}.GetTags())
	assert.Equal(t, tags, model.Path{Tags: tags}.GetTags())
	assert.Equal(t, tags, model.Composite{Tags: tags}.GetTags())
}
