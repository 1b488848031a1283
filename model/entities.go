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

// Package model contains the entities fed to and produced by the topology
// reconstruction engine.
package model

//go:generate stringer -type=EntityType

import (
	"m4o.io/osmgeom/geometry"
)

// Entity is implemented by Point, Path and Composite.
type Entity interface {
	isEntity() // prevents extensions

	GetID() ID

	GetType() EntityType

	GetTags() map[string]string

	// GetGeometry returns the reconstructed geometry, or nil while the
	// entity is unresolved.
	GetGeometry() geometry.Geometry
}

// ID is the primary key of an entity.  IDs are unique per EntityType.
type ID string

// Point is a single coordinate location with tags.
type Point struct {
	ID    ID
	Tags  map[string]string
	Coord geometry.Coord
}

var _ Entity = Point{}

func (p Point) isEntity() {}

func (p Point) GetID() ID {
	return p.ID
}

func (p Point) GetType() EntityType {
	return POINT
}

func (p Point) GetTags() map[string]string {
	return p.Tags
}

func (p Point) GetGeometry() geometry.Geometry {
	return geometry.Point{Coord: p.Coord}
}

// Path is an ordered chain of point references.  Its geometry is computed
// once every referenced point is known.
type Path struct {
	ID       ID
	Tags     map[string]string
	PointIDs []ID
	Geometry geometry.Geometry
}

var _ Entity = Path{}

func (w Path) isEntity() {}

func (w Path) GetID() ID {
	return w.ID
}

func (w Path) GetType() EntityType {
	return PATH
}

func (w Path) GetTags() map[string]string {
	return w.Tags
}

func (w Path) GetGeometry() geometry.Geometry {
	return w.Geometry
}

// EntityType is an enumeration of entity types.
type EntityType int32

const (
	// POINT denotes that the member is a point.
	POINT EntityType = iota

	// PATH denotes that the member is a path.
	PATH

	// COMPOSITE denotes that the member is a composite.
	COMPOSITE

	// ANY denotes a member whose type was not declared.
	ANY
)

// Member is a reference from a composite to another entity.  Role is empty
// when none was declared.
type Member struct {
	ID   ID
	Type EntityType
	Role string
}

// Composite is an entity defined purely by references to points, paths or
// other composites.
type Composite struct {
	ID       ID
	Tags     map[string]string
	Members  []Member
	Geometry geometry.Geometry
}

var _ Entity = Composite{}

func (r Composite) isEntity() {}

func (r Composite) GetID() ID {
	return r.ID
}

func (r Composite) GetType() EntityType {
	return COMPOSITE
}

func (r Composite) GetTags() map[string]string {
	return r.Tags
}

func (r Composite) GetGeometry() geometry.Geometry {
	return r.Geometry
}
