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

// Location is the position of a coordinate relative to a ring.
type Location int

const (
	// Outside means the coordinate lies outside the ring.
	Outside Location = iota

	// Boundary means the coordinate lies on one of the ring's segments.
	Boundary

	// Inside means the coordinate lies strictly inside the ring.
	Inside
)

// Locate classifies c against the ring using the even-odd rule.  Points on
// a segment are reported as Boundary.
func (r Ring) Locate(c Coord) Location {
	n := len(r.Coords)
	if n < MinRingCoords {
		return Outside
	}

	if !r.Bound().ContainsPoint(c) {
		return Outside
	}

	inside := false

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r.Coords[j], r.Coords[i]

		if onSegment(c, a, b) {
			return Boundary
		}

		if (b.Y > c.Y) != (a.Y > c.Y) {
			x := a.X + (c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if c.X < x {
				inside = !inside
			}
		}
	}

	if inside {
		return Inside
	}

	return Outside
}

// ContainsRing reports whether every position of o lies inside or on r and
// o is not entirely on the boundary of r.  When all vertices touch the
// boundary the midpoint of each of o's segments decides.
func (r Ring) ContainsRing(o Ring) bool {
	if !r.Bound().Contains(o.Bound()) {
		return false
	}

	interior := false

	for _, c := range o.Coords {
		switch r.Locate(c) {
		case Outside:
			return false
		case Inside:
			interior = true
		}
	}

	if interior {
		return true
	}

	for i := 1; i < len(o.Coords); i++ {
		a, b := o.Coords[i-1], o.Coords[i]
		switch r.Locate(Coord{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}) {
		case Outside:
			return false
		case Inside:
			return true
		}
	}

	return false
}

// onSegment reports whether c lies on the closed segment a-b.
func onSegment(c, a, b Coord) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross != 0 {
		return false
	}

	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}
