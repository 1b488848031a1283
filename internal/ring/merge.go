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

// Package ring merges polyline fragments that share end points into maximal
// polylines and promotes the closed ones to rings.
package ring

import (
	"cmp"
	"slices"

	"m4o.io/osmgeom/geometry"
)

// incidence is one end of an edge touching a node.
type incidence struct {
	edge    int
	atStart bool
}

type graph struct {
	edges   [][]geometry.Coord
	nodes   map[geometry.Coord][]incidence
	visited []bool
}

// Merge joins fragments sharing end points, transitively and regardless of
// direction, into maximal polylines.  Each fragment is an edge of an
// undirected multigraph over end point coordinates; paths are walked through
// nodes of degree two and stop at nodes of any other degree.  A merged
// polyline whose end points coincide is returned as a geometry.Ring, any
// other as a geometry.Line.
//
// The result depends only on the set of fragments, never on their order:
// fragments are normalized and sorted before the graph is built.
// Fragments of fewer than two positions are ignored.
func Merge(fragments []geometry.Line) []geometry.Geometry {
	g := newGraph(fragments)
	if len(g.edges) == 0 {
		return nil
	}

	var merged [][]geometry.Coord

	// open paths start and end at nodes whose degree is not two
	for _, node := range g.sortedNodes() {
		incs := g.nodes[node]
		if len(incs) == 2 {
			continue
		}

		for _, inc := range incs {
			if !g.visited[inc.edge] {
				merged = append(merged, g.walk(inc))
			}
		}
	}

	// whatever is left is made of cycles
	for e := range g.edges {
		if !g.visited[e] {
			merged = append(merged, g.walk(incidence{edge: e, atStart: true}))
		}
	}

	out := make([]geometry.Geometry, 0, len(merged))

	for _, coords := range merged {
		if r, ok := geometry.NewRing(coords); ok {
			out = append(out, r)
		} else {
			out = append(out, geometry.Line{Coords: coords})
		}
	}

	return out
}

func newGraph(fragments []geometry.Line) *graph {
	edges := make([][]geometry.Coord, 0, len(fragments))

	for _, f := range fragments {
		if len(f.Coords) < 2 {
			continue
		}

		edges = append(edges, normalize(f.Coords))
	}

	slices.SortFunc(edges, compareCoords)

	g := &graph{
		edges:   edges,
		nodes:   make(map[geometry.Coord][]incidence),
		visited: make([]bool, len(edges)),
	}

	for i, e := range edges {
		first, last := e[0], e[len(e)-1]
		g.nodes[first] = append(g.nodes[first], incidence{edge: i, atStart: true})
		g.nodes[last] = append(g.nodes[last], incidence{edge: i, atStart: false})
	}

	return g
}

func (g *graph) sortedNodes() []geometry.Coord {
	nodes := make([]geometry.Coord, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}

	slices.SortFunc(nodes, compareCoord)

	return nodes
}

// walk follows edges from the node at inc through degree two nodes until it
// reaches a node of another degree or runs out of unvisited edges.
func (g *graph) walk(inc incidence) []geometry.Coord {
	coords := g.take(nil, inc)

	for {
		node := coords[len(coords)-1]

		incs := g.nodes[node]
		if len(incs) != 2 {
			return coords
		}

		next, ok := g.unvisited(incs)
		if !ok {
			return coords
		}

		coords = g.take(coords, next)
	}
}

// take marks the edge of inc visited and appends its positions, oriented
// away from the node at inc, to coords.  The shared junction position is
// not repeated.
func (g *graph) take(coords []geometry.Coord, inc incidence) []geometry.Coord {
	g.visited[inc.edge] = true

	e := g.edges[inc.edge]

	start := 0
	if len(coords) > 0 {
		start = 1
	}

	if inc.atStart {
		return append(coords, e[start:]...)
	}

	for i := len(e) - 1 - start; i >= 0; i-- {
		coords = append(coords, e[i])
	}

	return coords
}

func (g *graph) unvisited(incs []incidence) (incidence, bool) {
	for _, inc := range incs {
		if !g.visited[inc.edge] {
			return inc, true
		}
	}

	return incidence{}, false
}

// normalize returns a copy of coords in whichever direction compares
// lower.
func normalize(coords []geometry.Coord) []geometry.Coord {
	rev := slices.Clone(coords)
	slices.Reverse(rev)

	if compareCoords(rev, coords) < 0 {
		return rev
	}

	return slices.Clone(coords)
}

func compareCoord(a, b geometry.Coord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}

	return cmp.Compare(a.Y, b.Y)
}

func compareCoords(a, b []geometry.Coord) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := compareCoord(a[i], b[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(len(a), len(b))
}
