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

// Package feed reads OSM XML and PBF documents and feeds their entities to
// a Handler in stream order.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/osm"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/model"
)

// Handler receives the entities of a document.  osmgeom.Engine is a
// Handler.
type Handler interface {
	OnPoint(id model.ID, x, y float64, tags map[string]string) error
	OnPath(id model.ID, pointIDs []model.ID, tags map[string]string) error
	OnComposite(id model.ID, members []model.Member, tags map[string]string) error
	OnEndOfStream()
}

var _ Handler = (*osmgeom.Engine)(nil)

// Run scans s to its end, handing nodes to OnPoint, ways to OnPath and
// relations to OnComposite.  OnEndOfStream is called once scanning stops,
// even when it stops on an error, so that a truncated document still has
// its deferred composites resolved.  The scanner error, if any, is
// returned afterwards.
//
// Errors returned by the handler for single entities do not stop the run.
func Run(ctx context.Context, s osm.Scanner, h Handler) error {
	err := scan(ctx, s, h)

	h.OnEndOfStream()

	return err
}

func scan(ctx context.Context, s osm.Scanner, h Handler) error {
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error

		switch o := s.Object().(type) {
		case *osm.Node:
			err = h.OnPoint(nodeID(o.ID), o.Lon, o.Lat, o.Tags.Map())
		case *osm.Way:
			err = h.OnPath(model.ID(strconv.FormatInt(int64(o.ID), 10)), wayNodes(o.Nodes), o.Tags.Map())
		case *osm.Relation:
			err = h.OnComposite(model.ID(strconv.FormatInt(int64(o.ID), 10)), members(o.Members), o.Tags.Map())
		}

		if errors.Is(err, osmgeom.ErrEngineClosed) {
			return err
		}
	}

	if err := s.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("scan error: %w", err)
	}

	return nil
}

func nodeID(id osm.NodeID) model.ID {
	return model.ID(strconv.FormatInt(int64(id), 10))
}

func wayNodes(nodes osm.WayNodes) []model.ID {
	ids := make([]model.ID, len(nodes))
	for i, n := range nodes {
		ids[i] = nodeID(n.ID)
	}

	return ids
}

func members(ms osm.Members) []model.Member {
	out := make([]model.Member, len(ms))
	for i, m := range ms {
		out[i] = model.Member{
			ID:   model.ID(strconv.FormatInt(m.Ref, 10)),
			Type: memberType(m.Type),
			Role: m.Role,
		}
	}

	return out
}

func memberType(t osm.Type) model.EntityType {
	switch t {
	case osm.TypeNode:
		return model.POINT
	case osm.TypeWay:
		return model.PATH
	case osm.TypeRelation:
		return model.COMPOSITE
	default:
		return model.ANY
	}
}
