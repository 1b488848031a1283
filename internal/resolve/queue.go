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
	"m4o.io/osmgeom/model"
)

// Queue is the ordered worklist of composites whose first resolution
// attempt was deferred.  A composite is queued at most once.
type Queue struct {
	pending []model.Composite
	queued  map[model.ID]struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{queued: make(map[model.ID]struct{})}
}

// Push appends c unless a composite with the same ID was queued before.  It
// reports whether c was added.
func (q *Queue) Push(c model.Composite) bool {
	if q.Contains(c.ID) {
		return false
	}

	q.queued[c.ID] = struct{}{}
	q.pending = append(q.pending, c)

	return true
}

// Contains reports whether a composite with id has been queued.
func (q *Queue) Contains(id model.ID) bool {
	_, ok := q.queued[id]

	return ok
}

// Len returns the number of composites still pending.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Pending returns the IDs still pending, in queue order.
func (q *Queue) Pending() []model.ID {
	ids := make([]model.ID, len(q.pending))
	for i, c := range q.pending {
		ids[i] = c.ID
	}

	return ids
}

// Drain visits every pending composite once, in FIFO order.  Composites for
// which fn returns true are removed; the others stay pending and remain
// marked as queued.
func (q *Queue) Drain(fn func(c model.Composite) bool) {
	retained := q.pending[:0:0]

	for _, c := range q.pending {
		if !fn(c) {
			retained = append(retained, c)
		}
	}

	q.pending = retained
}
