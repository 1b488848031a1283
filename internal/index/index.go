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

// Package index provides the append-only maps the reconstruction engine
// resolves references against.
package index

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrDuplicateKey is returned when a key is written a second time.
var ErrDuplicateKey = errors.New("duplicate key")

// Index is an append-only map.  A key, once written, is never overwritten or
// removed, so values read from an Index stay valid for the life of the run.
// Iteration follows insertion order.  The zero value is not usable; use New.
type Index[K constraints.Ordered, V any] struct {
	values map[K]V
	order  []K
}

// New creates an empty Index.
func New[K constraints.Ordered, V any]() *Index[K, V] {
	return &Index[K, V]{values: make(map[K]V)}
}

// Put stores v under k.  It returns ErrDuplicateKey, leaving the existing
// value untouched, if k is already present.
func (x *Index[K, V]) Put(k K, v V) error {
	if _, ok := x.values[k]; ok {
		return ErrDuplicateKey
	}

	x.values[k] = v
	x.order = append(x.order, k)

	return nil
}

// Get returns the value stored under k.
func (x *Index[K, V]) Get(k K) (V, bool) {
	v, ok := x.values[k]

	return v, ok
}

// Has reports whether k is present.
func (x *Index[K, V]) Has(k K) bool {
	_, ok := x.values[k]

	return ok
}

// Len returns the number of keys.
func (x *Index[K, V]) Len() int {
	return len(x.order)
}

// All calls yield for every entry in insertion order until yield returns
// false.
func (x *Index[K, V]) All(yield func(K, V) bool) {
	for _, k := range x.order {
		if !yield(k, x.values[k]) {
			return
		}
	}
}
