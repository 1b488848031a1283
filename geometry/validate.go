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
	"fmt"

	sf "github.com/peterstace/simplefeatures/geom"
)

// Validate returns an error when g breaks the OGC simple feature validity
// rules, such as a self-intersecting ring.  simplefeatures validates the
// geometry while parsing its WKT.
func Validate(g Geometry) error {
	if g == nil {
		return ErrNilGeometry
	}

	text, err := WKT(g)
	if err != nil {
		return err
	}

	if _, err := sf.UnmarshalWKT(text); err != nil {
		return fmt.Errorf("invalid %s: %w", g.Shape(), err)
	}

	return nil
}
