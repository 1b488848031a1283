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

package osmgeom

// Stats counts what an Engine did with its input.
type Stats struct {
	Points       int `json:"points"`        // points indexed
	Paths        int `json:"paths"`         // paths indexed
	SkippedPaths int `json:"skipped_paths"` // paths skipped for unknown points

	Composites       int `json:"composites"`        // composites fed
	Resolved         int `json:"resolved"`          // composites resolved on arrival
	Deferred         int `json:"deferred"`          // composites deferred to the end of the stream
	ResolvedDeferred int `json:"resolved_deferred"` // deferred composites resolved at the end of the stream
	Unresolved       int `json:"unresolved"`        // composites without a geometry
	Invalid          int `json:"invalid"`           // resolved composites failing the validity check
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Points:           s.Points + o.Points,
		Paths:            s.Paths + o.Paths,
		SkippedPaths:     s.SkippedPaths + o.SkippedPaths,
		Composites:       s.Composites + o.Composites,
		Resolved:         s.Resolved + o.Resolved,
		Deferred:         s.Deferred + o.Deferred,
		ResolvedDeferred: s.ResolvedDeferred + o.ResolvedDeferred,
		Unresolved:       s.Unresolved + o.Unresolved,
		Invalid:          s.Invalid + o.Invalid,
	}
}
