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

package osmgeom_test

import (
	"context"
	"fmt"
	"log"

	"m4o.io/osmgeom"
	"m4o.io/osmgeom/model"
)

func Example() {
	e := osmgeom.NewEngine()

	corners := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	for i, c := range corners {
		if err := e.OnPoint(model.ID(fmt.Sprint(i+1)), c[0], c[1], nil); err != nil {
			log.Fatal(err)
		}
	}

	if err := e.OnPath("10", []model.ID{"1", "2", "3", "4", "1"}, map[string]string{"building": "yes", "name": "Shed"}); err != nil {
		log.Fatal(err)
	}

	e.OnEndOfStream()

	err := e.Emit(context.Background(), osmgeom.EmitterFunc(func(_ context.Context, f osmgeom.Feature) error {
		fmt.Printf("%s %s %q %s %s\n", f.Kind, f.ID, f.Name, f.Category, f.Geometry.Shape())

		return nil
	}), osmgeom.WithNamedOnly(), osmgeom.WithClassifier(osmgeom.KeyClassifier("amenity", "building")))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Points: %d, Paths: %d, Composites: %d\n", e.Stats().Points, e.Stats().Paths, e.Stats().Composites)
	// Output:
	// PATH 10 "Shed" building=yes AREA
	// Points: 4, Paths: 1, Composites: 0
}
