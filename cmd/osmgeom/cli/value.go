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

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// -- one-of string Value
type choiceValue struct {
	value    *string
	choices  []string
	typename string
}

// NewChoiceValue creates a cobra Value object for a string restricted to
// choices, compared without regard to case.
func NewChoiceValue(def string, p *string, typename string, choices ...string) pflag.Value {
	cv := &choiceValue{
		value:    p,
		choices:  choices,
		typename: typename,
	}
	*cv.value = def

	return cv
}

func (c *choiceValue) Set(val string) error {
	v := strings.ToLower(val)
	if !slices.Contains(c.choices, v) {
		return fmt.Errorf("must be one of %s", strings.Join(c.choices, ", "))
	}

	*c.value = v

	return nil
}

func (c *choiceValue) Type() string {
	return c.typename
}

func (c *choiceValue) String() string {
	if c.value == nil {
		return ""
	}

	return *c.value
}
