// Copyright 2016-2020, Pulumi Corporation.
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

package mutability

import (
	"fmt"
)

// CheckInvariants verifies the structural invariants that must hold between public operations.
func (t *Table[V]) CheckInvariants() error {
	if len(t.frames) == 0 {
		return fmt.Errorf("scope stack is empty")
	}

	listed := map[string]int{}
	for depth, frame := range t.frames {
		for _, name := range frame {
			if prev, ok := listed[name]; ok {
				return fmt.Errorf("%q listed by frames %d and %d", name, prev, depth)
			}
			listed[name] = depth

			b, ok := t.bindings[name]
			if !ok {
				return fmt.Errorf("%q listed by frame %d has no binding", name, depth)
			}
			if b.ScopeLevel != depth {
				return fmt.Errorf("%q has scope level %d but is listed by frame %d", name, b.ScopeLevel, depth)
			}
			if b.Name != name {
				return fmt.Errorf("binding keyed %q is named %q", name, b.Name)
			}
		}
	}
	for name := range t.bindings {
		if _, ok := listed[name]; !ok {
			return fmt.Errorf("%q is bound but listed by no frame", name)
		}
	}
	return nil
}

// state is a comparable copy of a table, used to check that failed operations leave tables untouched.
type state[V any] struct {
	Bindings []Binding[V]
	Frames   [][]string
}

func (t *Table[V]) snapshot() state[V] {
	s := state[V]{Bindings: t.Bindings()}
	for depth := range t.frames {
		s.Frames = append(s.Frames, t.Frame(depth))
	}
	return s
}
