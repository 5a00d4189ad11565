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
	"github.com/mbovo/mutscope/pkg/util/contract"
)

// Table is a scoped symbol table whose bindings carry a Mutability tag.
type Table[V any] struct {
	bindings map[string]*Binding[V]
	// frames[i] lists the names introduced while depth i was the top frame, in declaration order.
	frames [][]string
}

// NewTable returns an empty table positioned in its outermost frame.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		bindings: map[string]*Binding[V]{},
		frames:   [][]string{nil},
	}
}

// Depth returns the index of the top frame. The outermost frame is depth 0.
func (t *Table[V]) Depth() int {
	return len(t.frames) - 1
}

// Len returns the number of live bindings.
func (t *Table[V]) Len() int {
	return len(t.bindings)
}

// EnterScope pushes a new, empty frame.
func (t *Table[V]) EnterScope() {
	t.frames = append(t.frames, nil)
}

// ExitScope pops the top frame and releases every binding it introduced. Exiting the outermost frame does nothing.
func (t *Table[V]) ExitScope() {
	if t.Depth() == 0 {
		return
	}

	top := t.frames[len(t.frames)-1]
	for _, name := range top {
		delete(t.bindings, name)
	}
	t.frames[len(t.frames)-1] = nil
	t.frames = t.frames[:len(t.frames)-1]
}

// DeclareImmutable introduces an immutable binding in the top frame.
func (t *Table[V]) DeclareImmutable(name string, value V) error {
	return t.Declare(name, value, Immutable)
}

// DeclareMutable introduces a mutable binding in the top frame.
func (t *Table[V]) DeclareMutable(name string, value V) error {
	return t.Declare(name, value, Mutable)
}

// Declare introduces a binding with the given mutability in the top frame. It fails with VariableAlreadyExists if the
// name is live in any frame, not just the top one.
func (t *Table[V]) Declare(name string, value V, mutability Mutability) error {
	contract.Require(name != "", "name")
	contract.Requiref(mutability == Immutable || mutability == Mutable, "mutability", "unknown mutability %d",
		int(mutability))

	if _, exists := t.bindings[name]; exists {
		return alreadyExists(name)
	}

	depth := t.Depth()
	t.bindings[name] = &Binding[V]{
		Name:       name,
		Value:      value,
		Mutability: mutability,
		ScopeLevel: depth,
	}
	t.frames[depth] = append(t.frames[depth], name)
	return nil
}

// Update replaces the value of a live mutable binding.
func (t *Table[V]) Update(name string, value V) error {
	b, ok := t.bindings[name]
	if !ok {
		return notFound(name)
	}
	if b.Mutability != Mutable {
		return cannotMutate(name)
	}
	b.Value = value
	return nil
}

// Lookup returns the value bound to name, if the name is live.
func (t *Table[V]) Lookup(name string) (V, bool) {
	if b, ok := t.bindings[name]; ok {
		return b.Value, true
	}
	var zero V
	return zero, false
}

// Mutability returns the mutability of the binding for name, if the name is live.
func (t *Table[V]) Mutability(name string) (Mutability, bool) {
	if b, ok := t.bindings[name]; ok {
		return b.Mutability, true
	}
	return 0, false
}

// IsMutable returns true if name is live and mutable.
func (t *Table[V]) IsMutable(name string) bool {
	m, ok := t.Mutability(name)
	return ok && m == Mutable
}

// IsImmutable returns true if name is live and immutable. Unknown names are neither mutable nor immutable.
func (t *Table[V]) IsImmutable(name string) bool {
	m, ok := t.Mutability(name)
	return ok && m == Immutable
}

// Binding returns a copy of the live binding for name.
func (t *Table[V]) Binding(name string) (Binding[V], bool) {
	if b, ok := t.bindings[name]; ok {
		return *b, true
	}
	return Binding[V]{}, false
}

// Bindings returns copies of all live bindings ordered by scope level, then by declaration order within a level.
func (t *Table[V]) Bindings() []Binding[V] {
	result := make([]Binding[V], 0, len(t.bindings))
	for _, frame := range t.frames {
		for _, name := range frame {
			result = append(result, *t.bindings[name])
		}
	}
	return result
}

// Frame returns the names introduced by the frame at the given depth, in declaration order.
func (t *Table[V]) Frame(depth int) []string {
	contract.Requiref(depth >= 0 && depth <= t.Depth(), "depth", "%d is outside [0, %d]", depth, t.Depth())

	names := make([]string, len(t.frames[depth]))
	copy(names, t.frames[depth])
	return names
}
