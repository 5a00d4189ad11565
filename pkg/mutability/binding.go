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

// Package mutability implements a scoped symbol table that tags each binding as immutable or mutable and refuses
// writes to immutable bindings.
//
// A Table owns a flat map from name to Binding plus a stack of frames recording which names each scope introduced.
// Names are unique across the whole table: declaring a name that is live in any frame fails, so inner scopes cannot
// shadow outer bindings. Exiting a scope removes every binding that scope introduced; the outermost frame can never be
// exited.
//
// Tables are not safe for concurrent use.
package mutability

// Mutability classifies a binding as writable or not.
type Mutability int

const (
	// Immutable bindings keep the value they were declared with until their frame is popped.
	Immutable Mutability = iota
	// Mutable bindings may be updated any number of times while live.
	Mutable
)

func (m Mutability) String() string {
	switch m {
	case Immutable:
		return "immutable"
	case Mutable:
		return "mutable"
	default:
		return "unknown"
	}
}

// Binding is a single live entry in a Table.
type Binding[V any] struct {
	Name       string
	Value      V
	Mutability Mutability
	// ScopeLevel is the depth of the frame that introduced the binding. Zero is the outermost frame.
	ScopeLevel int
}

// IsMutable returns true if the binding may be updated.
func (b Binding[V]) IsMutable() bool {
	return b.Mutability == Mutable
}
