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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertKind(t *testing.T, kind ErrorKind, name string, err error) {
	t.Helper()

	e, ok := AsError(err)
	if assert.True(t, ok, "expected *Error, got %v", err) {
		assert.Equal(t, kind, e.Kind)
		assert.Equal(t, name, e.Name)
	}
}

func TestImmutableRejectsUpdate(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareImmutable("x", "5"))

	err := tab.Update("x", "10")
	assertKind(t, CannotMutateImmutable, "x", err)

	v, ok := tab.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "5", v)
	assert.True(t, tab.IsImmutable("x"))
	assert.False(t, tab.IsMutable("x"))
}

func TestMutableAcceptsUpdate(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareMutable("y", "10"))
	require.NoError(t, tab.Update("y", "20"))

	v, ok := tab.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, "20", v)
	assert.True(t, tab.IsMutable("y"))
	assert.False(t, tab.IsImmutable("y"))

	b, ok := tab.Binding("y")
	assert.True(t, ok)
	assert.Equal(t, Mutable, b.Mutability)
	assert.Equal(t, 0, b.ScopeLevel)
}

func TestExitScopeReleasesInnerBindings(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareImmutable("x", "global"))

	tab.EnterScope()
	assert.Equal(t, 1, tab.Depth())
	require.NoError(t, tab.DeclareMutable("y", "inner"))

	v, ok := tab.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "global", v)
	v, ok = tab.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, "inner", v)

	b, _ := tab.Binding("y")
	assert.Equal(t, 1, b.ScopeLevel)

	tab.ExitScope()
	assert.Equal(t, 0, tab.Depth())

	_, ok = tab.Lookup("y")
	assert.False(t, ok)
	v, ok = tab.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "global", v)
	assert.NoError(t, tab.CheckInvariants())
}

func TestDeclareRejectsNameLiveInOuterScope(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareImmutable("x", "1"))

	tab.EnterScope()
	err := tab.DeclareMutable("x", "2")
	assertKind(t, VariableAlreadyExists, "x", err)

	v, ok := tab.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.True(t, tab.IsImmutable("x"))
	assert.Empty(t, tab.Frame(1))
}

func TestUnknownNames(t *testing.T) {
	tab := NewTable[string]()

	err := tab.Update("z", "0")
	assertKind(t, VariableNotFound, "z", err)
	assert.False(t, tab.IsMutable("z"))
	assert.False(t, tab.IsImmutable("z"))

	_, ok := tab.Lookup("z")
	assert.False(t, ok)
	_, ok = tab.Mutability("z")
	assert.False(t, ok)
}

func TestExitOutermostScopeIsNoop(t *testing.T) {
	tab := NewTable[string]()
	tab.ExitScope()
	assert.Equal(t, 0, tab.Depth())

	require.NoError(t, tab.DeclareImmutable("a", "1"))
	tab.ExitScope()

	v, ok := tab.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestNameIsReusableAfterItsScopeExits(t *testing.T) {
	tab := NewTable[int]()
	tab.EnterScope()
	require.NoError(t, tab.DeclareImmutable("i", 1))
	tab.ExitScope()

	tab.EnterScope()
	tab.EnterScope()
	require.NoError(t, tab.DeclareMutable("i", 2))
	b, ok := tab.Binding("i")
	assert.True(t, ok)
	assert.Equal(t, 2, b.ScopeLevel)
	assert.Equal(t, 2, b.Value)
}

func TestBindingsOrderedByScopeThenDeclaration(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareMutable("b", "1"))
	require.NoError(t, tab.DeclareImmutable("a", "2"))
	tab.EnterScope()
	require.NoError(t, tab.DeclareImmutable("c", "3"))

	var names []string
	for _, b := range tab.Bindings() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{"b", "a"}, tab.Frame(0))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Variable not found: n", notFound("n").Error())
	assert.Equal(t, "Variable already exists: n", alreadyExists("n").Error())
	assert.Equal(t, "Cannot mutate immutable variable: n", cannotMutate("n").Error())
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	err := errors.Wrap(cannotMutate("q"), "evaluating set")
	assert.True(t, IsCannotMutateImmutable(err))
	assert.False(t, IsVariableNotFound(err))
	assert.False(t, IsVariableAlreadyExists(err))
	assert.False(t, IsVariableNotFound(nil))
	assert.False(t, IsVariableNotFound(errors.New("plain")))
}

func TestEmptyNamePanics(t *testing.T) {
	tab := NewTable[string]()
	assert.Panics(t, func() {
		_ = tab.DeclareMutable("", "v")
	})
}
