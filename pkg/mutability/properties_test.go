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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyNames = []string{"a", "b", "c", "d", "e", "f"}

// runRandomOps drives a table through a deterministic pseudo-random sequence of operations, checking the table's
// invariants and the write policy after every step.
func runRandomOps(t *testing.T, seed int64, steps int) {
	r := rand.New(rand.NewSource(seed))
	tab := NewTable[string]()

	// Expected values of live immutable bindings, keyed by name.
	frozen := map[string]string{}

	for i := 0; i < steps; i++ {
		name := propertyNames[r.Intn(len(propertyNames))]
		value := fmt.Sprintf("v%d", i)
		before := tab.snapshot()

		var err error
		switch op := r.Intn(7); op {
		case 0:
			tab.EnterScope()
		case 1:
			depth := tab.Depth()
			popped := tab.Frame(depth)
			tab.ExitScope()
			if depth > 0 {
				for _, n := range popped {
					_, ok := tab.Lookup(n)
					assert.False(t, ok, "%q survived the pop of its frame", n)
					delete(frozen, n)
				}
			} else {
				assert.Equal(t, before, tab.snapshot())
			}
		case 2:
			err = tab.DeclareImmutable(name, value)
			if err == nil {
				frozen[name] = value
			}
		case 3:
			err = tab.DeclareMutable(name, value)
		default:
			err = tab.Update(name, value)
		}

		if err != nil {
			assert.Equal(t, before, tab.snapshot(), "failed operation modified the table: %v", err)
		}
		require.NoError(t, tab.CheckInvariants(), "seed %d step %d", seed, i)

		for n, v := range frozen {
			got, ok := tab.Lookup(n)
			assert.True(t, ok)
			assert.Equal(t, v, got, "immutable %q changed", n)
		}

		seen := map[string]bool{}
		for _, b := range tab.Bindings() {
			assert.False(t, seen[b.Name], "duplicate binding %q", b.Name)
			seen[b.Name] = true
		}
	}
}

func TestRandomOperationSequences(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		runRandomOps(t, seed, 400)
	}
}

func TestScopeRoundTripRestoresState(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareImmutable("x", "1"))
	require.NoError(t, tab.DeclareMutable("y", "2"))
	before := tab.snapshot()

	tab.EnterScope()
	require.NoError(t, tab.DeclareMutable("i", "0"))
	require.NoError(t, tab.DeclareImmutable("j", "0"))
	require.NoError(t, tab.Update("i", "1"))
	tab.ExitScope()

	assert.Equal(t, before, tab.snapshot())
}

func TestFailedOperationsLeaveTableUntouched(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.DeclareImmutable("x", "1"))
	tab.EnterScope()
	require.NoError(t, tab.DeclareMutable("y", "2"))
	before := tab.snapshot()

	assert.Error(t, tab.DeclareMutable("x", "3"))
	assert.Error(t, tab.DeclareImmutable("y", "3"))
	assert.Error(t, tab.Update("x", "3"))
	assert.Error(t, tab.Update("missing", "3"))

	assert.Equal(t, before, tab.snapshot())
}
