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

package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/logging"
)

// scopes adapts a mutability table to the evaluator: it tracks the syntax that opened each frame and exposes the
// live bindings as an HCL evaluation context.
type scopes struct {
	table *mutability.Table[cty.Value]
	stack []*ScopeBlock
}

func (s *scopes) push(block *ScopeBlock) {
	s.table.EnterScope()
	s.stack = append(s.stack, block)
	logging.V(9).Infof("entered scope at %v (depth %d)", block.Syntax.TypeRange, s.table.Depth())
}

func (s *scopes) pop() {
	block := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.table.ExitScope()
	logging.V(9).Infof("exited scope at %v (depth %d)", block.Syntax.TypeRange, s.table.Depth())
}

func (s *scopes) isLive(name string) bool {
	_, ok := s.table.Lookup(name)
	return ok
}

func (s *scopes) liveNames() []string {
	return bindingNames(s.table.Bindings())
}

func bindingNames[V any](bindings []mutability.Binding[V]) []string {
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Name
	}
	return names
}

func (s *scopes) evalContext() *hcl.EvalContext {
	bindings := s.table.Bindings()
	variables := make(map[string]cty.Value, len(bindings))
	for _, b := range bindings {
		variables[b.Name] = b.Value
	}
	return &hcl.EvalContext{
		Variables: variables,
		Functions: builtinFunctions,
	}
}
