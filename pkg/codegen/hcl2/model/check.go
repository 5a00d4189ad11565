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
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/mbovo/mutscope/pkg/mutability"
)

// staticScopes tracks which declarations are live at each point of a program without evaluating any expressions.
type staticScopes struct {
	table *mutability.Table[*Declaration]
}

func (s *staticScopes) isLive(name string) bool {
	_, ok := s.table.Lookup(name)
	return ok
}

func (s *staticScopes) liveNames() []string {
	return bindingNames(s.table.Bindings())
}

// Check reports the errors that can be found without evaluating expressions: duplicate declarations, assignments to
// undeclared or immutable names, and references to names that are not live. Declarations whose values would fail to
// evaluate are treated as if they succeed.
func (p *Program) Check() hcl.Diagnostics {
	return p.CheckWithGlobals(nil)
}

// CheckWithGlobals is like Check, but treats the given names as predeclared immutable bindings.
func (p *Program) CheckWithGlobals(globals []string) hcl.Diagnostics {
	s := &staticScopes{table: mutability.NewTable[*Declaration]()}
	for _, name := range globals {
		if name != "" {
			_ = s.table.DeclareImmutable(name, nil)
		}
	}
	return s.checkStatements(p.Statements)
}

func (s *staticScopes) checkStatements(stmts []Statement) hcl.Diagnostics {
	var diagnostics hcl.Diagnostics
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *Declaration:
			diagnostics = append(diagnostics, checkReferences(stmt.Value, s)...)
			if err := s.table.Declare(stmt.Name, stmt, stmt.Mutability); err != nil {
				d := tableError(err, stmt.NameRange())
				if prior, _ := s.table.Lookup(stmt.Name); prior != nil {
					d.Detail = fmt.Sprintf("%q was previously declared at %v.", stmt.Name, prior.NameRange())
				}
				diagnostics = append(diagnostics, d)
			}
		case *Assignment:
			diagnostics = append(diagnostics, checkReferences(stmt.Value, s)...)
			m, ok := s.table.Mutability(stmt.Name)
			switch {
			case !ok:
				d := tableError(&mutability.Error{Kind: mutability.VariableNotFound, Name: stmt.Name}, stmt.NameRange())
				if suggestion, ok := Suggest(stmt.Name, s.liveNames()); ok {
					d.Detail = "Did you mean \"" + suggestion + "\"?"
				}
				diagnostics = append(diagnostics, d)
			case m == mutability.Immutable:
				d := tableError(&mutability.Error{Kind: mutability.CannotMutateImmutable, Name: stmt.Name},
					stmt.NameRange())
				if decl, _ := s.table.Lookup(stmt.Name); decl != nil {
					d.Detail = fmt.Sprintf("%q is declared with let at %v; declare it with var to allow updates.",
						stmt.Name, decl.NameRange())
				}
				diagnostics = append(diagnostics, d)
			}
		case *ScopeBlock:
			s.table.EnterScope()
			diagnostics = append(diagnostics, s.checkStatements(stmt.Body)...)
			s.table.ExitScope()
		}
	}
	return diagnostics
}
