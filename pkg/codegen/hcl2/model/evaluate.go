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
	"github.com/mbovo/mutscope/pkg/util/contract"
	"github.com/mbovo/mutscope/pkg/util/logging"
)

// EvalOptions control program evaluation.
type EvalOptions struct {
	// StopOnError ends evaluation at the first statement that produces an error. Scopes that are open at that point
	// are still exited.
	StopOnError bool
}

type evaluator struct {
	scopes      *scopes
	options     EvalOptions
	diagnostics hcl.Diagnostics
}

// Evaluate runs the program's statements in order against table. Each scope block enters a frame on entry and exits
// it on completion, so the table is back at its starting depth when Evaluate returns.
//
// A statement that fails is reported and skipped; its effects never reach the table.
func (p *Program) Evaluate(table *mutability.Table[cty.Value], options EvalOptions) hcl.Diagnostics {
	contract.Require(table != nil, "table")

	e := &evaluator{
		scopes:  &scopes{table: table},
		options: options,
	}
	depth := table.Depth()
	e.evaluateStatements(p.Statements)
	contract.Assertf(table.Depth() == depth, "evaluation left the table at depth %d, expected %d", table.Depth(), depth)

	return e.diagnostics
}

func (e *evaluator) stopped() bool {
	return e.options.StopOnError && e.diagnostics.HasErrors()
}

func (e *evaluator) evaluateStatements(stmts []Statement) {
	for _, stmt := range stmts {
		if e.stopped() {
			return
		}
		e.diagnostics = append(e.diagnostics, e.evaluateStatement(stmt)...)
	}
}

func (e *evaluator) evaluateStatement(stmt Statement) hcl.Diagnostics {
	switch stmt := stmt.(type) {
	case *Declaration:
		return e.evaluateDeclaration(stmt)
	case *Assignment:
		return e.evaluateAssignment(stmt)
	case *ScopeBlock:
		e.scopes.push(stmt)
		defer e.scopes.pop()
		e.evaluateStatements(stmt.Body)
		return nil
	default:
		contract.Failf("unexpected statement of type %T (%v)", stmt, stmt.SyntaxNode().Range())
		return nil
	}
}

func (e *evaluator) evaluateDeclaration(stmt *Declaration) hcl.Diagnostics {
	value, diagnostics := e.evaluateExpression(stmt.Value)
	if diagnostics.HasErrors() {
		return diagnostics
	}

	if err := e.scopes.table.Declare(stmt.Name, value, stmt.Mutability); err != nil {
		return append(diagnostics, tableError(err, stmt.NameRange()))
	}
	logging.V(7).Infof("declared %v %s = %s", stmt.Mutability, stmt.Name, FormatValue(value))
	return diagnostics
}

func (e *evaluator) evaluateAssignment(stmt *Assignment) hcl.Diagnostics {
	// Check the target before evaluating the value so that a bad target is reported even if the value is bad too.
	if _, ok := e.scopes.table.Mutability(stmt.Name); !ok {
		d := tableError(&mutability.Error{Kind: mutability.VariableNotFound, Name: stmt.Name}, stmt.NameRange())
		if suggestion, ok := Suggest(stmt.Name, e.scopes.liveNames()); ok {
			d.Detail = "Did you mean \"" + suggestion + "\"?"
		}
		return hcl.Diagnostics{d}
	}

	value, diagnostics := e.evaluateExpression(stmt.Value)
	if diagnostics.HasErrors() {
		return diagnostics
	}

	if err := e.scopes.table.Update(stmt.Name, value); err != nil {
		return append(diagnostics, tableError(err, stmt.NameRange()))
	}
	logging.V(7).Infof("updated %s = %s", stmt.Name, FormatValue(value))
	return diagnostics
}
