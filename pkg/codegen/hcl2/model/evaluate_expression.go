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
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/contract"
)

// EvaluateExpression evaluates a standalone expression against the live bindings of table. The expression may refer
// to any live binding and to the builtin functions.
func EvaluateExpression(table *mutability.Table[cty.Value], expr hclsyntax.Expression) (cty.Value, hcl.Diagnostics) {
	contract.Require(table != nil, "table")

	e := &evaluator{scopes: &scopes{table: table}}
	return e.evaluateExpression(expr)
}

func (e *evaluator) evaluateExpression(expr hclsyntax.Expression) (cty.Value, hcl.Diagnostics) {
	diagnostics := checkReferences(expr, e.scopes)
	if diagnostics.HasErrors() {
		return cty.DynamicVal, diagnostics
	}

	value, valueDiags := expr.Value(e.scopes.evalContext())
	diagnostics = append(diagnostics, valueDiags...)
	if diagnostics.HasErrors() {
		return cty.DynamicVal, diagnostics
	}
	if !value.IsWhollyKnown() {
		return cty.DynamicVal, append(diagnostics, errorf(expr.Range(), "expression does not have a known value"))
	}
	return value, diagnostics
}

// nameResolver answers which names are live at the current point of a program.
type nameResolver interface {
	isLive(name string) bool
	liveNames() []string
}

// checkReferences reports every variable and function referenced by expr that cannot be resolved, with a suggestion
// when a live name or builtin is a likely misspelling. HCL's own messages for these cases do not know about scopes.
func checkReferences(expr hclsyntax.Expression, resolver nameResolver) hcl.Diagnostics {
	c := &referenceChecker{
		resolver: resolver,
		reported: stringSet{},
		bound:    map[hclsyntax.Node][]string{},
	}
	return hclsyntax.Walk(expr, c)
}

// referenceChecker is an hclsyntax.Walker. The iterator names of a for expression are in scope only within its key,
// value, and condition expressions, not within its collection expression.
type referenceChecker struct {
	resolver nameResolver
	reported stringSet

	// bound maps the child expressions of each for expression to the iterator names they see.
	bound map[hclsyntax.Node][]string
	// iterators is the stack of iterator names in scope at the current node.
	iterators []string
}

func (c *referenceChecker) isIterator(name string) bool {
	for _, it := range c.iterators {
		if it == name {
			return true
		}
	}
	return false
}

func (c *referenceChecker) Enter(node hclsyntax.Node) hcl.Diagnostics {
	if names, ok := c.bound[node]; ok {
		c.iterators = append(c.iterators, names...)
	}

	switch node := node.(type) {
	case *hclsyntax.ForExpr:
		names := []string{node.ValVar}
		if node.KeyVar != "" {
			names = append(names, node.KeyVar)
		}
		for _, child := range []hclsyntax.Expression{node.KeyExpr, node.ValExpr, node.CondExpr} {
			if child != nil {
				c.bound[child] = names
			}
		}
	case *hclsyntax.ScopeTraversalExpr:
		name := node.Traversal.RootName()
		if c.isIterator(name) || c.resolver.isLive(name) || c.reported.has(name) {
			return nil
		}
		c.reported.add(name)

		suggestion, _ := Suggest(name, c.resolver.liveNames())
		return hcl.Diagnostics{undefinedVariable(name, suggestion, node.Traversal.SourceRange())}
	case *hclsyntax.FunctionCallExpr:
		if IsBuiltinFunction(node.Name) {
			return nil
		}
		d := errorf(node.NameRange, "unknown function %q", node.Name)
		if suggestion, ok := Suggest(node.Name, BuiltinFunctionNames()); ok {
			d.Detail = "Did you mean \"" + suggestion + "\"?"
		}
		return hcl.Diagnostics{d}
	}
	return nil
}

func (c *referenceChecker) Exit(node hclsyntax.Node) hcl.Diagnostics {
	if names, ok := c.bound[node]; ok {
		c.iterators = c.iterators[:len(c.iterators)-len(names)]
	}
	return nil
}
