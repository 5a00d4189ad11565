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
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/mutability"
)

func evaluateSource(t *testing.T, src string, options EvalOptions) (*mutability.Table[cty.Value], []string) {
	t.Helper()

	table := mutability.NewTable[cty.Value]()
	diags := bindSource(t, src).Evaluate(table, options)
	return table, summaries(diags)
}

func lookupString(t *testing.T, table *mutability.Table[cty.Value], name string) string {
	t.Helper()

	v, ok := table.Lookup(name)
	require.True(t, ok, "%q is not live", name)
	return FormatValue(v)
}

func TestEvaluateImmutableSetIsRejected(t *testing.T) {
	table, diags := evaluateSource(t, `
let "x" {
  value = "5"
}
set "x" {
  value = "10"
}
`, EvalOptions{})

	assert.Equal(t, []string{"Cannot mutate immutable variable: x"}, diags)
	assert.Equal(t, "5", lookupString(t, table, "x"))
	assert.True(t, table.IsImmutable("x"))
}

func TestEvaluateMutableSetIsAccepted(t *testing.T) {
	table, diags := evaluateSource(t, `
var "y" {
  value = 10
}
set "y" {
  value = y + 10
}
`, EvalOptions{})

	assert.Empty(t, diags)
	assert.Equal(t, "20", lookupString(t, table, "y"))
	assert.True(t, table.IsMutable("y"))
}

func TestEvaluateScopeReleasesInnerBindings(t *testing.T) {
	table, diags := evaluateSource(t, `
let "x" {
  value = "global"
}
var "seen" {
  value = ""
}
scope {
  var "y" {
    value = "inner"
  }
  set "seen" {
    value = "${x}/${y}"
  }
}
`, EvalOptions{})

	assert.Empty(t, diags)
	assert.Equal(t, 0, table.Depth())
	assert.Equal(t, "global/inner", lookupString(t, table, "seen"))
	_, ok := table.Lookup("y")
	assert.False(t, ok)
}

func TestEvaluateRejectsDeclarationShadowingOuterName(t *testing.T) {
	table, diags := evaluateSource(t, `
let "x" {
  value = "1"
}
scope {
  var "x" {
    value = "2"
  }
}
`, EvalOptions{})

	assert.Equal(t, []string{"Variable already exists: x"}, diags)
	assert.Equal(t, "1", lookupString(t, table, "x"))
}

func TestEvaluateUnknownNames(t *testing.T) {
	src := `
let "greeting" {
  value = "hello"
}
let "loud" {
  value = upper(greetin)
}
set "greting" {
  value = "bye"
}
let "shout" {
  value = uper(greeting)
}
`
	table := mutability.NewTable[cty.Value]()
	diags := bindSource(t, src).Evaluate(table, EvalOptions{})
	require.Len(t, diags, 3)

	assert.Equal(t, `undefined variable "greetin"`, diags[0].Summary)
	assert.Equal(t, `Did you mean "greeting"?`, diags[0].Detail)
	assert.Equal(t, "Variable not found: greting", diags[1].Summary)
	assert.Equal(t, `Did you mean "greeting"?`, diags[1].Detail)
	assert.Equal(t, `unknown function "uper"`, diags[2].Summary)
	assert.Equal(t, `Did you mean "upper"?`, diags[2].Detail)

	_, ok := table.Lookup("loud")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}

func TestEvaluateStopOnErrorExitsOpenScopes(t *testing.T) {
	table, diags := evaluateSource(t, `
let "a" {
  value = 1
}
scope {
  scope {
    set "a" {
      value = 2
    }
    var "b" {
      value = 3
    }
  }
}
var "c" {
  value = 4
}
`, EvalOptions{StopOnError: true})

	assert.Equal(t, []string{"Cannot mutate immutable variable: a"}, diags)
	assert.Equal(t, 0, table.Depth())
	_, ok := table.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, "1", lookupString(t, table, "a"))
}

func TestEvaluateContinuesAfterErrorsByDefault(t *testing.T) {
	table, diags := evaluateSource(t, `
let "a" {
  value = 1
}
set "a" {
  value = 2
}
var "c" {
  value = a + 3
}
`, EvalOptions{})

	assert.Len(t, diags, 1)
	assert.Equal(t, "4", lookupString(t, table, "c"))
}

func TestEvaluateBuiltinFunctions(t *testing.T) {
	table, diags := evaluateSource(t, `
let "name" {
  value = "Mixed"
}
let "up" {
  value = upper(name)
}
let "len" {
  value = strlen(name)
}
let "biggest" {
  value = max(3, 9, 4)
}
let "list" {
  value = concat(["a"], ["b", "c"])
}
`, EvalOptions{})

	assert.Empty(t, diags)
	assert.Equal(t, "MIXED", lookupString(t, table, "up"))
	assert.Equal(t, "5", lookupString(t, table, "len"))
	assert.Equal(t, "9", lookupString(t, table, "biggest"))
	assert.Equal(t, `["a","b","c"]`, lookupString(t, table, "list"))
}

func TestEvaluateAgainstPredeclaredGlobals(t *testing.T) {
	table := mutability.NewTable[cty.Value]()
	require.NoError(t, table.DeclareImmutable("env", cty.StringVal("prod")))

	diags := bindSource(t, `
let "target" {
  value = "deploy-${env}"
}
set "env" {
  value = "dev"
}
`).Evaluate(table, EvalOptions{})

	assert.Equal(t, []string{"Cannot mutate immutable variable: env"}, summaries(diags))
	assert.Equal(t, "deploy-prod", lookupString(t, table, "target"))
}

func TestEvaluateExpression(t *testing.T) {
	table := mutability.NewTable[cty.Value]()
	require.NoError(t, table.DeclareMutable("count", cty.NumberIntVal(3)))

	expr, diags := hclsyntax.ParseExpression([]byte(`count * 2`), "<repl>", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors())
	v, diags := EvaluateExpression(table, expr)
	require.False(t, diags.HasErrors())
	assert.Equal(t, "6", FormatValue(v))

	expr, diags = hclsyntax.ParseExpression([]byte(`cont + 1`), "<repl>", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors())
	_, diags = EvaluateExpression(table, expr)
	require.Len(t, diags, 1)
	assert.Equal(t, `undefined variable "cont"`, diags[0].Summary)
	assert.Equal(t, `Did you mean "count"?`, diags[0].Detail)
}

func TestEvaluateForExpressions(t *testing.T) {
	table, diags := evaluateSource(t, `
let "suffix" {
  value = "!"
}
let "xs" {
  value = [for s in ["a", "b"] : "${upper(s)}${suffix}"]
}
let "obj" {
  value = { for k, v in { a = 1, b = 2 } : k => v * 10 if v > 1 }
}
let "nested" {
  value = [for row in [[1, 2], [3]] : [for n in row : n + length]]
}
`, EvalOptions{})

	assert.Equal(t, []string{`undefined variable "length"`}, diags)
	assert.Equal(t, `["A!","B!"]`, lookupString(t, table, "xs"))
	assert.Equal(t, `{"b":20}`, lookupString(t, table, "obj"))

	_, ok := table.Lookup("nested")
	assert.False(t, ok)
	for _, name := range []string{"s", "k", "v", "row", "n"} {
		_, ok := table.Lookup(name)
		assert.False(t, ok, "iterator %q leaked into the table", name)
	}
}
