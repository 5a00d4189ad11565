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

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestCheckFindsStaticErrors(t *testing.T) {
	p := bindSource(t, `
let "x" {
  value = 1
}
scope {
  var "x" {
    value = 2
  }
  var "tmp" {
    value = 0
  }
}
set "x" {
  value = 3
}
set "tmp" {
  value = 4
}
var "z" {
  value = tmp
}
`)
	diags := p.Check()
	assert.Equal(t, []string{
		"Variable already exists: x",
		"Cannot mutate immutable variable: x",
		"Variable not found: tmp",
		`undefined variable "tmp"`,
	}, summaries(diags))
	assert.Contains(t, diags[0].Detail, "previously declared at test.mut:2")
	assert.Contains(t, diags[1].Detail, "declare it with var")
}

func TestCheckWithGlobals(t *testing.T) {
	p := bindSource(t, `
let "region" {
  value = "${zone}-a"
}
set "zone" {
  value = "west"
}
`)
	assert.Equal(t, []string{
		`undefined variable "zone"`,
		"Variable not found: zone",
	}, summaries(p.Check()))
	assert.Equal(t, []string{
		"Cannot mutate immutable variable: zone",
	}, summaries(p.CheckWithGlobals([]string{"zone"})))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "text", FormatValue(cty.StringVal("text")))
	assert.Equal(t, "42", FormatValue(cty.NumberIntVal(42)))
	assert.Equal(t, "1.5", FormatValue(cty.NumberFloatVal(1.5)))
	assert.Equal(t, "true", FormatValue(cty.True))
	assert.Equal(t, "null", FormatValue(cty.NullVal(cty.String)))
	assert.Equal(t, "(unknown)", FormatValue(cty.UnknownVal(cty.String)))
	assert.Equal(t, `{"a":1}`, FormatValue(cty.ObjectVal(map[string]cty.Value{"a": cty.NumberIntVal(1)})))
}

func TestSuggest(t *testing.T) {
	s, ok := Suggest("conter", []string{"counter", "container", "x"})
	assert.True(t, ok)
	assert.Equal(t, "counter", s)

	_, ok = Suggest("a", []string{"b"})
	assert.False(t, ok)

	_, ok = Suggest("total", []string{"unrelated"})
	assert.False(t, ok)
}

func TestCheckScopesForIterators(t *testing.T) {
	p := bindSource(t, `
let "xs" {
  value = [for s in ["a", "b"] : upper(s)]
}
let "obj" {
  value = { for k, v in { a = 1 } : k => v if v > 0 }
}
let "self" {
  value = [for it in it : it]
}
let "after" {
  value = concat([for e in xs : e], [e])
}
`)
	diags := p.Check()
	assert.Equal(t, []string{
		`undefined variable "it"`,
		`undefined variable "e"`,
	}, summaries(diags))
	assert.Equal(t, 9, diags[0].Subject.Start.Line)
	assert.Equal(t, 12, diags[1].Subject.Start.Line)
}
