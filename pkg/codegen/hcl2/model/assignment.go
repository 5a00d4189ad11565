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
)

// Assignment is a `set` block that updates a live mutable binding.
type Assignment struct {
	Syntax *hclsyntax.Block

	Name  string
	Value hclsyntax.Expression
}

func (a *Assignment) SyntaxNode() hclsyntax.Node {
	return a.Syntax
}

func (a *Assignment) NameRange() hcl.Range {
	return a.Syntax.LabelRanges[0]
}

func (*Assignment) isStatement() {}
