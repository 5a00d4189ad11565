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

	"github.com/mbovo/mutscope/pkg/mutability"
)

// Declaration is a `let` (immutable) or `var` (mutable) block.
type Declaration struct {
	Syntax *hclsyntax.Block

	Name       string
	Mutability mutability.Mutability
	Value      hclsyntax.Expression
}

func (d *Declaration) SyntaxNode() hclsyntax.Node {
	return d.Syntax
}

// NameRange returns the source range of the declared name.
func (d *Declaration) NameRange() hcl.Range {
	return d.Syntax.LabelRanges[0]
}

func (*Declaration) isStatement() {}
