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

// bindValueBlock checks the shape shared by let, var, and set blocks: exactly one label and a body that holds only
// a value attribute.
func (b *binder) bindValueBlock(block *hclsyntax.Block) (string, hclsyntax.Expression, hcl.Diagnostics) {
	var diagnostics hcl.Diagnostics

	if len(block.Labels) != 1 {
		diagnostics = append(diagnostics, labelsErrorf(block, "%s blocks must have exactly one label", block.Type))
	} else if block.Labels[0] == "" {
		diagnostics = append(diagnostics, labelsErrorf(block, "%s block names must not be empty", block.Type))
	}

	container := block.Type + " block"
	for _, child := range block.Body.Blocks {
		diagnostics = append(diagnostics, unsupportedBlock(child, container))
	}

	var value hclsyntax.Expression
	for _, attr := range sourceOrderAttributes(block.Body.Attributes) {
		if attr.Name != valueAttribute {
			diagnostics = append(diagnostics, unsupportedAttribute(attr, container))
			continue
		}
		value = attr.Expr
	}
	if value == nil {
		diagnostics = append(diagnostics, missingValue(block))
	}

	if diagnostics.HasErrors() {
		return "", nil, diagnostics
	}
	return block.Labels[0], value, diagnostics
}

func (b *binder) bindDeclaration(block *hclsyntax.Block, m mutability.Mutability) (Statement, hcl.Diagnostics) {
	name, value, diagnostics := b.bindValueBlock(block)
	if diagnostics.HasErrors() {
		return nil, diagnostics
	}
	return &Declaration{
		Syntax:     block,
		Name:       name,
		Mutability: m,
		Value:      value,
	}, diagnostics
}

func (b *binder) bindAssignment(block *hclsyntax.Block) (Statement, hcl.Diagnostics) {
	name, value, diagnostics := b.bindValueBlock(block)
	if diagnostics.HasErrors() {
		return nil, diagnostics
	}
	return &Assignment{
		Syntax: block,
		Name:   name,
		Value:  value,
	}, diagnostics
}

func (b *binder) bindScopeBlock(block *hclsyntax.Block) (Statement, hcl.Diagnostics) {
	var diagnostics hcl.Diagnostics
	if len(block.Labels) != 0 {
		diagnostics = append(diagnostics, labelsErrorf(block, "scope blocks do not support labels"))
	}
	for _, attr := range sourceOrderAttributes(block.Body.Attributes) {
		diagnostics = append(diagnostics, unsupportedAttribute(attr, "scope block"))
	}

	body, bodyDiags := b.bindBlocks(block.Body.Blocks)
	diagnostics = append(diagnostics, bodyDiags...)

	return &ScopeBlock{
		Syntax: block,
		Body:   body,
	}, diagnostics
}
