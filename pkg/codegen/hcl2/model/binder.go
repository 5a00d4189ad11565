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
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/mbovo/mutscope/pkg/mutability"
)

// Block types understood by the binder.
const (
	letBlock   = "let"
	varBlock   = "var"
	setBlock   = "set"
	scopeBlock = "scope"

	valueAttribute = "value"
)

type binder struct {
	stack []hclsyntax.Node
}

// BindProgram binds the given files into a Program. Files are bound in name order. Blocks that fail to bind are
// reported and omitted from the program.
func BindProgram(files []*File) (*Program, hcl.Diagnostics) {
	b := &binder{}

	var diagnostics hcl.Diagnostics

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	var statements []Statement
	for _, f := range files {
		for _, attr := range sourceOrderAttributes(f.Body.Attributes) {
			diagnostics = append(diagnostics, unsupportedAttribute(attr, "the top level of "+f.Name))
		}

		stmts, diags := b.bindBlocks(f.Body.Blocks)
		statements, diagnostics = append(statements, stmts...), append(diagnostics, diags...)
	}

	return &Program{
		Statements: statements,
		files:      files,
	}, diagnostics
}

func (b *binder) bindBlocks(blocks []*hclsyntax.Block) ([]Statement, hcl.Diagnostics) {
	var statements []Statement
	var diagnostics hcl.Diagnostics
	for _, block := range sourceOrderBlocks(blocks) {
		stmt, diags := b.bindBlock(block)
		diagnostics = append(diagnostics, diags...)
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, diagnostics
}

func (b *binder) bindBlock(block *hclsyntax.Block) (Statement, hcl.Diagnostics) {
	b.stack = append(b.stack, block)
	defer func() {
		b.stack = b.stack[:len(b.stack)-1]
	}()

	switch block.Type {
	case letBlock:
		return b.bindDeclaration(block, mutability.Immutable)
	case varBlock:
		return b.bindDeclaration(block, mutability.Mutable)
	case setBlock:
		return b.bindAssignment(block)
	case scopeBlock:
		return b.bindScopeBlock(block)
	default:
		return nil, hcl.Diagnostics{unsupportedBlock(block, b.container())}
	}
}

// container describes the enclosing block for diagnostics.
func (b *binder) container() string {
	if len(b.stack) < 2 {
		return "the top level"
	}
	return b.stack[len(b.stack)-2].(*hclsyntax.Block).Type + " block"
}
