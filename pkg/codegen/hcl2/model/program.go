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
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Statement is a single bound block of a binding script.
type Statement interface {
	SyntaxNode() hclsyntax.Node

	isStatement()
}

// Program is a bound set of binding scripts. Statements from all files appear in file name order, then source order.
type Program struct {
	Statements []Statement

	files []*File
}

// NewDiagnosticWriter returns a writer that renders diagnostics with source snippets from the program's files.
func (p *Program) NewDiagnosticWriter(w io.Writer, width uint, color bool) hcl.DiagnosticWriter {
	return NewDiagnosticWriter(w, p.files, width, color)
}

// NewDiagnosticWriter returns a writer that renders diagnostics with source snippets from the given files.
func NewDiagnosticWriter(w io.Writer, files []*File, width uint, color bool) hcl.DiagnosticWriter {
	fileMap := map[string]*hcl.File{}
	for _, f := range files {
		fileMap[f.Name] = f.hclFile
	}
	return hcl.NewDiagnosticTextWriter(w, fileMap, width, color)
}

// Source returns the source text of the given node, or nil if the node does not belong to the program.
func (p *Program) Source(node hclsyntax.Node) []byte {
	rng := node.Range()
	for _, f := range p.files {
		if f.Name == rng.Filename {
			return rng.SliceBytes(f.Bytes)
		}
	}
	return nil
}

// Walk calls visit for each statement in the program in source order, descending into scope blocks. The depth passed
// to visit is the scope depth at which the statement executes.
func (p *Program) Walk(visit func(s Statement, depth int)) {
	walkStatements(p.Statements, 0, visit)
}

func walkStatements(stmts []Statement, depth int, visit func(s Statement, depth int)) {
	for _, s := range stmts {
		visit(s, depth)
		if block, ok := s.(*ScopeBlock); ok {
			walkStatements(block.Body, depth+1, visit)
		}
	}
}
