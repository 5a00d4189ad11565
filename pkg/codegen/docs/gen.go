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

// Package docs generates Markdown reference pages for binding scripts.
package docs

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/contract"
)

type docContext struct {
	tool    string
	program *model.Program
}

func sanitizeCell(str string) string {
	str = strings.Replace(str, "|", "\\|", -1)
	return strings.Replace(str, "\n", " ", -1)
}

func location(rng hcl.Range) string {
	return fmt.Sprintf("%s:%d", rng.Filename, rng.Start.Line)
}

func kind(m mutability.Mutability) string {
	if m == mutability.Mutable {
		return "mutable (`var`)"
	}
	return "immutable (`let`)"
}

func (ctx *docContext) genHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "title: %q\n", title)
	fmt.Fprintf(w, "---\n\n")

	fmt.Fprintf(w, "<!-- WARNING: this file was generated by %v. -->\n", ctx.tool)
	fmt.Fprintf(w, "<!-- Do not edit by hand unless you're certain you know what you are doing! -->\n\n")
}

func (ctx *docContext) genDeclarations(w io.Writer) {
	fmt.Fprintf(w, "## Bindings\n\n")

	var rows []string
	ctx.program.Walk(func(s model.Statement, depth int) {
		decl, ok := s.(*model.Declaration)
		if !ok {
			return
		}
		value := sanitizeCell(string(ctx.program.Source(decl.Value)))
		rows = append(rows, fmt.Sprintf("| `%s` | %s | %d | `%s` | %s |",
			sanitizeCell(decl.Name), kind(decl.Mutability), depth, value, location(decl.NameRange())))
	})

	if len(rows) == 0 {
		fmt.Fprintf(w, "This program declares no bindings.\n\n")
		return
	}

	fmt.Fprintf(w, "| Name | Kind | Depth | Initial value | Declared at |\n")
	fmt.Fprintf(w, "| --- | --- | --- | --- | --- |\n")
	for _, row := range rows {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w)
}

func (ctx *docContext) genAssignments(w io.Writer) {
	var items []string
	ctx.program.Walk(func(s model.Statement, depth int) {
		if assign, ok := s.(*model.Assignment); ok {
			items = append(items, fmt.Sprintf("- `%s` at %s (depth %d)",
				assign.Name, location(assign.NameRange()), depth))
		}
	})
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(w, "## Assignments\n\n")
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
	fmt.Fprintln(w)
}

func (ctx *docContext) genProblems(w io.Writer, globals []string) {
	diags := ctx.program.CheckWithGlobals(globals)
	if len(diags) == 0 {
		return
	}

	fmt.Fprintf(w, "## Problems\n\n")
	for _, d := range diags {
		contract.Assert(d.Subject != nil)
		fmt.Fprintf(w, "- %s: %s\n", location(*d.Subject), d.Summary)
	}
	fmt.Fprintln(w)
}

// GenerateProgramDocs renders a Markdown page that lists the bindings a program declares, the assignments it makes,
// and any problems a static check finds. Names in globals are treated as predeclared immutable bindings.
func GenerateProgramDocs(tool, title string, program *model.Program, globals []string) []byte {
	contract.Require(program != nil, "program")

	ctx := &docContext{tool: tool, program: program}

	var buffer bytes.Buffer
	ctx.genHeader(&buffer, title)
	ctx.genDeclarations(&buffer)
	ctx.genAssignments(&buffer)
	ctx.genProblems(&buffer, globals)
	return buffer.Bytes()
}
