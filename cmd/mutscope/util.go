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

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/logging"
	"github.com/mbovo/mutscope/pkg/workspace"
)

// loadProgram parses and binds a single script. Diagnostics are returned alongside the program so callers can print
// them with source snippets; a nil program means the script could not be bound at all.
func loadProgram(path string) (*model.Program, []*model.File, hcl.Diagnostics, error) {
	logging.V(5).Infof("loading %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	file, diags, err := model.ParseFile(f, path)
	if err != nil {
		return nil, nil, nil, err
	}
	files := []*model.File{file}
	if diags.HasErrors() {
		return nil, files, diags, nil
	}

	program, bindDiags := model.BindProgram(files)
	return program, files, append(diags, bindDiags...), nil
}

// newScriptTable returns a table with the configured globals predeclared as immutable strings.
func newScriptTable(settings *workspace.Settings) (*mutability.Table[cty.Value], error) {
	table := mutability.NewTable[cty.Value]()
	for _, name := range settings.GlobalNames() {
		if err := table.DeclareImmutable(name, cty.StringVal(settings.Globals[name])); err != nil {
			return nil, errors.Wrapf(err, "declaring global %q", name)
		}
	}
	return table, nil
}

// printDiagnostics writes diagnostics with source context and reports whether any of them were errors.
func printDiagnostics(w io.Writer, files []*model.File, diags hcl.Diagnostics, settings *workspace.Settings) bool {
	if len(diags) == 0 {
		return false
	}
	writer := model.NewDiagnosticWriter(w, files, settings.Width, settings.Color)
	if err := writer.WriteDiagnostics(diags); err != nil {
		logging.Warningf("failed to write diagnostics: %v", err)
	}
	return diags.HasErrors()
}

// errorCount returns the number of error-severity diagnostics.
func errorCount(diags hcl.Diagnostics) int {
	n := 0
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			n++
		}
	}
	return n
}

// scriptTitle derives a display title from a script path.
func scriptTitle(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
