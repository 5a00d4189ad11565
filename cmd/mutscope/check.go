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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/util/contract"
	"github.com/mbovo/mutscope/pkg/workspace"
)

// checkFile reports the problems in one script. A static check never evaluates expressions, so it only finds
// problems that depend on names and scopes.
func checkFile(path string, static bool, settings *workspace.Settings, stderr io.Writer) error {
	program, files, diags, err := loadProgram(path)
	if err != nil {
		return err
	}
	if program != nil && !diags.HasErrors() {
		if static {
			diags = append(diags, program.CheckWithGlobals(settings.GlobalNames())...)
		} else {
			table, err := newScriptTable(settings)
			if err != nil {
				return err
			}
			diags = append(diags, program.Evaluate(table, model.EvalOptions{StopOnError: settings.StopOnError})...)
		}
	}

	if printDiagnostics(stderr, files, diags, settings) {
		return errors.Errorf("%s: %d error(s)", path, errorCount(diags))
	}
	return nil
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report problems in binding scripts",
		Long: "Report problems in binding scripts\n" +
			"\n" +
			"By default each script is evaluated and every diagnostic is printed. With --static the\n" +
			"scripts are only checked for undeclared names, duplicate declarations, and updates to\n" +
			"immutable names, without evaluating any expressions.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(cmd)
			if err != nil {
				return err
			}

			// Each file is checked on its own goroutine; output is reported in argument order.
			outputs := make([]bytes.Buffer, len(args))
			errs := make([]error, len(args))
			var g errgroup.Group
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					errs[i] = checkFile(path, static, settings, &outputs[i])
					return nil
				})
			}
			contract.IgnoreError(g.Wait())

			var result error
			for i := range args {
				if _, err := outputs[i].WriteTo(os.Stderr); err != nil {
					return err
				}
				if errs[i] != nil {
					result = multierror.Append(result, errs[i])
				}
			}
			if result == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) checked, no problems found\n", len(args))
			}
			return result
		},
	}

	cmd.Flags().BoolVar(&static, "static", false,
		"Check names and scopes without evaluating expressions")

	return cmd
}
