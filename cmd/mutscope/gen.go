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
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mbovo/mutscope/pkg/codegen/docs"
	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/codegen/nodejs"
	"github.com/mbovo/mutscope/pkg/util/logging"
	"github.com/mbovo/mutscope/pkg/workspace"
)

// bindForGen loads a script for code generation, printing any diagnostics. Generation requires a script that binds
// cleanly.
func bindForGen(path string, settings *workspace.Settings) (*model.Program, []*model.File, error) {
	program, files, diags, err := loadProgram(path)
	if err != nil {
		return nil, nil, err
	}
	if printDiagnostics(os.Stderr, files, diags, settings) || program == nil {
		return nil, nil, errors.Errorf("%s: %d error(s) while binding", path, errorCount(diags))
	}
	return program, files, nil
}

func newGenNodejsCmd(opts *globalOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "nodejs FILE",
		Short: "Generate a TypeScript program from a binding script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			program, files, err := bindForGen(args[0], settings)
			if err != nil {
				return err
			}

			generated, diags := nodejs.GenerateProgram(program)
			if printDiagnostics(os.Stderr, files, diags, settings) {
				return errors.Errorf("%s: %d error(s) while generating code", args[0], errorCount(diags))
			}

			if err = os.MkdirAll(outDir, 0700); err != nil {
				return errors.Wrapf(err, "creating %s", outDir)
			}
			names := make([]string, 0, len(generated))
			for name := range generated {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				path := filepath.Join(outDir, name)
				logging.V(5).Infof("writing %s", path)
				if err = ioutil.WriteFile(path, generated[name], 0600); err != nil {
					return errors.Wrapf(err, "writing %s", path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write generated files to")

	return cmd
}

func newGenDocsCmd(opts *globalOptions) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "docs FILE",
		Short: "Generate a Markdown summary of a binding script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			program, _, err := bindForGen(args[0], settings)
			if err != nil {
				return err
			}

			page := docs.GenerateProgramDocs("mutscope", scriptTitle(args[0]), program, settings.GlobalNames())
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			logging.V(5).Infof("writing %s", outFile)
			return errors.Wrapf(ioutil.WriteFile(outFile, page, 0600), "writing %s", outFile)
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "File to write the page to; defaults to stdout")

	return cmd
}

func newGenCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate code or documentation from a binding script",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newGenNodejsCmd(opts))
	cmd.AddCommand(newGenDocsCmd(opts))

	return cmd
}
