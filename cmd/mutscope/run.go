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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v2"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/workspace"
)

// bindingResult is the serialized form of a live binding.
type bindingResult struct {
	Name       string      `json:"name" yaml:"name"`
	Mutability string      `json:"mutability" yaml:"mutability"`
	Value      interface{} `json:"value" yaml:"value"`
}

// fileResult is the serialized form of one script's final table.
type fileResult struct {
	File     string          `json:"file" yaml:"file"`
	Bindings []bindingResult `json:"bindings" yaml:"bindings"`
}

// plainValue converts a cty value to the generic structure encoding/json and yaml.v2 both understand.
func plainValue(v cty.Value) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, errors.Wrap(err, "marshaling value")
	}
	// JSON is a subset of YAML, so the yaml decoder yields plain maps and slices for either encoder.
	var result interface{}
	if err = yaml.Unmarshal(b, &result); err != nil {
		return nil, errors.Wrap(err, "decoding value")
	}
	return normalizeYAML(result), nil
}

// normalizeYAML rewrites the map[interface{}]interface{} values yaml.v2 produces into string-keyed maps.
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []interface{}:
		for i, e := range v {
			v[i] = normalizeYAML(e)
		}
		return v
	default:
		return v
	}
}

func newFileResult(path string, table *mutability.Table[cty.Value]) (fileResult, error) {
	result := fileResult{File: path, Bindings: []bindingResult{}}
	for _, b := range table.Bindings() {
		value, err := plainValue(b.Value)
		if err != nil {
			return fileResult{}, errors.Wrapf(err, "%s: binding %q", path, b.Name)
		}
		result.Bindings = append(result.Bindings, bindingResult{
			Name:       b.Name,
			Mutability: b.Mutability.String(),
			Value:      value,
		})
	}
	return result, nil
}

func writeResults(w io.Writer, format string, results []fileResult) error {
	switch format {
	case workspace.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case workspace.OutputYAML:
		b, err := yaml.Marshal(results)
		if err != nil {
			return errors.Wrap(err, "encoding results")
		}
		_, err = w.Write(b)
		return err
	default:
		for i, r := range results {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "# %s\n", r.File)
			}
			for _, b := range r.Bindings {
				keyword := "let"
				if b.Mutability == mutability.Mutable.String() {
					keyword = "var"
				}
				fmt.Fprintf(w, "%s %s = %v\n", keyword, b.Name, textValue(b.Value))
			}
		}
		return nil
	}
}

func textValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// runFile evaluates one script in a fresh table. It returns the table even when evaluation reports errors so that the
// surviving bindings can still be shown.
func runFile(path string, settings *workspace.Settings, stderr io.Writer) (*mutability.Table[cty.Value], error) {
	program, files, diags, err := loadProgram(path)
	if err != nil {
		return nil, err
	}
	if program == nil || diags.HasErrors() {
		printDiagnostics(stderr, files, diags, settings)
		return nil, errors.Errorf("%s: %d error(s) while binding", path, errorCount(diags))
	}

	table, err := newScriptTable(settings)
	if err != nil {
		return nil, err
	}
	diags = append(diags, program.Evaluate(table, model.EvalOptions{StopOnError: settings.StopOnError})...)
	if printDiagnostics(stderr, files, diags, settings) {
		return table, errors.Errorf("%s: %d error(s) while evaluating", path, errorCount(diags))
	}
	return table, nil
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var output string
	var stopOnError bool

	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Evaluate binding scripts and print their final bindings",
		Long: "Evaluate binding scripts and print their final bindings\n" +
			"\n" +
			"Each file is evaluated in its own table. Errors are reported and evaluation continues\n" +
			"with the next statement unless --stop-on-error is set.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				settings.Output = output
			}
			if cmd.Flags().Changed("stop-on-error") {
				settings.StopOnError = stopOnError
			}
			if err = settings.Validate(); err != nil {
				return err
			}

			var result error
			var results []fileResult
			for _, path := range args {
				table, err := runFile(path, settings, os.Stderr)
				if err != nil {
					result = multierror.Append(result, err)
				}
				if table == nil {
					continue
				}
				r, err := newFileResult(path, table)
				if err != nil {
					result = multierror.Append(result, err)
					continue
				}
				results = append(results, r)
			}

			if err := writeResults(cmd.OutOrStdout(), settings.Output, results); err != nil {
				result = multierror.Append(result, err)
			}
			return result
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", workspace.OutputText,
		"Output format for bindings: text, yaml, or json")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false,
		"Stop evaluating a file at its first error")

	return cmd
}
