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
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/contract"
)

type replOp int

const (
	replNop replOp = iota
	replDeclare
	replUpdate
	replEnter
	replExit
	replGet
	replShow
	replEval
	replHelp
	replQuit
)

// replCommand is one parsed line of REPL input.
type replCommand struct {
	op         replOp
	name       string
	mutability mutability.Mutability
	expr       string
}

var (
	declRegexp   = regexp.MustCompile(`^(let|var|set)\s+([A-Za-z_][A-Za-z0-9_-]*)\s*=\s*(.*)$`)
	assignRegexp = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_-]*)\s*=\s*([^=].*)$`)
	getRegexp    = regexp.MustCompile(`^get\s+([A-Za-z_][A-Za-z0-9_-]*)$`)
)

const replHelpText = `let NAME = EXPR   declare an immutable name in the current scope
var NAME = EXPR   declare a mutable name in the current scope
set NAME = EXPR   update a mutable name (also: NAME = EXPR)
{                 enter a new scope
}                 exit the current scope
get NAME          print the value of NAME
show              list every live binding
EXPR              evaluate an expression
help              show this message
exit              leave the REPL`

func parseReplLine(line string) (replCommand, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return replCommand{op: replNop}, nil
	case "{":
		return replCommand{op: replEnter}, nil
	case "}":
		return replCommand{op: replExit}, nil
	case "show":
		return replCommand{op: replShow}, nil
	case "help", "?":
		return replCommand{op: replHelp}, nil
	case "exit", "quit":
		return replCommand{op: replQuit}, nil
	}

	if m := declRegexp.FindStringSubmatch(line); m != nil {
		if strings.TrimSpace(m[3]) == "" {
			return replCommand{}, errors.Errorf("missing value for %s %s", m[1], m[2])
		}
		switch m[1] {
		case "let":
			return replCommand{op: replDeclare, name: m[2], mutability: mutability.Immutable, expr: m[3]}, nil
		case "var":
			return replCommand{op: replDeclare, name: m[2], mutability: mutability.Mutable, expr: m[3]}, nil
		default:
			return replCommand{op: replUpdate, name: m[2], expr: m[3]}, nil
		}
	}
	if m := getRegexp.FindStringSubmatch(line); m != nil {
		return replCommand{op: replGet, name: m[1]}, nil
	}
	for _, keyword := range []string{"let", "var", "set", "get"} {
		if line == keyword || strings.HasPrefix(line, keyword+" ") {
			return replCommand{}, errors.Errorf("malformed %s command; type help for usage", keyword)
		}
	}
	if m := assignRegexp.FindStringSubmatch(line); m != nil {
		return replCommand{op: replUpdate, name: m[1], expr: m[2]}, nil
	}
	return replCommand{op: replEval, expr: line}, nil
}

// replSession is an interactive session over a single table.
type replSession struct {
	table *mutability.Table[cty.Value]
	out   io.Writer
	line  int
}

func newReplSession(out io.Writer) *replSession {
	return &replSession{table: mutability.NewTable[cty.Value](), out: out}
}

// tableError renders a table error with a hint when the name looks like a misspelling of a live binding.
func (s *replSession) tableError(err error) error {
	if mutability.IsVariableNotFound(err) {
		e, _ := mutability.AsError(err)
		if suggestion, ok := model.Suggest(e.Name, s.liveNames()); ok {
			return errors.Errorf("%v (did you mean %q?)", err, suggestion)
		}
	}
	return err
}

func (s *replSession) liveNames() []string {
	var names []string
	for _, b := range s.table.Bindings() {
		names = append(names, b.Name)
	}
	return names
}

func (s *replSession) evaluate(src string) (cty.Value, error) {
	s.line++
	filename := fmt.Sprintf("<repl:%d>", s.line)
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if !diags.HasErrors() {
		var value cty.Value
		value, diags = model.EvaluateExpression(s.table, expr)
		if !diags.HasErrors() {
			return value, nil
		}
	}
	return cty.DynamicVal, diagnosticsError(diags)
}

func diagnosticsError(diags hcl.Diagnostics) error {
	var messages []string
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		message := d.Summary
		if d.Detail != "" {
			message += "; " + d.Detail
		}
		messages = append(messages, message)
	}
	return errors.New(strings.Join(messages, "\n"))
}

// exec runs a single line of input. It reports whether the session should end.
func (s *replSession) exec(line string) (bool, error) {
	cmd, err := parseReplLine(line)
	if err != nil {
		return false, err
	}

	switch cmd.op {
	case replNop:
	case replQuit:
		return true, nil
	case replHelp:
		fmt.Fprintln(s.out, replHelpText)
	case replEnter:
		s.table.EnterScope()
	case replExit:
		if s.table.Depth() == 0 {
			return false, errors.New("already at the outermost scope")
		}
		s.table.ExitScope()
	case replShow:
		for _, b := range s.table.Bindings() {
			fmt.Fprintf(s.out, "%s%s (%v) = %s\n",
				strings.Repeat("  ", b.ScopeLevel), b.Name, b.Mutability, model.FormatValue(b.Value))
		}
	case replGet:
		value, ok := s.table.Lookup(cmd.name)
		if !ok {
			return false, s.tableError(&mutability.Error{Kind: mutability.VariableNotFound, Name: cmd.name})
		}
		fmt.Fprintln(s.out, model.FormatValue(value))
	case replDeclare:
		value, err := s.evaluate(cmd.expr)
		if err != nil {
			return false, err
		}
		if err = s.table.Declare(cmd.name, value, cmd.mutability); err != nil {
			return false, s.tableError(err)
		}
	case replUpdate:
		if _, ok := s.table.Lookup(cmd.name); !ok {
			return false, s.tableError(&mutability.Error{Kind: mutability.VariableNotFound, Name: cmd.name})
		}
		value, err := s.evaluate(cmd.expr)
		if err != nil {
			return false, err
		}
		if err = s.table.Update(cmd.name, value); err != nil {
			return false, s.tableError(err)
		}
	case replEval:
		value, err := s.evaluate(cmd.expr)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, model.FormatValue(value))
	}
	return false, nil
}

func (s *replSession) prompt() string {
	return strings.Repeat("{", s.table.Depth()) + "> "
}

func newReplCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive binding session",
		Long: "Start an interactive binding session\n" +
			"\n" +
			"Type help at the prompt for the list of commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.settings(cmd)
			if err != nil {
				return err
			}

			rl, err := readline.New("> ")
			if err != nil {
				return errors.Wrap(err, "starting line editor")
			}
			defer func() { contract.IgnoreError(rl.Close()) }()

			session := newReplSession(rl.Stdout())
			if session.table, err = newScriptTable(settings); err != nil {
				return err
			}

			for {
				rl.SetPrompt(session.prompt())
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				} else if err == io.EOF {
					return nil
				} else if err != nil {
					return errors.Wrap(err, "reading input")
				}

				quit, err := session.exec(line)
				if err != nil {
					fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
				}
				if quit {
					return nil
				}
			}
		},
	}
}
