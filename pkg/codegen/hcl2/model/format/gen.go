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

package format

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/mbovo/mutscope/pkg/util/contract"
)

type ExpressionGenerator interface {
	GenBinaryOpExpression(w io.Writer, expr *hclsyntax.BinaryOpExpr)
	GenConditionalExpression(w io.Writer, expr *hclsyntax.ConditionalExpr)
	GenFunctionCallExpression(w io.Writer, expr *hclsyntax.FunctionCallExpr)
	GenIndexExpression(w io.Writer, expr *hclsyntax.IndexExpr)
	GenLiteralValueExpression(w io.Writer, expr *hclsyntax.LiteralValueExpr)
	GenObjectConsExpression(w io.Writer, expr *hclsyntax.ObjectConsExpr)
	GenScopeTraversalExpression(w io.Writer, expr *hclsyntax.ScopeTraversalExpr)
	GenTemplateExpression(w io.Writer, expr *hclsyntax.TemplateExpr)
	GenTemplateWrapExpression(w io.Writer, expr *hclsyntax.TemplateWrapExpr)
	GenTupleConsExpression(w io.Writer, expr *hclsyntax.TupleConsExpr)
	GenUnaryOpExpression(w io.Writer, expr *hclsyntax.UnaryOpExpr)

	// GenUnsupportedExpression is called for any expression the generator has no method for.
	GenUnsupportedExpression(w io.Writer, expr hclsyntax.Expression)
}

// Formatter is a convenience type that implements a number of common utilities used to emit source code. It implements
// the io.Writer interface.
type Formatter struct {
	// The current indent level as a string.
	Indent string

	// The ExpressionGenerator to use in {G,Fg}en{,f}
	g ExpressionGenerator
}

// NewFormatter creates a new emitter targeting the given io.Writer that will use the given ExpressionGenerator when
// generating code.
func NewFormatter(g ExpressionGenerator) *Formatter {
	return &Formatter{g: g}
}

// Indented bumps the current indentation level, invokes the given function, and then resets the indentation level to
// its prior value.
func (e *Formatter) Indented(f func()) {
	e.Indent += "    "
	f()
	e.Indent = e.Indent[:len(e.Indent)-4]
}

// Fprint prints one or more values to the generator's output stream.
func (e *Formatter) Fprint(w io.Writer, a ...interface{}) {
	_, err := fmt.Fprint(w, a...)
	contract.IgnoreError(err)
}

// Fprintln prints one or more values to the generator's output stream, followed by a newline.
func (e *Formatter) Fprintln(w io.Writer, a ...interface{}) {
	e.Fprint(w, a...)
	e.Fprint(w, "\n")
}

// Fprintf prints a formatted message to the generator's output stream.
func (e *Formatter) Fprintf(w io.Writer, format string, a ...interface{}) {
	_, err := fmt.Fprintf(w, format, a...)
	contract.IgnoreError(err)
}

// Fgen generates code for a list of strings and expression trees. The former are written directly to the destination;
// the latter are recursively generated using the appropriate gen* functions.
func (e *Formatter) Fgen(w io.Writer, vs ...interface{}) {
	for _, v := range vs {
		switch v := v.(type) {
		case string:
			_, err := fmt.Fprint(w, v)
			contract.IgnoreError(err)
		case *hclsyntax.BinaryOpExpr:
			e.g.GenBinaryOpExpression(w, v)
		case *hclsyntax.ConditionalExpr:
			e.g.GenConditionalExpression(w, v)
		case *hclsyntax.FunctionCallExpr:
			e.g.GenFunctionCallExpression(w, v)
		case *hclsyntax.IndexExpr:
			e.g.GenIndexExpression(w, v)
		case *hclsyntax.LiteralValueExpr:
			e.g.GenLiteralValueExpression(w, v)
		case *hclsyntax.ObjectConsExpr:
			e.g.GenObjectConsExpression(w, v)
		case *hclsyntax.ScopeTraversalExpr:
			e.g.GenScopeTraversalExpression(w, v)
		case *hclsyntax.TemplateExpr:
			e.g.GenTemplateExpression(w, v)
		case *hclsyntax.TemplateWrapExpr:
			e.g.GenTemplateWrapExpression(w, v)
		case *hclsyntax.TupleConsExpr:
			e.g.GenTupleConsExpression(w, v)
		case *hclsyntax.UnaryOpExpr:
			e.g.GenUnaryOpExpression(w, v)
		case hclsyntax.Expression:
			e.g.GenUnsupportedExpression(w, v)
		default:
			contract.Failf("unexpected value of type %T in Fgen", v)
		}
	}
}

// Fgenf generates code using a format string and its arguments. Any arguments that are expressions are wrapped in a
// FormatFunc that calls the appropriate recursive generation function. This allows for the composition of standard
// format strings with expression code gen (e.g. `e.Fgenf(w, "%v.toUpperCase()", arg)`, where `arg` is an expression
// tree).
func (e *Formatter) Fgenf(w io.Writer, format string, args ...interface{}) {
	for i := range args {
		if node, ok := args[i].(hclsyntax.Expression); ok {
			args[i] = FormatFunc(func(f fmt.State, c rune) { e.Fgen(f, node) })
		}
	}
	fmt.Fprintf(w, format, args...)
}

// FormatFunc is a function type that implements the fmt.Formatter interface. This can be used to conveniently
// implement this interface for types defined in other packages.
type FormatFunc func(f fmt.State, c rune)

// Format invokes the FormatFunc with the given arguments.
func (p FormatFunc) Format(f fmt.State, c rune) {
	p(f, c)
}
