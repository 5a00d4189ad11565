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

package nodejs

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model"
	"github.com/mbovo/mutscope/pkg/codegen/hcl2/model/format"
	"github.com/mbovo/mutscope/pkg/mutability"
	"github.com/mbovo/mutscope/pkg/util/contract"
)

type generator struct {
	*format.Formatter

	program     *model.Program
	diagnostics hcl.Diagnostics
}

// GenerateProgram generates a TypeScript module equivalent to the given program. Immutable declarations become
// `const` bindings, mutable declarations become `let` bindings, and scope blocks become block statements. The result
// maps file names to contents.
//
// HCL's + is numeric only. Operands that are string literals or templates are converted with Number(), but a
// reference to a binding that holds a string is emitted as-is and concatenates in TypeScript.
func GenerateProgram(program *model.Program) (map[string][]byte, hcl.Diagnostics) {
	contract.Require(program != nil, "program")

	g := &generator{program: program}
	g.Formatter = format.NewFormatter(g)

	var index bytes.Buffer
	g.genPreamble(&index)
	for _, stmt := range program.Statements {
		g.genStatement(&index, stmt)
	}

	return map[string][]byte{
		"index.ts": index.Bytes(),
	}, g.diagnostics
}

func (g *generator) genPreamble(w io.Writer) {
	g.Fprintln(w, "// Code generated by mutscope; DO NOT EDIT.")
	g.Fprintln(w)
}

func (g *generator) genStatement(w io.Writer, stmt model.Statement) {
	switch stmt := stmt.(type) {
	case *model.Declaration:
		keyword := "const"
		if stmt.Mutability == mutability.Mutable {
			keyword = "let"
		}
		g.Fgenf(w, "%s%s %s = %v;\n", g.Indent, keyword, tsName(stmt.Name, false), stmt.Value)
	case *model.Assignment:
		g.Fgenf(w, "%s%s = %v;\n", g.Indent, tsName(stmt.Name, false), stmt.Value)
	case *model.ScopeBlock:
		g.Fprintf(w, "%s{\n", g.Indent)
		g.Indented(func() {
			for _, s := range stmt.Body {
				g.genStatement(w, s)
			}
		})
		g.Fprintf(w, "%s}\n", g.Indent)
	default:
		contract.Failf("unexpected statement of type %T (%v)", stmt, stmt.SyntaxNode().Range())
	}
}

// genOperand generates an operand of a binary or conditional expression, parenthesizing it if it is itself a binary
// or conditional expression.
func (g *generator) genOperand(w io.Writer, expr hclsyntax.Expression) {
	switch expr.(type) {
	case *hclsyntax.BinaryOpExpr, *hclsyntax.ConditionalExpr:
		g.Fgenf(w, "(%v)", expr)
	default:
		g.Fgen(w, expr)
	}
}

var binaryOperators = map[*hclsyntax.Operation]string{
	hclsyntax.OpLogicalOr:          "||",
	hclsyntax.OpLogicalAnd:         "&&",
	hclsyntax.OpEqual:              "===",
	hclsyntax.OpNotEqual:           "!==",
	hclsyntax.OpGreaterThan:        ">",
	hclsyntax.OpGreaterThanOrEqual: ">=",
	hclsyntax.OpLessThan:           "<",
	hclsyntax.OpLessThanOrEqual:    "<=",
	hclsyntax.OpAdd:                "+",
	hclsyntax.OpSubtract:           "-",
	hclsyntax.OpMultiply:           "*",
	hclsyntax.OpDivide:             "/",
	hclsyntax.OpModulo:             "%",
}

// isStringExpression returns true if expr is statically known to produce a string.
func isStringExpression(expr hclsyntax.Expression) bool {
	switch expr := expr.(type) {
	case *hclsyntax.TemplateExpr:
		return true
	case *hclsyntax.LiteralValueExpr:
		return expr.Val.Type() == cty.String
	default:
		return false
	}
}

// genArithmeticOperand generates an operand of an HCL arithmetic operator. HCL converts string operands to numbers,
// so operands known to be strings are wrapped in Number() to keep TypeScript's + from concatenating.
func (g *generator) genArithmeticOperand(w io.Writer, expr hclsyntax.Expression) {
	if isStringExpression(expr) {
		g.Fgenf(w, "Number(%v)", expr)
		return
	}
	g.genOperand(w, expr)
}

func (g *generator) GenBinaryOpExpression(w io.Writer, expr *hclsyntax.BinaryOpExpr) {
	op, ok := binaryOperators[expr.Op]
	if !ok {
		g.GenUnsupportedExpression(w, expr)
		return
	}
	if expr.Op == hclsyntax.OpAdd {
		g.genArithmeticOperand(w, expr.LHS)
		g.Fprint(w, " + ")
		g.genArithmeticOperand(w, expr.RHS)
		return
	}
	g.genOperand(w, expr.LHS)
	g.Fprintf(w, " %s ", op)
	g.genOperand(w, expr.RHS)
}

func (g *generator) GenConditionalExpression(w io.Writer, expr *hclsyntax.ConditionalExpr) {
	g.genOperand(w, expr.Condition)
	g.Fprint(w, " ? ")
	g.genOperand(w, expr.TrueResult)
	g.Fprint(w, " : ")
	g.genOperand(w, expr.FalseResult)
}

func (g *generator) genArgs(w io.Writer, args []hclsyntax.Expression) {
	for i, arg := range args {
		if i > 0 {
			g.Fprint(w, ", ")
		}
		g.Fgen(w, arg)
	}
}

func (g *generator) GenFunctionCallExpression(w io.Writer, expr *hclsyntax.FunctionCallExpr) {
	args := expr.Args
	switch {
	case expr.Name == "upper" && len(args) == 1:
		g.Fgenf(w, "%v.toUpperCase()", args[0])
	case expr.Name == "lower" && len(args) == 1:
		g.Fgenf(w, "%v.toLowerCase()", args[0])
	case expr.Name == "strlen" && len(args) == 1:
		g.Fgenf(w, "%v.length", args[0])
	case expr.Name == "jsonencode" && len(args) == 1:
		g.Fgenf(w, "JSON.stringify(%v)", args[0])
	case expr.Name == "abs" && len(args) == 1:
		g.Fgenf(w, "Math.abs(%v)", args[0])
	case expr.Name == "max" || expr.Name == "min":
		g.Fprintf(w, "Math.%s(", expr.Name)
		g.genArgs(w, args)
		g.Fprint(w, ")")
	case expr.Name == "concat" && len(args) > 0:
		g.Fgenf(w, "%v.concat(", args[0])
		g.genArgs(w, args[1:])
		g.Fprint(w, ")")
	default:
		g.diagnostics = append(g.diagnostics, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  fmt.Sprintf("no TypeScript equivalent for call to %q with %d arguments", expr.Name, len(args)),
			Subject:  expr.NameRange.Ptr(),
		})
		g.Fprintf(w, "%s(", expr.Name)
		g.genArgs(w, args)
		g.Fprint(w, ")")
	}
}

func (g *generator) GenIndexExpression(w io.Writer, expr *hclsyntax.IndexExpr) {
	g.Fgenf(w, "%v[%v]", expr.Collection, expr.Key)
}

func (g *generator) genValue(w io.Writer, v cty.Value, rng hcl.Range) {
	switch {
	case v.IsNull():
		g.Fprint(w, "undefined")
	case v.Type() == cty.String:
		g.Fprint(w, jsString(v.AsString()))
	case v.Type() == cty.Number:
		g.Fprint(w, v.AsBigFloat().Text('f', -1))
	case v.Type() == cty.Bool:
		g.Fprintf(w, "%v", v.True())
	default:
		g.diagnostics = append(g.diagnostics, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("unsupported literal of type %s", v.Type().FriendlyName()),
			Subject:  rng.Ptr(),
		})
		g.Fprint(w, "undefined")
	}
}

func (g *generator) GenLiteralValueExpression(w io.Writer, expr *hclsyntax.LiteralValueExpr) {
	g.genValue(w, expr.Val, expr.SrcRange)
}

func (g *generator) GenObjectConsExpression(w io.Writer, expr *hclsyntax.ObjectConsExpr) {
	if len(expr.Items) == 0 {
		g.Fprint(w, "{}")
		return
	}

	g.Fprint(w, "{")
	for i, item := range expr.Items {
		if i > 0 {
			g.Fprint(w, ",")
		}
		if key := hcl.ExprAsKeyword(item.KeyExpr); key != "" {
			g.Fprintf(w, " %s", tsName(key, true))
		} else if keyExpr, ok := item.KeyExpr.(*hclsyntax.ObjectConsKeyExpr); ok {
			g.Fgenf(w, " [%v]", keyExpr.Wrapped)
		} else {
			g.Fgenf(w, " [%v]", item.KeyExpr)
		}
		g.Fgenf(w, ": %v", item.ValueExpr)
	}
	g.Fprint(w, " }")
}

func (g *generator) GenScopeTraversalExpression(w io.Writer, expr *hclsyntax.ScopeTraversalExpr) {
	g.Fprint(w, tsName(expr.Traversal.RootName(), false))
	for _, part := range expr.Traversal[1:] {
		switch part := part.(type) {
		case hcl.TraverseAttr:
			if isLegalIdentifier(part.Name) {
				g.Fprintf(w, ".%s", part.Name)
			} else {
				g.Fprintf(w, "[%s]", jsString(part.Name))
			}
		case hcl.TraverseIndex:
			g.Fprint(w, "[")
			g.genValue(w, part.Key, part.SrcRange)
			g.Fprint(w, "]")
		default:
			contract.Failf("unexpected traverser of type %T (%v)", part, part.SourceRange())
		}
	}
}

func (g *generator) GenTemplateExpression(w io.Writer, expr *hclsyntax.TemplateExpr) {
	var literal strings.Builder
	isLiteral := true
	for _, part := range expr.Parts {
		if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String {
			literal.WriteString(lit.Val.AsString())
		} else {
			isLiteral = false
			break
		}
	}
	if isLiteral {
		g.Fprint(w, jsString(literal.String()))
		return
	}

	g.Fprint(w, "`")
	for _, part := range expr.Parts {
		if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String {
			g.Fprint(w, escapeTemplateText(lit.Val.AsString()))
		} else {
			g.Fgenf(w, "${%v}", part)
		}
	}
	g.Fprint(w, "`")
}

func (g *generator) GenTemplateWrapExpression(w io.Writer, expr *hclsyntax.TemplateWrapExpr) {
	g.Fgen(w, expr.Wrapped)
}

func (g *generator) GenTupleConsExpression(w io.Writer, expr *hclsyntax.TupleConsExpr) {
	g.Fprint(w, "[")
	g.genArgs(w, expr.Exprs)
	g.Fprint(w, "]")
}

func (g *generator) GenUnaryOpExpression(w io.Writer, expr *hclsyntax.UnaryOpExpr) {
	switch expr.Op {
	case hclsyntax.OpLogicalNot:
		g.Fprint(w, "!")
	case hclsyntax.OpNegate:
		g.Fprint(w, "-")
	default:
		g.GenUnsupportedExpression(w, expr)
		return
	}
	// HCL drops source parentheses, so a nested negation must be re-parenthesized to avoid emitting `--x`.
	if _, ok := expr.Val.(*hclsyntax.UnaryOpExpr); ok {
		g.Fgenf(w, "(%v)", expr.Val)
		return
	}
	g.genOperand(w, expr.Val)
}

func (g *generator) GenUnsupportedExpression(w io.Writer, expr hclsyntax.Expression) {
	g.diagnostics = append(g.diagnostics, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("unsupported expression of type %T", expr),
		Subject:  expr.Range().Ptr(),
	})
	g.Fprint(w, "undefined")
}

var _ format.ExpressionGenerator = (*generator)(nil)
