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
	"encoding/json"
	"strings"
	"unicode"

	"github.com/mbovo/mutscope/pkg/util/contract"
)

// isReservedWord returns true if s is a reserved word in TypeScript.
func isReservedWord(s string) bool {
	switch s {
	case "break", "case", "catch", "class", "const", "continue", "debugger", "default", "delete", "do", "else",
		"enum", "export", "extends", "false", "finally", "for", "function", "if", "import", "in", "instanceof", "new",
		"null", "return", "super", "switch", "this", "throw", "true", "try", "typeof", "var", "void", "while",
		"with", "let", "static", "yield", "await", "implements", "interface", "package", "private", "protected",
		"public", "undefined":
		return true
	default:
		return false
	}
}

// isLegalIdentifierStart returns true if it is legal for c to be the first character of a JavaScript identifier as per
// ECMA-262.
func isLegalIdentifierStart(c rune) bool {
	return c == '$' || c == '_' ||
		unicode.In(c, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)
}

// isLegalIdentifierPart returns true if it is legal for c to be part of a JavaScript identifier (besides the first
// character) as per ECMA-262.
func isLegalIdentifierPart(c rune) bool {
	return isLegalIdentifierStart(c) || unicode.In(c, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// isLegalIdentifier returns true if s is a legal JavaScript identifier as per ECMA-262.
func isLegalIdentifier(s string) bool {
	if s == "" || isReservedWord(s) {
		return false
	}
	for i, c := range s {
		if i == 0 && !isLegalIdentifierStart(c) || i > 0 && !isLegalIdentifierPart(c) {
			return false
		}
	}
	return true
}

// cleanName replaces characters that are not allowed in JavaScript identifiers with underscores. Reserved words get
// a trailing underscore.
func cleanName(name string) string {
	if isReservedWord(name) {
		return name + "_"
	}

	var builder strings.Builder
	for i, c := range name {
		switch {
		case i == 0 && !isLegalIdentifierStart(c) && isLegalIdentifierPart(c):
			builder.WriteRune('_')
			builder.WriteRune(c)
		case !isLegalIdentifierPart(c):
			builder.WriteRune('_')
		default:
			builder.WriteRune(c)
		}
	}
	return builder.String()
}

// tsName returns the TypeScript spelling of a binding or object key name.
func tsName(name string, isObjectKey bool) string {
	if !isLegalIdentifier(name) {
		if isObjectKey {
			return jsString(name)
		}
		return cleanName(name)
	}
	return name
}

// jsString returns s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	contract.AssertNoError(enc.Encode(s))
	return strings.TrimSuffix(buf.String(), "\n")
}

// escapeTemplateText escapes s for use inside a JavaScript template literal.
func escapeTemplateText(s string) string {
	s = strings.Replace(s, "\\", "\\\\", -1)
	s = strings.Replace(s, "`", "\\`", -1)
	return strings.Replace(s, "${", "\\${", -1)
}
