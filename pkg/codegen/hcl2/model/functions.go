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
	"sort"

	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// builtinFunctions are the functions callable from script expressions.
var builtinFunctions = map[string]function.Function{
	"abs":        stdlib.AbsoluteFunc,
	"concat":     stdlib.ConcatFunc,
	"jsonencode": stdlib.JSONEncodeFunc,
	"lower":      stdlib.LowerFunc,
	"max":        stdlib.MaxFunc,
	"min":        stdlib.MinFunc,
	"strlen":     stdlib.StrlenFunc,
	"upper":      stdlib.UpperFunc,
}

// BuiltinFunctionNames returns the names of the functions available to script expressions, sorted.
func BuiltinFunctionNames() []string {
	names := make([]string, 0, len(builtinFunctions))
	for name := range builtinFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltinFunction returns true if name is callable from script expressions.
func IsBuiltinFunction(name string) bool {
	_, ok := builtinFunctions[name]
	return ok
}
