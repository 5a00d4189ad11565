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
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// ScopeBlock is a `scope` block. Its statements run in a fresh frame that is released when the block ends.
type ScopeBlock struct {
	Syntax *hclsyntax.Block

	Body []Statement
}

func (s *ScopeBlock) SyntaxNode() hclsyntax.Node {
	return s.Syntax
}

func (*ScopeBlock) isStatement() {}
