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
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func diagf(severity hcl.DiagnosticSeverity, subject hcl.Range, f string, args ...interface{}) *hcl.Diagnostic {
	message := fmt.Sprintf(f, args...)
	return &hcl.Diagnostic{
		Severity: severity,
		Summary:  message,
		Subject:  &subject,
	}
}

func errorf(subject hcl.Range, f string, args ...interface{}) *hcl.Diagnostic {
	return diagf(hcl.DiagError, subject, f, args...)
}

func labelsErrorf(block *hclsyntax.Block, f string, args ...interface{}) *hcl.Diagnostic {
	startRange := block.TypeRange
	if len(block.LabelRanges) > 0 {
		startRange = block.LabelRanges[0]
	}
	return errorf(hcl.RangeBetween(startRange, block.OpenBraceRange), f, args...)
}

func unsupportedBlock(block *hclsyntax.Block, container string) *hcl.Diagnostic {
	return errorf(block.TypeRange, "unsupported block of type %q in %s", block.Type, container)
}

func unsupportedAttribute(attr *hclsyntax.Attribute, container string) *hcl.Diagnostic {
	return errorf(attr.NameRange, "unsupported attribute %q in %s", attr.Name, container)
}

func missingValue(block *hclsyntax.Block) *hcl.Diagnostic {
	return errorf(hcl.RangeBetween(block.OpenBraceRange, block.CloseBraceRange),
		"%s block is missing its \"value\" attribute", block.Type)
}

func undefinedVariable(name string, suggestion string, subject hcl.Range) *hcl.Diagnostic {
	d := errorf(subject, "undefined variable %q", name)
	if suggestion != "" {
		d.Detail = fmt.Sprintf("Did you mean %q?", suggestion)
	}
	return d
}

func tableError(err error, subject hcl.Range) *hcl.Diagnostic {
	return errorf(subject, "%v", err)
}
