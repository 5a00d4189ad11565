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
	"io"
	"io/ioutil"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pkg/errors"
)

// File is a parsed binding script.
type File struct {
	Name  string
	Body  *hclsyntax.Body
	Bytes []byte

	hclFile *hcl.File
}

// ParseFile reads and parses a single binding script. A non-nil error is returned only if the source could not be
// read; syntax errors are reported as diagnostics, in which case the returned file may be nil.
func ParseFile(r io.Reader, filename string) (*File, hcl.Diagnostics, error) {
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", filename)
	}

	hclFile, diagnostics := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diagnostics.HasErrors() {
		return nil, diagnostics, nil
	}

	body, ok := hclFile.Body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{errorf(hcl.Range{Filename: filename}, "%s is not native HCL syntax", filename)}, nil
	}

	return &File{
		Name:    filename,
		Body:    body,
		Bytes:   hclFile.Bytes,
		hclFile: hclFile,
	}, diagnostics, nil
}
