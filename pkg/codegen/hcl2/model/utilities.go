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

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

type stringSet map[string]struct{}

func (ss stringSet) add(s string) {
	ss[s] = struct{}{}
}

func (ss stringSet) has(s string) bool {
	_, ok := ss[s]
	return ok
}

func sourceOrderBlocks(blocks []*hclsyntax.Block) []*hclsyntax.Block {
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Range().Start.Byte < blocks[j].Range().Start.Byte
	})
	return blocks
}

func sourceOrderAttributes(attrMap map[string]*hclsyntax.Attribute) []*hclsyntax.Attribute {
	var attrs []*hclsyntax.Attribute
	for _, attr := range attrMap {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Range().Start.Byte < attrs[j].Range().Start.Byte
	})
	return attrs
}

// maxSuggestionDistance bounds how far a candidate may be from a misspelled name and still be suggested.
const maxSuggestionDistance = 3

// Suggest returns the candidate closest to name by edit distance, if any candidate is close enough to be a plausible
// misspelling. Ties go to the candidate that sorts first.
func Suggest(name string, candidates []string) (string, bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	source := []rune(name)
	best, bestDistance := "", maxSuggestionDistance+1
	for _, c := range sorted {
		if c == name {
			continue
		}
		d := levenshtein.DistanceForStrings(source, []rune(c), levenshtein.DefaultOptions)
		if d < bestDistance && d < len(source) {
			best, bestDistance = c, d
		}
	}
	return best, best != ""
}
