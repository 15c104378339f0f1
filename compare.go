// Copyright 2025 The Rivaas Authors
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

package urlmapping

import (
	"sort"

	"rivaas.dev/urlmapping/version"
)

// Compare orders two mappings by match precedence. A positive result means a
// takes precedence over b, negative the reverse, zero that neither wins.
// Tables sort mappings by descending Compare so the most specific mapping is
// consulted first.
//
// Specificity is decided in order by: fewer multi-segment wildcard tokens,
// fewer single-segment wildcard tokens, having any static text at all, more
// static tokens, earliest positional wildcard, more applied constraint
// rules, and finally version, where an exact version outranks version.Any
// and higher versions outrank lower ones.
func Compare(a, b *Mapping) int {
	if a == b {
		return 0
	}

	if d := b.data.DoubleWildcardTokens() - a.data.DoubleWildcardTokens(); d != 0 {
		return d
	}
	if d := b.data.WildcardTokens() - a.data.WildcardTokens(); d != 0 {
		return d
	}

	aStatic, bStatic := a.data.StaticTokens(), b.data.StaticTokens()
	if bStatic == 0 && aStatic > 0 {
		return 1
	}
	if aStatic == 0 && bStatic > 0 {
		return -1
	}
	if d := aStatic - bStatic; d != 0 {
		return d
	}

	n := a.data.TokenCount()
	if bn := b.data.TokenCount(); bn < n {
		n = bn
	}
	for i := 0; i < n; i++ {
		aw := a.data.Token(i).HasWildcard()
		bw := b.data.Token(i).HasWildcard()
		if aw && !bw {
			return -1
		}
		if !aw && bw {
			return 1
		}
	}

	if d := appliedConstraints(a) - appliedConstraints(b); d != 0 {
		return d
	}

	av, bv := a.version, b.version
	switch {
	case av == bv:
		return 0
	case version.IsAny(av):
		return -1
	case version.IsAny(bv):
		return 1
	default:
		return version.Compare(av, bv)
	}
}

// appliedConstraints sums the validation rules attached across all of the
// mapping's constraints.
func appliedConstraints(m *Mapping) int {
	total := 0
	for _, c := range m.constraints {
		total += c.AppliedConstraintCount()
	}
	return total
}

// SortByPrecedence sorts mappings in place, most specific first. The sort is
// stable, so mappings that compare equal keep their registration order.
func SortByPrecedence(mappings []*Mapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return Compare(mappings[i], mappings[j]) > 0
	})
}
