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

// Package version orders URL mapping version identifiers.
//
// Mapping versions are dotted identifiers such as "1.0" or "2.1.3". They are
// not semantic versions: segments compare numerically when both sides are
// numeric and lexicographically otherwise, so "2.0" orders above "1.10" and
// "1.0.1" orders above "1.0". The wildcard Any matches every version and
// always orders below an exact version during mapping precedence.
package version

import (
	"strconv"
	"strings"
)

// Any is the wildcard version. A mapping declared with Any accepts requests
// for every version and yields precedence to mappings with exact versions.
const Any = "*"

// IsAny reports whether v is the wildcard version.
func IsAny(v string) bool { return v == Any }

// Compare orders two exact version identifiers. It returns a negative value
// when a orders below b, zero when they are equal, and a positive value
// otherwise.
//
// Identifiers split on dots. Segments compare as integers when both are
// numeric and as plain strings otherwise; when one identifier is a prefix of
// the other, the longer one orders higher.
//
//	version.Compare("2.0", "1.10")  // > 0
//	version.Compare("1.0", "1.0.1") // < 0
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := min(len(as), len(bs))
	for i := range n {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}

	return len(as) - len(bs)
}

func compareSegment(a, b string) int {
	an, aok := parseNumeric(a)
	bn, bok := parseNumeric(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a, b)
}

func parseNumeric(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}
