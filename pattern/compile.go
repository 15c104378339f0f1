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

package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Single-wildcard rewrite rules. A "*" surrounded by (or trailed by) anything
// other than another "*" becomes a one-segment character class. The declared
// parentheses of captured markers pass through untouched, which is what turns
// "(*)" into a capture group.
var (
	wildcardBetween = regexp.MustCompile(`([^\*])\*([^\*])`)
	wildcardAtEnd   = regexp.MustCompile(`([^\*])\*$`)
)

// escapedExtension is the optional-extension marker after dot escaping.
// It rewrites to an optional dot followed by an optional capture, so both
// "/report/summary.pdf" and "/report/summary" match.
const (
	escapedExtension = `(\.(*))`
	extensionCapture = `\.?([^/]+)?`
)

// Segment character classes. The final segment's wildcards must not swallow
// a file-extension dot, or "(*)(.(*))" could never separate name from
// extension.
const (
	rootSegment = `[^/]+`
	endSegment  = `[^/\.]+`
)

// Compiled is one executable logical variant of a parsed pattern.
//
// Compiled values are immutable and safe for concurrent use.
type Compiled struct {
	variant    string
	rx         *regexp.Regexp
	groupCount int
	slashCount int
	exact      bool
	static     bool
	extGroup   int
}

// Compile builds a matcher for every logical variant, in variant order.
//
// Example:
//
//	data, _ := pattern.Parse("/blog/(*)/(**)")
//	compiled, err := data.Compile()
//	// compiled[0] matches "/blog/2024/some/long/path"
func (d *Data) Compile() ([]*Compiled, error) {
	out := make([]*Compiled, 0, len(d.variants))
	for _, v := range d.variants {
		c, err := compileVariant(v, d.hasOptionalExtension)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// compileVariant converts one logical variant into an anchored regular
// expression. The variant splits at its last slash: single wildcards in the
// root half match any one segment, single wildcards in the final half stop
// at a dot so extension captures stay separable. A trailing "/??" tolerates
// one trailing slash on matched paths.
func compileVariant(variant string, declaredExtension bool) (*Compiled, error) {
	escaped := strings.ReplaceAll(variant, ".", `\.`)
	escaped = strings.ReplaceAll(escaped, "+", `\+`)

	root := escaped
	end := ""
	if i := strings.LastIndexByte(escaped, '/'); i >= 0 {
		root, end = escaped[:i], escaped[i:]
	}

	expr := "^" + rewriteHalf(root, rootSegment) + rewriteHalf(end, endSegment) + "/??$"
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", variant, err)
	}

	c := &Compiled{
		variant:    variant,
		rx:         rx,
		groupCount: rx.NumSubexp(),
		slashCount: strings.Count(variant, "/"),
		extGroup:   -1,
	}
	if declaredExtension && strings.Contains(variant, OptionalExtension) {
		c.extGroup = c.groupCount - 1
	}
	c.exact = !strings.Contains(variant, DoubleWildcard) &&
		!strings.Contains(variant, optionalMarker) &&
		!strings.Contains(variant, OptionalExtension)
	c.static = c.exact && !strings.Contains(variant, Wildcard)

	return c, nil
}

func rewriteHalf(half, segment string) string {
	half = strings.ReplaceAll(half, escapedExtension, extensionCapture)
	half = wildcardBetween.ReplaceAllString(half, "${1}"+segment+"${2}")
	half = wildcardAtEnd.ReplaceAllString(half, "${1}"+segment)

	return strings.ReplaceAll(half, DoubleWildcard, ".*")
}

// Variant returns the logical variant text this matcher was compiled from.
func (c *Compiled) Variant() string { return c.variant }

// Regexp returns the compiled matcher. The expression is anchored at both
// ends and tolerates a single trailing slash.
func (c *Compiled) Regexp() *regexp.Regexp { return c.rx }

// GroupCount returns the number of capture groups in the matcher.
func (c *Compiled) GroupCount() int { return c.groupCount }

// SlashCount returns the number of "/" separators in the variant. For exact
// variants this equals the separator count of every path the matcher can
// accept, once a trailing slash is discounted.
func (c *Compiled) SlashCount() int { return c.slashCount }

// Exact reports whether the variant matches a fixed number of path segments:
// no double wildcards, no optional tokens, no optional extension. Exact
// variants can be skipped by separator count before running the matcher.
func (c *Compiled) Exact() bool { return c.exact }

// Static reports whether the variant is pure literal text with no captures.
func (c *Compiled) Static() bool { return c.static }

// HasOptionalExtension reports whether the variant carries the trailing
// extension capture.
func (c *Compiled) HasOptionalExtension() bool { return c.extGroup >= 0 }

// ExtensionGroup returns the zero-based capture-group index of the optional
// extension, or -1 when the variant declares none. It is always the last
// group of the variant.
func (c *Compiled) ExtensionGroup() int { return c.extGroup }
