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
	"regexp"
	"strings"
)

// Wildcard markers recognized inside declared patterns.
const (
	// Wildcard matches exactly one path segment without capturing it.
	Wildcard = "*"

	// DoubleWildcard matches any number of path segments without capturing.
	DoubleWildcard = "**"

	// CapturedWildcard matches exactly one path segment and captures it.
	CapturedWildcard = "(*)"

	// CapturedDoubleWildcard matches any number of path segments and
	// captures them as a single slash-joined value.
	CapturedDoubleWildcard = "(**)"

	// OptionalExtension marks a captured, always-optional file extension at
	// the end of a pattern, as in "/report/(*)(.(*))".
	OptionalExtension = "(.(*))"

	// optionalMarker flags a token (or the extension suffix) as omittable.
	optionalMarker = "?"
)

// marker matches one captured wildcard together with an immediately
// following optional flag: "(*)", "(**)", "(*)?", or "(**)?". It is the one
// grammar shared by the forward compiler and the reverse builder.
var marker = regexp.MustCompile(`\(\*\*?\)\??`)

// Kind classifies a pattern token.
type Kind int

const (
	// KindStatic is a literal segment with no wildcard markers.
	KindStatic Kind = iota

	// KindWildcard is a bare single-segment wildcard: "*".
	KindWildcard

	// KindCapturedWildcard is a capturing single-segment wildcard: "(*)".
	KindCapturedWildcard

	// KindDoubleWildcard is a bare multi-segment wildcard: "**".
	KindDoubleWildcard

	// KindCapturedDoubleWildcard is a capturing multi-segment wildcard: "(**)".
	KindCapturedDoubleWildcard

	// KindMixed is a segment embedding wildcards in literal text, such as
	// "report-(*)" or "v*".
	KindMixed
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindWildcard:
		return "wildcard"
	case KindCapturedWildcard:
		return "captured-wildcard"
	case KindDoubleWildcard:
		return "double-wildcard"
	case KindCapturedDoubleWildcard:
		return "captured-double-wildcard"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// Token is one "/"-separated element of a declared pattern.
type Token struct {
	// Raw is the token text as declared, wildcard and optional markers
	// included, with any trailing optional-extension suffix removed.
	Raw string

	// Kind classifies the token.
	Kind Kind

	// Optional reports whether the token carries a trailing "?" marker and
	// may therefore be omitted from the path entirely.
	Optional bool

	// CaptureCount is the number of capture groups the token contributes to
	// a compiled variant.
	CaptureCount int
}

func newToken(raw string) Token {
	base := strings.TrimSuffix(raw, optionalMarker)
	return Token{
		Raw:          raw,
		Kind:         classify(base),
		Optional:     strings.HasSuffix(raw, optionalMarker),
		CaptureCount: len(marker.FindAllString(base, -1)),
	}
}

func classify(base string) Kind {
	switch base {
	case Wildcard:
		return KindWildcard
	case CapturedWildcard:
		return KindCapturedWildcard
	case DoubleWildcard:
		return KindDoubleWildcard
	case CapturedDoubleWildcard:
		return KindCapturedDoubleWildcard
	}
	if strings.Contains(base, Wildcard) {
		return KindMixed
	}
	return KindStatic
}

// HasWildcard reports whether the token contains any wildcard marker,
// captured or bare, single or double.
func (t Token) HasWildcard() bool {
	return strings.Contains(t.Raw, Wildcard)
}

// HasDoubleWildcard reports whether the token contains a multi-segment
// wildcard marker.
func (t Token) HasDoubleWildcard() bool {
	return strings.Contains(t.Raw, DoubleWildcard)
}

// IsStatic reports whether the token is non-empty literal text. Empty tokens
// (a pattern of just "/") are neither static nor wildcards.
func (t Token) IsStatic() bool {
	return t.Raw != "" && !t.HasWildcard()
}

// SubstituteMarkers replaces every captured wildcard marker in token, left to
// right, with the value returned by resolve. The resolve callback receives
// the literal marker text including any optional flag. An error from resolve
// aborts the substitution and is returned unchanged.
func SubstituteMarkers(token string, resolve func(marker string) (string, error)) (string, error) {
	locs := marker.FindAllStringIndex(token, -1)
	if len(locs) == 0 {
		return token, nil
	}

	var b strings.Builder
	b.Grow(len(token))
	last := 0
	for _, loc := range locs {
		value, err := resolve(token[loc[0]:loc[1]])
		if err != nil {
			return "", err
		}
		b.WriteString(token[last:loc[0]])
		b.WriteString(value)
		last = loc[1]
	}
	b.WriteString(token[last:])

	return b.String(), nil
}

// HasMarker reports whether token contains at least one captured wildcard
// marker.
func HasMarker(token string) bool {
	return marker.MatchString(token)
}
