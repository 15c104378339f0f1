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
	"errors"
	"fmt"
	"strings"
)

// Parse-time validation errors.
var (
	// ErrEmptyPattern is returned when the declared pattern is empty.
	ErrEmptyPattern = errors.New("pattern must not be empty")

	// ErrMissingLeadingSlash is returned when the declared pattern does not
	// begin with "/".
	ErrMissingLeadingSlash = errors.New(`pattern must start with "/"`)
)

// Data is the parsed form of one declared URL mapping pattern: the classified
// token sequence, the logical variants the pattern expands into, and whether
// the pattern declares an optional file extension.
//
// Data values are immutable once returned by Parse and safe for concurrent
// use.
type Data struct {
	pattern              string
	tokens               []Token
	variants             []string
	hasOptionalExtension bool

	wildcardTokens       int
	doubleWildcardTokens int
	staticTokens         int
}

// Parse validates and tokenizes a declared pattern.
//
// The pattern must be non-empty and start with "/". A trailing "(.(*))" or
// "(.(*))?" suffix is recorded as the optional extension and removed from the
// final token. Trailing optional tokens expand into additional logical
// variants, shortest last:
//
//	data, _ := pattern.Parse("/archive/(*)?")
//	data.Variants() // ["/archive/(*)?", "/archive"]
func Parse(text string) (*Data, error) {
	if text == "" {
		return nil, ErrEmptyPattern
	}
	if !strings.HasPrefix(text, "/") {
		return nil, fmt.Errorf("%w: %q", ErrMissingLeadingSlash, text)
	}

	working, hasExt := stripOptionalExtension(text)

	raw := strings.Split(working[1:], "/")
	tokens := make([]Token, len(raw))
	for i, r := range raw {
		tokens[i] = newToken(r)
	}

	variants := []string{text}
	end := len(raw)
	for end > 0 && tokens[end-1].Optional {
		end--
		variants = append(variants, "/"+strings.Join(raw[:end], "/"))
	}

	d := &Data{
		pattern:              text,
		tokens:               tokens,
		variants:             variants,
		hasOptionalExtension: hasExt,
	}
	for _, t := range tokens {
		switch {
		case t.HasDoubleWildcard():
			d.doubleWildcardTokens++
			d.wildcardTokens++
		case t.HasWildcard():
			d.wildcardTokens++
		case t.Raw != "":
			d.staticTokens++
		}
	}

	return d, nil
}

// stripOptionalExtension removes a trailing "(.(*))" or "(.(*))?" suffix.
// The marker only declares an extension when it follows at least one
// non-slash character in the final segment; a bare "/(.(*))" segment is left
// alone and compiled literally.
func stripOptionalExtension(text string) (string, bool) {
	t := text
	switch {
	case strings.HasSuffix(t, OptionalExtension+optionalMarker):
		t = strings.TrimSuffix(t, OptionalExtension+optionalMarker)
	case strings.HasSuffix(t, OptionalExtension):
		t = strings.TrimSuffix(t, OptionalExtension)
	default:
		return text, false
	}
	if t == "" || strings.HasSuffix(t, "/") {
		return text, false
	}

	return t, true
}

// Pattern returns the declared pattern text.
func (d *Data) Pattern() string { return d.pattern }

// String returns the declared pattern text.
func (d *Data) String() string { return d.pattern }

// Tokens returns a copy of the classified token sequence. The optional
// extension suffix is not part of any token; see HasOptionalExtension.
func (d *Data) Tokens() []Token {
	out := make([]Token, len(d.tokens))
	copy(out, d.tokens)

	return out
}

// TokenCount returns the number of tokens in the pattern.
func (d *Data) TokenCount() int { return len(d.tokens) }

// Token returns the token at index i.
func (d *Data) Token(i int) Token { return d.tokens[i] }

// Variants returns a copy of the pattern's logical variants, most specific
// first. The first variant is always the declared pattern itself.
func (d *Data) Variants() []string {
	out := make([]string, len(d.variants))
	copy(out, d.variants)

	return out
}

// HasOptionalExtension reports whether the pattern declares a trailing
// "(.(*))" extension capture.
func (d *Data) HasOptionalExtension() bool { return d.hasOptionalExtension }

// WildcardTokens returns the number of tokens containing any wildcard
// marker. Tokens with double wildcards count here as well.
func (d *Data) WildcardTokens() int { return d.wildcardTokens }

// DoubleWildcardTokens returns the number of tokens containing a
// multi-segment wildcard marker.
func (d *Data) DoubleWildcardTokens() int { return d.doubleWildcardTokens }

// StaticTokens returns the number of non-empty tokens without any wildcard
// marker.
func (d *Data) StaticTokens() int { return d.staticTokens }
