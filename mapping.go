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
	"fmt"
	"strings"

	"rivaas.dev/urlmapping/pattern"
	"rivaas.dev/urlmapping/version"
)

// AnyMethod matches every HTTP method.
const AnyMethod = "*"

// Reserved parameter names. When a mapping does not declare an identifier
// statically, a matched or declared parameter of the same name fills it in.
const (
	paramController = "controller"
	paramAction     = "action"
	paramNamespace  = "namespace"
	paramPlugin     = "plugin"
	paramView       = "view"
	paramRedirect   = "redirect"
)

// Target holds the identifiers a matched URL forwards to. Fields left empty
// at construction are resolved from matched parameters of the same name.
type Target struct {
	Controller string
	Action     string
	Namespace  string
	Plugin     string
	View       string
	Redirect   string
}

// Mapping is a single compiled URL mapping. It matches request paths against
// a declared pattern, validates and binds captured parameters, and builds
// URLs back from parameter values.
//
// A Mapping is immutable after New returns and safe for concurrent use.
type Mapping struct {
	data        *pattern.Data
	variants    []*pattern.Compiled
	constraints []Constraint
	target      Target
	httpMethod  string
	version     string
	params      map[string]string
	contextPath func() string

	// forcedNullable lists constraints the aligner marked nullable because no
	// capturing token was left to bind them. Reported as diagnostics when the
	// mapping joins a table.
	forcedNullable []string
}

// New parses and compiles a declared URL pattern into a Mapping.
//
// The pattern is a "/"-separated template. "*" matches one segment, "**"
// matches any number of segments, and the parenthesized forms "(*)" and
// "(**)" additionally capture what they match. A "?" after a token makes the
// token optional, and a trailing "(.(*))" captures an optional file
// extension:
//
//	m, err := urlmapping.New("/blog/(*)/(*)?",
//	    urlmapping.WithController("blog"),
//	    urlmapping.WithAction("show"),
//	    urlmapping.WithConstraints(
//	        constraint.New("category"),
//	        constraint.New("id", constraint.Int()),
//	    ),
//	)
//
// Constraints bind captures positionally. A constraint aligned with an
// optional token becomes nullable, as does any constraint beyond the last
// capturing token.
func New(patternText string, opts ...Option) (*Mapping, error) {
	data, err := pattern.Parse(patternText)
	if err != nil {
		return nil, &PatternError{Pattern: patternText, Err: err}
	}

	m := &Mapping{
		data:       data,
		httpMethod: AnyMethod,
		version:    version.Any,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	m.variants, err = data.Compile()
	if err != nil {
		return nil, &PatternError{Pattern: patternText, Err: err}
	}
	m.alignConstraints()

	return m, nil
}

// MustNew is like New but panics on error. Intended for static mapping
// declarations:
//
//	var showPost = urlmapping.MustNew("/posts/(*)", urlmapping.WithController("post"))
func MustNew(patternText string, opts ...Option) *Mapping {
	m, err := New(patternText, opts...)
	if err != nil {
		panic(fmt.Sprintf("urlmapping.MustNew: %v", err))
	}
	return m
}

// validate checks the mapping configuration for common errors.
func (m *Mapping) validate() error {
	for i, c := range m.constraints {
		if c == nil {
			return fmt.Errorf("%w: constraint at index %d for pattern %q", ErrNilConstraint, i, m.data.Pattern())
		}
	}
	if m.httpMethod == "" {
		m.httpMethod = AnyMethod
	} else if m.httpMethod != AnyMethod {
		m.httpMethod = strings.ToUpper(m.httpMethod)
	}
	if m.version == "" {
		m.version = version.Any
	}
	return nil
}

// alignConstraints walks the declared tokens and the constraint list in
// parallel, marking constraints nullable where the pattern allows the value
// to be absent.
//
// Three things make a constraint nullable: the extension constraint of a
// pattern ending in "(.(*))" is always nullable, a constraint whose "(*)"
// marker is followed by "?" is nullable, and a constraint with no capturing
// token left to bind can never receive a value, so it is treated as nullable
// rather than making every path unmatchable.
func (m *Mapping) alignConstraints() {
	if len(m.constraints) == 0 {
		return
	}

	upper := len(m.constraints)
	if m.data.HasOptionalExtension() {
		upper--
		m.constraints[upper].SetNullable(true)
	}

	tok, off := 0, 0
	for i := 0; i < upper; i++ {
		pos := -1
		for tok < m.data.TokenCount() {
			raw := m.data.Token(tok).Raw
			if p := strings.Index(raw[off:], pattern.CapturedWildcard); p >= 0 {
				pos = off + p
				break
			}
			tok++
			off = 0
		}
		if pos < 0 {
			m.constraints[i].SetNullable(true)
			m.forcedNullable = append(m.forcedNullable, m.constraints[i].PropertyName())
			continue
		}

		raw := m.data.Token(tok).Raw
		end := pos + len(pattern.CapturedWildcard)
		if end < len(raw) && raw[end] == '?' {
			m.constraints[i].SetNullable(true)
		}
		off = end
	}
}

// Pattern returns the declared pattern text.
func (m *Mapping) Pattern() string { return m.data.Pattern() }

// String returns the declared pattern text.
func (m *Mapping) String() string { return m.data.Pattern() }

// HTTPMethod returns the HTTP method the mapping applies to, or AnyMethod.
func (m *Mapping) HTTPMethod() string { return m.httpMethod }

// Version returns the API version the mapping applies to, or version.Any.
func (m *Mapping) Version() string { return m.version }

// Target returns the mapping's declared forwarding identifiers.
func (m *Mapping) Target() Target { return m.target }

// Constraints returns the mapping's constraints in binding order.
func (m *Mapping) Constraints() []Constraint {
	out := make([]Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}

// Parameters returns the mapping's declared static parameters.
func (m *Mapping) Parameters() map[string]string {
	out := make(map[string]string, len(m.params))
	for k, v := range m.params {
		out[k] = v
	}
	return out
}

// Variants returns the logical pattern variants the mapping matches, most
// specific first. A pattern without optional tokens has exactly one variant.
func (m *Mapping) Variants() []string {
	out := make([]string, len(m.variants))
	for i, v := range m.variants {
		out[i] = v.Variant()
	}
	return out
}

// matchesMethod reports whether the mapping applies to the given HTTP method.
func (m *Mapping) matchesMethod(method string) bool {
	if m.httpMethod == AnyMethod || method == AnyMethod || method == "" {
		return true
	}
	return m.httpMethod == strings.ToUpper(method)
}

// matchesVersion reports whether the mapping applies to the given API
// version.
func (m *Mapping) matchesVersion(ver string) bool {
	if m.version == version.Any || ver == version.Any || ver == "" {
		return true
	}
	return m.version == ver
}
