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

package constraint

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the type of a validation rule.
type Kind uint8

const (
	// KindInt accepts decimal digit strings.
	KindInt Kind = iota
	// KindFloat accepts decimal numbers with optional sign, fraction, and
	// exponent.
	KindFloat
	// KindUUID accepts RFC 4122 UUIDs.
	KindUUID
	// KindRegex accepts values matching a caller-supplied expression.
	KindRegex
	// KindEnum accepts one of a fixed set of values.
	KindEnum
	// KindDate accepts RFC 3339 full-date values (2024-01-31).
	KindDate
	// KindDateTime accepts RFC 3339 date-time values.
	KindDateTime
	// KindFunc accepts values for which a caller-supplied predicate returns
	// true.
	KindFunc
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindUUID:
		return "uuid"
	case KindRegex:
		return "regex"
	case KindEnum:
		return "enum"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Rule is one compiled validation rule. Rules are created through the
// package constructors and are immutable.
type Rule struct {
	kind Kind
	rx   *regexp.Regexp
	fn   func(string) bool
}

// Kind returns the rule's type.
func (r Rule) Kind() Kind { return r.kind }

func (r Rule) accepts(value string) bool {
	if r.fn != nil {
		return r.fn(value)
	}
	if r.rx != nil {
		return r.rx.MatchString(value)
	}

	return true
}

// Anchored patterns for the typed rules. These map directly to OpenAPI
// schema types.
var (
	intRx      = regexp.MustCompile(`^\d+$`)
	floatRx    = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	uuidRx     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	dateRx     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRx = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`)
)

// Int accepts decimal digit strings such as "42".
func Int() Rule { return Rule{kind: KindInt, rx: intRx} }

// Float accepts decimal numbers such as "3.14", "-2", or "1e9".
func Float() Rule { return Rule{kind: KindFloat, rx: floatRx} }

// UUID accepts RFC 4122 UUIDs such as
// "550e8400-e29b-41d4-a716-446655440000".
func UUID() Rule { return Rule{kind: KindUUID, rx: uuidRx} }

// Date accepts RFC 3339 full-date values such as "2024-01-31".
func Date() Rule { return Rule{kind: KindDate, rx: dateRx} }

// DateTime accepts RFC 3339 date-time values such as
// "2024-01-31T15:04:05Z".
func DateTime() Rule { return Rule{kind: KindDateTime, rx: dateTimeRx} }

// Enum accepts exactly one of the given values.
func Enum(values ...string) Rule {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}

	return Rule{
		kind: KindEnum,
		rx:   regexp.MustCompile("^(" + strings.Join(escaped, "|") + ")$"),
	}
}

// Matches accepts values matching expr. The expression is anchored at both
// ends before compiling.
//
// Matches panics when expr is not a valid regular expression, analogous to
// regexp.MustCompile; constraint expressions are part of a mapping
// declaration and an invalid one is a programming error.
func Matches(expr string) Rule {
	rx, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		panic(fmt.Sprintf("constraint: invalid expression %q: %v", expr, err))
	}

	return Rule{kind: KindRegex, rx: rx}
}

// Func accepts values for which fn returns true.
func Func(fn func(value string) bool) Rule {
	return Rule{kind: KindFunc, fn: fn}
}

// Property is a named parameter constraint: an ordered list of rules plus
// the nullable flag consulted when a capture is absent.
//
// The nullable flag is finalized while a mapping is constructed and must not
// be changed once the mapping is in use.
type Property struct {
	name     string
	nullable bool
	rules    []Rule
}

// New creates a property for the named parameter. Values bound to the
// parameter must pass every rule, in order.
//
// Example:
//
//	constraint.New("year", constraint.Matches(`\d{4}`))
func New(name string, rules ...Rule) *Property {
	return &Property{name: name, rules: rules}
}

// PropertyName returns the parameter name this property constrains.
func (p *Property) PropertyName() string { return p.name }

// Nullable reports whether an absent value is acceptable.
func (p *Property) Nullable() bool { return p.nullable }

// SetNullable marks whether an absent value is acceptable. Mapping
// construction calls this while inferring nullability for optional tokens.
func (p *Property) SetNullable(nullable bool) { p.nullable = nullable }

// AppliedConstraintCount returns the number of rules attached to the
// property. Mapping precedence prefers more heavily constrained mappings.
func (p *Property) AppliedConstraintCount() int { return len(p.rules) }

// Validate reports whether value passes every rule.
func (p *Property) Validate(value string) bool {
	for _, r := range p.rules {
		if !r.accepts(value) {
			return false
		}
	}

	return true
}

// String describes the property for diagnostics.
func (p *Property) String() string {
	if len(p.rules) == 0 {
		return p.name
	}
	kinds := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		kinds = append(kinds, r.kind.String())
	}

	return p.name + "(" + strings.Join(kinds, ",") + ")"
}
