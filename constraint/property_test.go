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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules_Accept(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   Rule
		value  string
		accept bool
	}{
		{name: "int digits", rule: Int(), value: "42", accept: true},
		{name: "int rejects letters", rule: Int(), value: "abc", accept: false},
		{name: "int rejects empty", rule: Int(), value: "", accept: false},
		{name: "int rejects sign", rule: Int(), value: "-1", accept: false},
		{name: "int rejects fraction", rule: Int(), value: "3.14", accept: false},

		{name: "float plain", rule: Float(), value: "3.14", accept: true},
		{name: "float negative integer", rule: Float(), value: "-2", accept: true},
		{name: "float exponent", rule: Float(), value: "1e9", accept: true},
		{name: "float leading dot", rule: Float(), value: ".5", accept: true},
		{name: "float rejects letters", rule: Float(), value: "abc", accept: false},
		{name: "float rejects bare exponent", rule: Float(), value: "1e", accept: false},

		{name: "uuid lowercase", rule: UUID(), value: "550e8400-e29b-41d4-a716-446655440000", accept: true},
		{name: "uuid uppercase", rule: UUID(), value: "550E8400-E29B-41D4-A716-446655440000", accept: true},
		{name: "uuid rejects short", rule: UUID(), value: "550e8400-e29b-41d4-a716", accept: false},
		{name: "uuid rejects bad variant", rule: UUID(), value: "550e8400-e29b-41d4-c716-446655440000", accept: false},

		{name: "date full", rule: Date(), value: "2024-01-31", accept: true},
		{name: "date rejects short month", rule: Date(), value: "2024-1-31", accept: false},
		{name: "date rejects datetime", rule: Date(), value: "2024-01-31T15:04:05Z", accept: false},

		{name: "datetime utc", rule: DateTime(), value: "2024-01-31T15:04:05Z", accept: true},
		{name: "datetime offset", rule: DateTime(), value: "2024-01-31T15:04:05+02:00", accept: true},
		{name: "datetime fraction", rule: DateTime(), value: "2024-01-31T15:04:05.999Z", accept: true},
		{name: "datetime rejects date only", rule: DateTime(), value: "2024-01-31", accept: false},

		{name: "enum member", rule: Enum("red", "green"), value: "green", accept: true},
		{name: "enum rejects outsider", rule: Enum("red", "green"), value: "blue", accept: false},
		{name: "enum escapes metacharacters", rule: Enum("a.b"), value: "axb", accept: false},

		{name: "matches anchored", rule: Matches(`\d{4}`), value: "2024", accept: true},
		{name: "matches rejects longer value", rule: Matches(`\d{4}`), value: "20245", accept: false},
		{name: "matches rejects embedded", rule: Matches(`\d{4}`), value: "x2024", accept: false},

		{name: "func predicate", rule: Func(func(v string) bool { return strings.HasPrefix(v, "v") }), value: "v2", accept: true},
		{name: "func rejects", rule: Func(func(v string) bool { return strings.HasPrefix(v, "v") }), value: "2", accept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.accept, tt.rule.accepts(tt.value))
		})
	}
}

func TestMatches_PanicsOnInvalidExpression(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Matches(`(unclosed`)
	})
}

func TestRule_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule Rule
		want Kind
	}{
		{rule: Int(), want: KindInt},
		{rule: Float(), want: KindFloat},
		{rule: UUID(), want: KindUUID},
		{rule: Matches(`x`), want: KindRegex},
		{rule: Enum("a"), want: KindEnum},
		{rule: Date(), want: KindDate},
		{rule: DateTime(), want: KindDateTime},
		{rule: Func(func(string) bool { return true }), want: KindFunc},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule.Kind())
		})
	}
}

func TestProperty_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prop  *Property
		value string
		want  bool
	}{
		{
			name:  "no rules accepts anything",
			prop:  New("id"),
			value: "anything at all",
			want:  true,
		},
		{
			name:  "single rule pass",
			prop:  New("id", Int()),
			value: "7",
			want:  true,
		},
		{
			name:  "single rule fail",
			prop:  New("id", Int()),
			value: "seven",
			want:  false,
		},
		{
			name:  "all rules must pass",
			prop:  New("id", Int(), Func(func(v string) bool { return len(v) <= 3 })),
			value: "999",
			want:  true,
		},
		{
			name:  "later rule rejects",
			prop:  New("id", Int(), Func(func(v string) bool { return len(v) <= 3 })),
			value: "9999",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.prop.Validate(tt.value))
		})
	}
}

func TestProperty_Nullable(t *testing.T) {
	t.Parallel()

	p := New("id")
	assert.False(t, p.Nullable())

	p.SetNullable(true)
	assert.True(t, p.Nullable())

	p.SetNullable(false)
	assert.False(t, p.Nullable())
}

func TestProperty_AppliedConstraintCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, New("id").AppliedConstraintCount())
	assert.Equal(t, 2, New("id", Int(), Matches(`\d+`)).AppliedConstraintCount())
}

func TestProperty_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id", New("id").String())
	assert.Equal(t, "year(int,regex)", New("year", Int(), Matches(`\d{4}`)).String())
}

func TestProperty_PropertyName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lang", New("lang").PropertyName())
}
