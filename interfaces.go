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
	"context"

	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/urlmapping/constraint"
)

// Constraint restricts the values a captured parameter may take and carries
// the parameter name the capture binds to. Constraints are aligned with
// capturing tokens positionally: the first constraint binds the first (*) in
// the pattern, the second binds the next, and so on.
//
// constraint.Property is the standard implementation. Custom implementations
// must keep SetNullable observable through Nullable, since mapping
// construction adjusts nullability for optional tokens.
type Constraint interface {
	// PropertyName returns the parameter name the constraint binds.
	PropertyName() string

	// Nullable reports whether the parameter may be absent.
	Nullable() bool

	// SetNullable changes whether the parameter may be absent.
	SetNullable(nullable bool)

	// AppliedConstraintCount returns the number of validation rules attached.
	// The count feeds mapping precedence: more constrained mappings win ties.
	AppliedConstraintCount() int

	// Validate reports whether the value satisfies every rule.
	Validate(value string) bool
}

// Compile-time check that the constraint package satisfies the interface.
var _ Constraint = (*constraint.Property)(nil)

// MetricsRecorder receives table-level metrics. Implementations typically
// bridge to an OpenTelemetry meter, which is why attributes use the otel
// attribute type directly.
//
// The table records:
//   - urlmapping.match.attempts (counter): lookups started
//   - urlmapping.match.hits (counter): lookups that produced a match
//   - urlmapping.match.rejected (counter): pattern matches discarded by
//     constraint validation
//   - urlmapping.table.mappings (gauge): registered mappings
type MetricsRecorder interface {
	// RecordMetric records a custom histogram metric with the given name and value.
	RecordMetric(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue)

	// IncrementCounter increments a custom counter metric with the given name.
	IncrementCounter(ctx context.Context, name string, attributes ...attribute.KeyValue)

	// SetGauge sets a custom gauge metric with the given name and value.
	SetGauge(ctx context.Context, name string, value float64, attributes ...attribute.KeyValue)
}
