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

// DiagnosticEvent represents a mapping table diagnostic or anomaly.
// These are informational events that may indicate configuration issues,
// such as a constraint that can never bind a value.
//
// Diagnostic events are optional - the table functions correctly whether
// they are collected or not. They provide visibility into edge cases for
// observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagMappingRegistered is emitted for every mapping added to a table.
	DiagMappingRegistered DiagnosticKind = "mapping_registered"

	// DiagConstraintForcedNullable is emitted when a constraint has no
	// capturing token left to bind and is therefore treated as nullable.
	// This usually means the pattern declares fewer captures than the
	// mapping declares constraints.
	DiagConstraintForcedNullable DiagnosticKind = "constraint_forced_nullable"

	// DiagHighVariantCount is emitted when optional tokens expand a mapping
	// into an unusually large number of logical variants, each of which is
	// tried in order during matching.
	DiagHighVariantCount DiagnosticKind = "mapping_variant_count_high"
)

// DiagnosticHandler receives diagnostic events from a mapping table.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently dropped.
// The table's behavior is unchanged whether diagnostics are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := urlmapping.DiagnosticHandlerFunc(func(e urlmapping.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	t := urlmapping.MustNewTable(urlmapping.WithDiagnostics(handler))
//
// Example with metrics:
//
//	handler := urlmapping.DiagnosticHandlerFunc(func(e urlmapping.DiagnosticEvent) {
//	    metrics.Increment("urlmapping.diagnostics", "kind", string(e.Kind))
//	})
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
