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

// Package urlmapping provides declarative URL mappings for Go.
//
// A mapping binds a wildcard URL pattern to a forwarding target and to named,
// validated parameters. The same declaration drives both directions: matching
// an incoming path into parameters and building a URL back out of parameter
// values.
//
// # Key Features
//
//   - Wildcard patterns: "*" and "(*)" match one segment, "**" and "(**)"
//     match any number of segments, parenthesized forms capture
//   - Optional tokens ("?") and optional file extensions ("(.(*))")
//   - Named constraints with validation rules (int, uuid, regex, enum, ...)
//   - Precedence ordering so the most specific mapping wins
//   - Reverse URL building with percent-encoding and query serialization
//   - Table lookups that are lock-free and bypass pattern matching for
//     static paths
//   - HTTP method and API version discrimination
//   - Structured logging, diagnostics, and metrics hooks
//
// # Constructor Pattern
//
//   - New() returns (*Mapping, error) because pattern compilation can fail.
//     MustNew panics instead, for static declarations.
//
//   - All configuration options use the "With" prefix for consistency
//     (e.g., WithController, WithConstraints, WithLogger).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "rivaas.dev/urlmapping"
//	    "rivaas.dev/urlmapping/constraint"
//	)
//
//	func main() {
//	    t := urlmapping.MustNewTable()
//	    t.Add(
//	        urlmapping.MustNew("/blog/(*)/(*)?",
//	            urlmapping.WithController("blog"),
//	            urlmapping.WithAction("show"),
//	            urlmapping.WithConstraints(
//	                constraint.New("category"),
//	                constraint.New("id", constraint.Int()),
//	            ),
//	        ),
//	    )
//
//	    info := t.Match("/blog/gadgets/42")
//	    fmt.Println(info.Controller, info.Params["category"], info.Params["id"])
//	    // Output: blog gadgets 42
//	}
//
// # Pattern Grammar
//
// Patterns are "/"-separated templates:
//
//	/images/*             one anonymous segment
//	/images/(*)           one captured segment
//	/files/**             any number of anonymous segments
//	/files/(**)           any number of segments, captured as one value
//	/blog/(*)/(*)?        trailing token may be omitted
//	/report/(*)(.(*))     captured name plus optional captured extension
//	/v*/users             wildcards may embed in literal text
//
// Each "?" token splits the mapping into logical variants, tried most
// specific first, so "/blog/(*)/(*)?" matches both "/blog/food/3" and
// "/blog/food".
//
// # Constraints
//
// Constraints bind captures positionally and validate them:
//
//	m := urlmapping.MustNew("/archive/(*)/(*)",
//	    urlmapping.WithController("archive"),
//	    urlmapping.WithConstraints(
//	        constraint.New("year", constraint.Matches(`\d{4}`)),
//	        constraint.New("month", constraint.Int()),
//	    ),
//	)
//
// A constraint aligned with an optional token tolerates the token's absence.
// Validation failure makes the mapping pass on the path so a less specific
// mapping can still claim it.
//
// # Reverse URL Building
//
// The same mapping builds URLs from parameter values:
//
//	url, err := m.CreateURL(map[string]any{
//	    "year":  2024,
//	    "month": 7,
//	    "sort":  "asc",
//	}, "UTF-8")
//	// /archive/2024/7?sort=asc
//
// Values are percent-encoded in the requested character encoding and
// parameters not consumed by the path become query pairs.
//
// # Precedence
//
// Tables try mappings in specificity order: fewer "**" tokens win, then
// fewer "*" tokens, then more static text, then earlier static positions,
// then more constraint rules, then exact API versions over version.Any.
// Compare exposes the ordering for callers that keep their own collections.
//
// # Observability
//
// Tables accept a structured logger, a diagnostic handler, and a metrics
// recorder:
//
//	t := urlmapping.MustNewTable(
//	    urlmapping.WithLogger(logger),
//	    urlmapping.WithDiagnostics(handler),
//	    urlmapping.WithMetricsRecorder(recorder),
//	)
package urlmapping
