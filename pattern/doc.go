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

// Package pattern parses declarative URL mapping patterns and compiles them
// into anchored regular expressions.
//
// A pattern is a "/"-separated path template. Each segment is either literal
// text, a wildcard, or a mix of both:
//
//   - "*" matches exactly one path segment
//   - "**" matches any number of path segments
//   - "(*)" matches one segment and captures it
//   - "(**)" matches any number of segments and captures them
//   - a trailing "?" marks the segment as optional
//   - a trailing "(.(*))" captures an optional file extension
//
// # Parsing
//
// Parse produces a Data value holding the classified token sequence and the
// pattern's logical variants. A pattern with trailing optional segments
// expands into one variant per omission, most specific first:
//
//	data, err := pattern.Parse("/books/(*)?/(**)?")
//	// variants: "/books/(*)?/(**)?", "/books/(*)?", "/books"
//
// # Compiling
//
// Compile turns every logical variant into a Compiled matcher. Single
// wildcards become non-slash character classes, double wildcards become
// greedy multi-segment matches, and the parentheses of captured markers
// survive as regular-expression capture groups. The final segment's single
// wildcards additionally refuse to cross a file-extension dot, so
// "/report/(*)(.(*))" splits "summary.pdf" into "summary" and "pdf".
//
// The token sequence produced here is the single source of truth for both
// directions: the compiler consumes it to build matchers, and the reverse
// builder in the parent package consumes it to substitute parameter values.
package pattern
