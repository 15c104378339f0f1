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

// Package constraint provides named, typed validation rules for URL mapping
// parameters.
//
// A Property pairs a parameter name with an ordered list of rules. Mapping
// construction aligns properties positionally with the pattern's capture
// groups; matched values must pass every rule before they are bound.
//
//	constraint.New("id", constraint.Int())
//	constraint.New("ref", constraint.UUID())
//	constraint.New("lang", constraint.Enum("en", "de", "fr"))
//	constraint.New("slug", constraint.Matches(`[a-z0-9-]+`))
//
// Typed rules map directly to OpenAPI schema types, so mapping introspection
// can surface them in generated documentation.
package constraint
