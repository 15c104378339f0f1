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
	"strings"
)

// Group declares related mappings under a common path prefix with shared
// options. Groups enable hierarchical organization of mapping declarations.
//
// Options given to the group apply to every mapping declared through it,
// before the mapping's own options. Scalar options such as WithController
// can therefore be overridden per mapping, while accumulating options such
// as WithConstraints and WithParameter combine.
//
// Example:
//
//	api := t.Group("/api/v1", urlmapping.WithNamespace("api"))
//	books := api.Group("/books", urlmapping.WithController("book"))
//	books.GET("/(*)", urlmapping.WithAction("show"),
//	    urlmapping.WithConstraints(constraint.New("id", constraint.Int())),
//	) // Declares GET /api/v1/books/(*)
type Group struct {
	table  *Table   // Table the group's mappings are registered into
	prefix string   // Path prefix for all mappings in this group
	opts   []Option // Shared options applied before per-mapping options
}

// Group creates a mapping group under the table with the given path prefix
// and shared options.
//
// Example:
//
//	api := t.Group("/api/v1", urlmapping.WithNamespace("api"))
//	api.GET("/status", urlmapping.WithController("health"))
func (t *Table) Group(prefix string, opts ...Option) *Group {
	return &Group{table: t, prefix: prefix, opts: opts}
}

// Group creates a nested group under the current group.
// The new group's prefix will be the parent's prefix + the provided prefix.
// Shared options from the parent group are inherited by the nested group.
//
// Example:
//
//	api := t.Group("/api")
//	v1 := api.Group("/v1")  // Creates /api/v1 prefix
//	v1.GET("/users")        // Declares GET /api/v1/users
func (g *Group) Group(prefix string, opts ...Option) *Group {
	allOpts := make([]Option, 0, len(g.opts)+len(opts))
	allOpts = append(allOpts, g.opts...)
	allOpts = append(allOpts, opts...)

	return &Group{
		table:  g.table,
		prefix: joinPrefix(g.prefix, prefix),
		opts:   allOpts,
	}
}

// Add declares a mapping for the group's prefix + the given pattern and
// registers it with the table. The group's shared options are applied first,
// then the mapping's own options.
func (g *Group) Add(patternText string, opts ...Option) (*Mapping, error) {
	allOpts := make([]Option, 0, len(g.opts)+len(opts))
	allOpts = append(allOpts, g.opts...)
	allOpts = append(allOpts, opts...)

	m, err := New(joinPrefix(g.prefix, patternText), allOpts...)
	if err != nil {
		return nil, err
	}
	if err := g.table.Add(m); err != nil {
		return nil, err
	}

	return m, nil
}

// MustAdd is like Add but panics on error. Intended for static mapping
// declarations.
func (g *Group) MustAdd(patternText string, opts ...Option) *Mapping {
	m, err := g.Add(patternText, opts...)
	if err != nil {
		panic("urlmapping.Group.MustAdd: " + err.Error())
	}

	return m
}

// GET declares a mapping restricted to the GET method.
// The final pattern will be the group prefix + the provided pattern.
//
// Example:
//
//	api := t.Group("/api/v1")
//	api.GET("/users") // Declares GET /api/v1/users
func (g *Group) GET(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("GET", patternText, opts)
}

// POST declares a mapping restricted to the POST method.
// The final pattern will be the group prefix + the provided pattern.
//
// Example:
//
//	api := t.Group("/api/v1")
//	api.POST("/users") // Declares POST /api/v1/users
func (g *Group) POST(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("POST", patternText, opts)
}

// PUT declares a mapping restricted to the PUT method.
// The final pattern will be the group prefix + the provided pattern.
//
// Example:
//
//	api := t.Group("/api/v1")
//	api.PUT("/users/(*)") // Declares PUT /api/v1/users/(*)
func (g *Group) PUT(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("PUT", patternText, opts)
}

// DELETE declares a mapping restricted to the DELETE method.
// The final pattern will be the group prefix + the provided pattern.
//
// Example:
//
//	api := t.Group("/api/v1")
//	api.DELETE("/users/(*)") // Declares DELETE /api/v1/users/(*)
func (g *Group) DELETE(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("DELETE", patternText, opts)
}

// PATCH declares a mapping restricted to the PATCH method.
// The final pattern will be the group prefix + the provided pattern.
//
// Example:
//
//	api := t.Group("/api/v1")
//	api.PATCH("/users/(*)") // Declares PATCH /api/v1/users/(*)
func (g *Group) PATCH(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("PATCH", patternText, opts)
}

// OPTIONS declares a mapping restricted to the OPTIONS method.
// The final pattern will be the group prefix + the provided pattern.
func (g *Group) OPTIONS(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("OPTIONS", patternText, opts)
}

// HEAD declares a mapping restricted to the HEAD method.
// The final pattern will be the group prefix + the provided pattern.
func (g *Group) HEAD(patternText string, opts ...Option) (*Mapping, error) {
	return g.add("HEAD", patternText, opts)
}

// add declares a mapping by combining the group's prefix with the pattern and
// pinning the HTTP method. This is an internal method used by the HTTP method
// functions on groups.
func (g *Group) add(method, patternText string, opts []Option) (*Mapping, error) {
	allOpts := make([]Option, 0, len(g.opts)+len(opts)+1)
	allOpts = append(allOpts, g.opts...)
	allOpts = append(allOpts, opts...)
	allOpts = append(allOpts, WithHTTPMethod(method))

	m, err := New(joinPrefix(g.prefix, patternText), allOpts...)
	if err != nil {
		return nil, err
	}
	if err := g.table.Add(m); err != nil {
		return nil, err
	}

	return m, nil
}

// joinPrefix concatenates a group prefix and a pattern. Either side may be
// empty.
func joinPrefix(prefix, path string) string {
	if len(prefix) == 0 {
		return path
	}
	if len(path) == 0 {
		return prefix
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + len(path))
	sb.WriteString(prefix)
	sb.WriteString(path)

	return sb.String()
}
