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

import "log/slog"

// Option configures a Mapping during construction with New.
type Option func(*Mapping)

// TableOption configures a Table during construction with NewTable.
type TableOption func(*Table)

// WithController sets the mapping's target controller.
//
// Example:
//
//	m := urlmapping.MustNew("/books/(*)", urlmapping.WithController("book"))
func WithController(name string) Option {
	return func(m *Mapping) {
		m.target.Controller = name
	}
}

// WithAction sets the mapping's target action.
//
// Example:
//
//	m := urlmapping.MustNew("/books/(*)",
//	    urlmapping.WithController("book"),
//	    urlmapping.WithAction("show"),
//	)
func WithAction(name string) Option {
	return func(m *Mapping) {
		m.target.Action = name
	}
}

// WithNamespace sets the mapping's target namespace.
func WithNamespace(name string) Option {
	return func(m *Mapping) {
		m.target.Namespace = name
	}
}

// WithPlugin sets the plugin the mapping's target controller belongs to.
func WithPlugin(name string) Option {
	return func(m *Mapping) {
		m.target.Plugin = name
	}
}

// WithView sets the view the mapping renders instead of a controller action.
func WithView(name string) Option {
	return func(m *Mapping) {
		m.target.View = name
	}
}

// WithRedirect sets the URL or named target the mapping redirects to.
func WithRedirect(target string) Option {
	return func(m *Mapping) {
		m.target.Redirect = target
	}
}

// WithHTTPMethod restricts the mapping to one HTTP method. Matching is
// case-insensitive; the default is AnyMethod.
//
// Example:
//
//	m := urlmapping.MustNew("/books", urlmapping.WithHTTPMethod("POST"))
func WithHTTPMethod(method string) Option {
	return func(m *Mapping) {
		m.httpMethod = method
	}
}

// WithVersion tags the mapping with an API version. version.Any, the
// default, applies to every version. Exact versions take precedence over
// version.Any when mappings are otherwise equally specific.
//
// Example:
//
//	v1 := urlmapping.MustNew("/api/books", urlmapping.WithVersion("1.0"))
//	v2 := urlmapping.MustNew("/api/books", urlmapping.WithVersion("2.0"))
func WithVersion(v string) Option {
	return func(m *Mapping) {
		m.version = v
	}
}

// WithConstraints appends constraints in capture binding order: the first
// constraint binds the pattern's first "(*)", the second binds the next, and
// so on. A pattern ending in "(.(*))" binds its extension to the last
// constraint.
//
// Example:
//
//	m := urlmapping.MustNew("/blog/(*)/(*)",
//	    urlmapping.WithConstraints(
//	        constraint.New("category"),
//	        constraint.New("id", constraint.Int()),
//	    ),
//	)
func WithConstraints(constraints ...Constraint) Option {
	return func(m *Mapping) {
		m.constraints = append(m.constraints, constraints...)
	}
}

// WithParameter declares a static parameter the mapping contributes to every
// match, on top of captured values. Declared parameters win name collisions
// with captured ones.
//
// Example:
//
//	m := urlmapping.MustNew("/books/popular",
//	    urlmapping.WithController("book"),
//	    urlmapping.WithAction("list"),
//	    urlmapping.WithParameter("sort", "popularity"),
//	)
func WithParameter(name, value string) Option {
	return func(m *Mapping) {
		if m.params == nil {
			m.params = make(map[string]string)
		}
		m.params[name] = value
	}
}

// WithParameters declares static parameters in bulk. The map is copied.
func WithParameters(params map[string]string) Option {
	return func(m *Mapping) {
		if m.params == nil {
			m.params = make(map[string]string, len(params))
		}
		for k, v := range params {
			m.params[k] = v
		}
	}
}

// WithContextPath supplies the deployment prefix prepended to absolute URLs
// built with CreateURL. The callback runs on every call, so the prefix may
// change at runtime. Relative URLs never include it.
//
// Example:
//
//	m := urlmapping.MustNew("/books/(*)",
//	    urlmapping.WithConstraints(constraint.New("id")),
//	    urlmapping.WithContextPath(func() string { return "/app" }),
//	)
func WithContextPath(fn func() string) Option {
	return func(m *Mapping) {
		m.contextPath = fn
	}
}

// WithLogger sets the structured logger the table writes registration and
// lookup debug lines to. The default discards everything.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	t := urlmapping.MustNewTable(urlmapping.WithLogger(logger))
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithDiagnostics sets a diagnostic handler for the table.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues.
// The table functions correctly whether diagnostics are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := urlmapping.DiagnosticHandlerFunc(func(e urlmapping.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	t := urlmapping.MustNewTable(urlmapping.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) TableOption {
	return func(t *Table) {
		t.diagnostics = handler
	}
}

// WithMetricsRecorder sets the recorder the table reports lookup counters
// and the mapping-count gauge to.
//
// Example:
//
//	t := urlmapping.MustNewTable(urlmapping.WithMetricsRecorder(recorder))
func WithMetricsRecorder(recorder MetricsRecorder) TableOption {
	return func(t *Table) {
		t.metrics = recorder
	}
}
