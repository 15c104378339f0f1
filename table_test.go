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

//go:build !integration

package urlmapping

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"rivaas.dev/urlmapping/constraint"
)

// recordingMetrics collects metric calls for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string]int
	gauges   map[string]float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: make(map[string]int),
		gauges:   make(map[string]float64),
	}
}

func (r *recordingMetrics) RecordMetric(_ context.Context, _ string, _ float64, _ ...attribute.KeyValue) {
}

func (r *recordingMetrics) IncrementCounter(_ context.Context, name string, _ ...attribute.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name]++
}

func (r *recordingMetrics) SetGauge(_ context.Context, name string, value float64, _ ...attribute.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges[name] = value
}

func (r *recordingMetrics) counter(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[name]
}

func (r *recordingMetrics) gauge(name string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gauges[name]
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable()
		require.NoError(t, err)
		assert.Zero(t, table.Len())
		assert.Nil(t, table.Match("/anything"))
	})

	t.Run("nil logger is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable(WithLogger(nil))
		assert.ErrorIs(t, err, ErrNilLogger)
	})

	t.Run("MustNewTable panics on error", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			MustNewTable(WithLogger(nil))
		})
	})
}

func TestTable_Add(t *testing.T) {
	t.Parallel()

	t.Run("nil mapping is rejected", func(t *testing.T) {
		t.Parallel()

		table := MustNewTable()
		err := table.Add(nil)
		assert.ErrorIs(t, err, ErrNilMapping)
		assert.Zero(t, table.Len())
	})

	t.Run("mappings are kept in precedence order", func(t *testing.T) {
		t.Parallel()

		table := MustNewTable()
		require.NoError(t, table.Add(
			mustMapping(t, "/(*)", WithConstraints(constraint.New("slug"))),
			mustMapping(t, "/books"),
			mustMapping(t, "/books/(*)", WithConstraints(constraint.New("id"))),
		))

		var patterns []string
		for _, m := range table.Mappings() {
			patterns = append(patterns, m.Pattern())
		}
		assert.Equal(t, []string{"/books", "/books/(*)", "/(*)"}, patterns)
		assert.Equal(t, 3, table.Len())
	})

	t.Run("later Add re-sorts earlier mappings", func(t *testing.T) {
		t.Parallel()

		table := MustNewTable()
		require.NoError(t, table.Add(mustMapping(t, "/(*)", WithController("fallback"), WithConstraints(constraint.New("slug")))))
		require.NoError(t, table.Add(mustMapping(t, "/books", WithController("book"))))

		info := table.Match("/books")
		require.NotNil(t, info)
		assert.Equal(t, "book", info.Controller)
	})
}

func TestTable_Match_MostSpecificWins(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/(*)/(*)", WithController("two-wildcards"),
			WithConstraints(constraint.New("a"), constraint.New("b"))),
		mustMapping(t, "/blog/(**)", WithController("blog-tail"),
			WithConstraints(constraint.New("path"))),
		mustMapping(t, "/blog/(*)", WithController("blog-item"),
			WithConstraints(constraint.New("id"))),
		mustMapping(t, "/blog/popular", WithController("blog-popular")),
	))

	tests := []struct {
		path string
		want string
	}{
		// Static text beats a capture for the same path.
		{"/blog/popular", "blog-popular"},
		// One wildcard with static text beats two wildcards.
		{"/blog/42", "blog-item"},
		// A double wildcard is consulted last.
		{"/blog/2024/06/started", "blog-tail"},
		{"/news/42", "two-wildcards"},
	}
	for _, tt := range tests {
		info := table.Match(tt.path)
		require.NotNil(t, info, "path %s", tt.path)
		assert.Equal(t, tt.want, info.Controller, "path %s", tt.path)
	}
}

func TestTable_Match_FallsThroughRejectedCandidates(t *testing.T) {
	t.Parallel()

	// The most specific mapping rejects non-numeric ids; the table must fall
	// through to the next candidate instead of giving up.
	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/books/(*)", WithController("by-id"),
			WithConstraints(constraint.New("id", constraint.Int()))),
		mustMapping(t, "/books/(*)", WithController("by-slug"),
			WithConstraints(constraint.New("slug", constraint.Matches(`[a-z-]+`)))),
	))

	byID := table.Match("/books/42")
	require.NotNil(t, byID)
	assert.Equal(t, "by-id", byID.Controller)

	bySlug := table.Match("/books/war-and-peace")
	require.NotNil(t, bySlug)
	assert.Equal(t, "by-slug", bySlug.Controller)

	assert.Nil(t, table.Match("/books/WAR"))
}

func TestTable_MatchMethod(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/books", WithHTTPMethod("GET"), WithAction("list")),
		mustMapping(t, "/books", WithHTTPMethod("POST"), WithAction("create")),
	))

	get := table.MatchMethod("GET", "/books")
	require.NotNil(t, get)
	assert.Equal(t, "list", get.Action)

	post := table.MatchMethod("POST", "/books")
	require.NotNil(t, post)
	assert.Equal(t, "create", post.Action)

	// Lowercase methods are accepted.
	lower := table.MatchMethod("post", "/books")
	require.NotNil(t, lower)
	assert.Equal(t, "create", lower.Action)

	assert.Nil(t, table.MatchMethod("DELETE", "/books"))

	// Method-agnostic lookup returns the first registered on ties.
	any := table.Match("/books")
	require.NotNil(t, any)
	assert.Equal(t, "list", any.Action)
}

func TestTable_MatchVersion(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/api/books", WithVersion("1.0"), WithAction("listV1")),
		mustMapping(t, "/api/books", WithVersion("2.0"), WithAction("listV2")),
		mustMapping(t, "/api/books", WithAction("listAny")),
	))

	v1 := table.MatchVersion("GET", "1.0", "/api/books")
	require.NotNil(t, v1)
	assert.Equal(t, "listV1", v1.Action)

	v2 := table.MatchVersion("GET", "2.0", "/api/books")
	require.NotNil(t, v2)
	assert.Equal(t, "listV2", v2.Action)

	// An unmapped version falls back to the version-agnostic mapping.
	v3 := table.MatchVersion("GET", "3.0", "/api/books")
	require.NotNil(t, v3)
	assert.Equal(t, "listAny", v3.Action)

	// Without a requested version the highest exact version wins.
	latest := table.Match("/api/books")
	require.NotNil(t, latest)
	assert.Equal(t, "listV2", latest.Action)
}

func TestTable_MatchAll(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/books", WithController("static")),
		mustMapping(t, "/(*)", WithController("wildcard"), WithConstraints(constraint.New("slug"))),
		mustMapping(t, "/books/(*)", WithController("unrelated"), WithConstraints(constraint.New("id"))),
	))

	all := table.MatchAll("/books")
	require.Len(t, all, 2)
	assert.Equal(t, "static", all[0].Controller)
	assert.Equal(t, "wildcard", all[1].Controller)

	assert.Nil(t, table.MatchAll("/books/42/reviews"))
}

func TestTable_StaticFastPath(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	for i := range 12 {
		require.NoError(t, table.Add(
			mustMapping(t, fmt.Sprintf("/static/page%d", i), WithController(fmt.Sprintf("page%d", i))),
		))
	}
	require.NoError(t, table.Add(
		mustMapping(t, "/static/(*)", WithController("dynamic"), WithConstraints(constraint.New("slug"))),
	))

	snap := table.snapshot.Load()
	assert.Equal(t, 12, snap.staticCount)
	require.NotNil(t, snap.bloom, "bloom filter expected once enough static paths exist")

	for i := range 12 {
		info := table.Match(fmt.Sprintf("/static/page%d", i))
		require.NotNil(t, info)
		assert.Equal(t, fmt.Sprintf("page%d", i), info.Controller)
	}

	// Paths outside the index still reach the candidate scan.
	info := table.Match("/static/other")
	require.NotNil(t, info)
	assert.Equal(t, "dynamic", info.Controller)
}

func TestTable_StaticIndexSkipsShadowedDuplicates(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(
		mustMapping(t, "/dup", WithHTTPMethod("GET"), WithAction("read")),
		mustMapping(t, "/dup", WithHTTPMethod("POST"), WithAction("write")),
	))

	// Only the mapping that wins the candidate scan may sit in the index;
	// the shadowed one must still be reachable for its own method.
	snap := table.snapshot.Load()
	assert.Equal(t, 1, snap.staticCount)

	get := table.MatchMethod("GET", "/dup")
	require.NotNil(t, get)
	assert.Equal(t, "read", get.Action)

	post := table.MatchMethod("POST", "/dup")
	require.NotNil(t, post)
	assert.Equal(t, "write", post.Action)
}

func TestTable_TrailingSlash(t *testing.T) {
	t.Parallel()

	table := MustNewTable()
	require.NoError(t, table.Add(mustMapping(t, "/books", WithController("book"))))

	info := table.Match("/books/")
	require.NotNil(t, info)
	assert.Equal(t, "book", info.Controller)
}

func TestTable_Diagnostics(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var events []DiagnosticEvent
	handler := DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	table := MustNewTable(WithDiagnostics(handler))

	t.Run("registration and forced nullable", func(t *testing.T) {
		require.NoError(t, table.Add(
			mustMapping(t, "/x/(*)", WithConstraints(constraint.New("a"), constraint.New("b"))),
		))

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, events, 2)
		assert.Equal(t, DiagMappingRegistered, events[0].Kind)
		assert.Equal(t, DiagConstraintForcedNullable, events[1].Kind)
		assert.Equal(t, "b", events[1].Fields["parameter"])
		events = events[:0]
	})

	t.Run("high variant count", func(t *testing.T) {
		require.NoError(t, table.Add(
			mustMapping(t, "/r/(*)?/(*)?/(*)?/(*)?/(*)?/(*)?/(*)?/(*)?"),
		))

		mu.Lock()
		defer mu.Unlock()
		var kinds []DiagnosticKind
		for _, e := range events {
			kinds = append(kinds, e.Kind)
		}
		assert.Contains(t, kinds, DiagHighVariantCount)
	})
}

func TestTable_Metrics(t *testing.T) {
	t.Parallel()

	rec := newRecordingMetrics()
	table := MustNewTable(WithMetricsRecorder(rec))

	require.NoError(t, table.Add(
		mustMapping(t, "/books/(*)", WithConstraints(constraint.New("id", constraint.Int()))),
	))
	require.NoError(t, table.Add(mustMapping(t, "/authors")))
	assert.Equal(t, float64(2), rec.gauge(metricTableMappings))

	require.NotNil(t, table.Match("/books/42"))
	assert.Equal(t, 1, rec.counter(metricMatchAttempts))
	assert.Equal(t, 1, rec.counter(metricMatchHits))
	assert.Equal(t, 0, rec.counter(metricMatchRejected))

	// Pattern matches but the constraint rejects: attempt + rejection.
	assert.Nil(t, table.Match("/books/abc"))
	assert.Equal(t, 2, rec.counter(metricMatchAttempts))
	assert.Equal(t, 1, rec.counter(metricMatchHits))
	assert.Equal(t, 1, rec.counter(metricMatchRejected))

	// No pattern matches at all: attempt only.
	assert.Nil(t, table.Match("/nothing/here/at/all"))
	assert.Equal(t, 3, rec.counter(metricMatchAttempts))
	assert.Equal(t, 1, rec.counter(metricMatchHits))
	assert.Equal(t, 1, rec.counter(metricMatchRejected))
}

func TestTable_EmptyTableSkipsMetrics(t *testing.T) {
	t.Parallel()

	rec := newRecordingMetrics()
	table := MustNewTable(WithMetricsRecorder(rec))

	assert.Nil(t, table.Match("/anything"))
	assert.Zero(t, rec.counter(metricMatchAttempts))
}
