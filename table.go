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
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"rivaas.dev/urlmapping/pattern"
	"rivaas.dev/urlmapping/version"
)

// noopLogger is a logger that discards all output, used as the default when
// no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns a logger that discards all output.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// bgCtx is the context passed to metric calls, which have no request context
// of their own.
var bgCtx = context.Background()

// Metric names recorded by Table when a MetricsRecorder is configured.
const (
	metricMatchAttempts = "urlmapping.match.attempts"
	metricMatchHits     = "urlmapping.match.hits"
	metricMatchRejected = "urlmapping.match.rejected"
	metricTableMappings = "urlmapping.table.mappings"
)

const (
	// defaultBloomFilterSize is the default bit count of the static path
	// bloom filter.
	defaultBloomFilterSize = 1000

	// defaultBloomHashFunctions is the default number of hash functions for
	// the static path bloom filter.
	defaultBloomHashFunctions = 3

	// minStaticForBloom is the static path count below which the bloom
	// filter is skipped; the index lookup alone is cheaper.
	minStaticForBloom = 10

	// highVariantThreshold is the variant count above which a mapping is
	// reported through DiagHighVariantCount.
	highVariantThreshold = 8
)

// Table holds an ordered collection of mappings and resolves paths against
// them. Mappings are kept sorted by descending Compare, so a lookup returns
// the most specific match.
//
// Lookups are lock-free: Add publishes a new immutable snapshot through an
// atomic pointer, Match and friends only load it. A Table is safe for
// concurrent use.
type Table struct {
	mu          sync.Mutex // serializes Add
	snapshot    atomic.Pointer[tableSnapshot]
	logger      *slog.Logger
	diagnostics DiagnosticHandler
	metrics     MetricsRecorder
}

// tableSnapshot is one immutable generation of the table's lookup state.
type tableSnapshot struct {
	// mappings in descending precedence order.
	mappings []*Mapping

	// candidates pairs every mapping with each of its compiled variants,
	// mapping-major: all variants of a mapping are tried before the next
	// mapping is consulted.
	candidates []candidate

	// static indexes paths that bypass the candidate scan, keyed by FNV-1a
	// hash of the normalized path. Entries verify the path to rule out hash
	// collisions.
	static      map[uint64][]staticEntry
	staticCount int

	// bloom pre-filters static lookups once staticCount reaches
	// minStaticForBloom.
	bloom *bloomFilter
}

type candidate struct {
	mapping *Mapping
	variant *pattern.Compiled
}

type staticEntry struct {
	path    string
	mapping *Mapping
}

// NewTable creates an empty mapping table.
//
// Example:
//
//	t, err := urlmapping.NewTable(
//	    urlmapping.WithLogger(logger),
//	    urlmapping.WithMetricsRecorder(recorder),
//	)
func NewTable(opts ...TableOption) (*Table, error) {
	t := &Table{
		logger: noopLogger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.snapshot.Store(buildSnapshot(nil))
	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(opts ...TableOption) *Table {
	t, err := NewTable(opts...)
	if err != nil {
		panic(fmt.Sprintf("urlmapping.MustNewTable: %v", err))
	}
	return t
}

// validate checks the table configuration for common errors.
func (t *Table) validate() error {
	if t.logger == nil {
		return ErrNilLogger
	}
	return nil
}

// Add registers mappings and republishes the lookup snapshot with every
// registered mapping re-sorted by precedence. It is safe to call
// concurrently with lookups.
func (t *Table) Add(mappings ...*Mapping) error {
	for _, m := range mappings {
		if m == nil {
			return ErrNilMapping
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	old := t.snapshot.Load()
	merged := make([]*Mapping, 0, len(old.mappings)+len(mappings))
	merged = append(merged, old.mappings...)
	merged = append(merged, mappings...)

	t.snapshot.Store(buildSnapshot(merged))

	for _, m := range mappings {
		t.logger.Debug("url mapping registered",
			"pattern", m.Pattern(),
			"method", m.httpMethod,
			"version", m.version,
			"variants", len(m.variants),
		)
		t.emitMappingDiagnostics(m)
	}
	if t.metrics != nil {
		t.metrics.SetGauge(bgCtx, metricTableMappings, float64(len(merged)))
	}
	return nil
}

// buildSnapshot sorts the mappings by precedence and precomputes the lookup
// structures for them.
func buildSnapshot(mappings []*Mapping) *tableSnapshot {
	sorted := make([]*Mapping, len(mappings))
	copy(sorted, mappings)
	SortByPrecedence(sorted)

	snap := &tableSnapshot{
		mappings: sorted,
		static:   make(map[uint64][]staticEntry),
	}
	for _, m := range sorted {
		for _, v := range m.variants {
			snap.candidates = append(snap.candidates, candidate{mapping: m, variant: v})
		}
	}
	for _, m := range sorted {
		if len(m.variants) != 1 || !m.variants[0].Static() {
			continue
		}
		path := normalizePath(m.variants[0].Variant())
		if !staticIndexable(snap.candidates, m, path) {
			continue
		}
		h := hashPath(path)
		snap.static[h] = append(snap.static[h], staticEntry{path: path, mapping: m})
		snap.staticCount++
	}
	if snap.staticCount >= minStaticForBloom {
		snap.bloom = newBloomFilter(optimalBloomFilterSize(snap.staticCount), defaultBloomHashFunctions)
		for h := range snap.static {
			snap.bloom.addHash(h)
		}
	}
	return snap
}

// staticIndexable reports whether m would win the ordered candidate scan for
// its own static path. When an earlier candidate's pattern also accepts the
// path, the scan order must decide, so the path stays out of the index.
func staticIndexable(candidates []candidate, m *Mapping, path string) bool {
	for i := range candidates {
		c := &candidates[i]
		if c.variant.Regexp().MatchString(path) {
			return c.mapping == m
		}
	}
	return false
}

// Match resolves a path against the table regardless of HTTP method and
// returns the most specific match, or nil when nothing matches.
func (t *Table) Match(path string) *MatchInfo {
	return t.lookup(path, AnyMethod, version.Any)
}

// MatchMethod resolves a path against the table considering only mappings
// that apply to the given HTTP method. Method comparison is
// case-insensitive; AnyMethod matches everything.
func (t *Table) MatchMethod(method, path string) *MatchInfo {
	return t.lookup(path, method, version.Any)
}

// MatchVersion resolves a path considering only mappings that apply to the
// given HTTP method and API version. A mapping declared with version.Any
// applies to every requested version, and requesting version.Any ignores
// mapping versions, as MatchMethod does.
//
// Example:
//
//	info := t.MatchVersion("GET", "2.0", "/api/books")
func (t *Table) MatchVersion(method, ver, path string) *MatchInfo {
	return t.lookup(path, method, ver)
}

// MatchAll returns every mapping's match for the path in descending
// precedence order, regardless of HTTP method. The result is nil when
// nothing matches.
func (t *Table) MatchAll(path string) []*MatchInfo {
	snap := t.snapshot.Load()
	var out []*MatchInfo
	for _, m := range snap.mappings {
		if info := m.Match(path); info != nil {
			out = append(out, info)
		}
	}
	return out
}

func (t *Table) lookup(path, method, ver string) *MatchInfo {
	snap := t.snapshot.Load()
	if len(snap.candidates) == 0 {
		return nil
	}
	t.incr(metricMatchAttempts)

	norm := normalizePath(path)

	if snap.staticCount > 0 {
		h := hashPath(norm)
		if snap.bloom == nil || snap.bloom.testHash(h) {
			for _, e := range snap.static[h] {
				if e.path != norm || !e.mapping.matchesMethod(method) || !e.mapping.matchesVersion(ver) {
					continue
				}
				if info := e.mapping.Match(path); info != nil {
					t.incr(metricMatchHits)
					return info
				}
			}
		}
	}

	// Variants that match a fixed number of segments cannot match a path
	// with a different slash count, so the regex is not even consulted.
	slashes := strings.Count(norm, "/")
	for i := range snap.candidates {
		c := &snap.candidates[i]
		if c.variant.Exact() && c.variant.SlashCount() != slashes {
			continue
		}
		if !c.mapping.matchesMethod(method) || !c.mapping.matchesVersion(ver) {
			continue
		}
		info, rejected := c.mapping.matchVariant(c.variant, path)
		if info != nil {
			t.incr(metricMatchHits)
			return info
		}
		if rejected {
			t.incr(metricMatchRejected)
		}
	}
	return nil
}

// Mappings returns the registered mappings in descending precedence order.
func (t *Table) Mappings() []*Mapping {
	snap := t.snapshot.Load()
	out := make([]*Mapping, len(snap.mappings))
	copy(out, snap.mappings)
	return out
}

// Len returns the number of registered mappings.
func (t *Table) Len() int {
	return len(t.snapshot.Load().mappings)
}

func (t *Table) incr(name string) {
	if t.metrics != nil {
		t.metrics.IncrementCounter(bgCtx, name)
	}
}

func (t *Table) emitMappingDiagnostics(m *Mapping) {
	if t.diagnostics == nil {
		return
	}
	t.diagnostics.OnDiagnostic(DiagnosticEvent{
		Kind:    DiagMappingRegistered,
		Message: "url mapping registered",
		Fields: map[string]any{
			"pattern":  m.Pattern(),
			"method":   m.httpMethod,
			"version":  m.version,
			"variants": len(m.variants),
		},
	})
	for _, name := range m.forcedNullable {
		t.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagConstraintForcedNullable,
			Message: "constraint has no capturing token to bind; treated as nullable",
			Fields: map[string]any{
				"pattern":   m.Pattern(),
				"parameter": name,
			},
		})
	}
	if len(m.variants) > highVariantThreshold {
		t.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagHighVariantCount,
			Message: "mapping expands into many logical variants",
			Fields: map[string]any{
				"pattern":  m.Pattern(),
				"variants": len(m.variants),
			},
		})
	}
}

// normalizePath strips one trailing slash so "/books" and "/books/" count
// segments and hash identically. The root path stays "/".
func normalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}
