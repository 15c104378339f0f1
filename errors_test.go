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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/urlmapping/constraint"
	"rivaas.dev/urlmapping/pattern"
)

func TestPatternError(t *testing.T) {
	t.Parallel()

	_, err := New("books")
	require.Error(t, err)

	var perr *PatternError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, pattern.ErrMissingLeadingSlash)
	assert.Equal(t, "books", perr.Pattern)
	assert.Equal(t, "URL_MAPPING_INVALID_PATTERN", perr.Code())
	assert.Contains(t, perr.Error(), "books")

	details, ok := perr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "books", details["pattern"])
}

func TestPatternError_EmptyPattern(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
}

func TestMissingParameterError(t *testing.T) {
	t.Parallel()

	m := mustMapping(t, "/books/(*)", WithConstraints(constraint.New("id")))

	_, err := m.CreateURL(nil, "UTF-8")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingParameter)

	var merr *MissingParameterError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "id", merr.Parameter)
	assert.Equal(t, "/books/(*)", merr.Pattern)
	assert.Equal(t, "URL_MAPPING_MISSING_PARAMETER", merr.Code())
	assert.Contains(t, merr.Error(), "[id]")

	details, ok := merr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id", details["parameter"])
	assert.Equal(t, "/books/(*)", details["pattern"])
}

func TestEncodingError(t *testing.T) {
	t.Parallel()

	m := mustMapping(t, "/books/(*)", WithConstraints(constraint.New("id")))

	_, err := m.CreateURL(map[string]any{"id": 42}, "NOT-A-CHARSET")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)

	var eerr *EncodingError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "NOT-A-CHARSET", eerr.Encoding)
	assert.Equal(t, "URL_MAPPING_UNSUPPORTED_ENCODING", eerr.Code())
	assert.Contains(t, eerr.Error(), "NOT-A-CHARSET")

	details, ok := eerr.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT-A-CHARSET", details["encoding"])
}

func TestSentinelMessages(t *testing.T) {
	t.Parallel()

	// The sentinels double as user-facing messages for option misuse.
	assert.EqualError(t, ErrNilMapping, "mapping cannot be nil")
	assert.EqualError(t, ErrNilConstraint, "constraint cannot be nil")
	assert.EqualError(t, ErrNilLogger, "logger cannot be nil")
}
