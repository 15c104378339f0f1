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
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrParamMissing is returned when a required parameter is not found.
	ErrParamMissing = errors.New("parameter not found")

	// ErrParamInvalid is returned when a parameter cannot be parsed.
	ErrParamInvalid = errors.New("invalid parameter value")
)

// Param returns the named parameter's value, or "" when the match did not
// bind it. Use HasParam to distinguish an absent parameter from an empty
// value.
func (info *MatchInfo) Param(name string) string {
	return info.Params[name]
}

// HasParam reports whether the match bound the named parameter. Optional
// captures that were absent from the path are not bound.
func (info *MatchInfo) HasParam(name string) bool {
	_, ok := info.Params[name]
	return ok
}

// ParamOr returns the named parameter's value, or def when the match did not
// bind it.
func (info *MatchInfo) ParamOr(name, def string) string {
	if v, ok := info.Params[name]; ok {
		return v
	}

	return def
}

// required returns the named parameter's value, or an error wrapping
// ErrParamMissing when the match did not bind it. A bound empty value is not
// missing; the typed parsers report it as invalid instead.
func (info *MatchInfo) required(name string) (string, error) {
	v, ok := info.Params[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrParamMissing, name)
	}

	return v, nil
}

// ParamInt parses a matched parameter as an int.
// Returns an error if the parameter is missing or cannot be parsed.
//
// Example:
//
//	info := m.Match("/books/42")
//	id, err := info.ParamInt("id")
//	if err != nil {
//	    return err
//	}
func (info *MatchInfo) ParamInt(name string) (int, error) {
	s, err := info.required(name)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
	}

	return val, nil
}

// ParamInt64 parses a matched parameter as an int64.
// Returns an error if the parameter is missing or cannot be parsed.
func (info *MatchInfo) ParamInt64(name string) (int64, error) {
	s, err := info.required(name)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
	}

	return val, nil
}

// ParamIntOr parses a matched parameter as an int, returning def when the
// parameter is missing or cannot be parsed.
func (info *MatchInfo) ParamIntOr(name string, def int) int {
	if v, err := strconv.Atoi(info.Params[name]); err == nil {
		return v
	}

	return def
}

// ParamFloat64 parses a matched parameter as a float64.
// Returns an error if the parameter is missing or cannot be parsed.
func (info *MatchInfo) ParamFloat64(name string) (float64, error) {
	s, err := info.required(name)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
	}

	return val, nil
}

// ParamBoolOr parses a matched parameter as a bool, returning def when the
// parameter is missing or unrecognized.
// Valid values: "true", "1", "yes", "on" (case-insensitive) = true;
// "false", "0", "no", "off" = false.
func (info *MatchInfo) ParamBoolOr(name string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(info.Params[name])) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// uuidGroups lists the [start, end) byte ranges of the five hex groups in the
// canonical UUID form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
var uuidGroups = [5][2]int{{0, 8}, {9, 13}, {14, 18}, {19, 23}, {24, 36}}

// ParamUUID parses a matched parameter as a UUID (RFC 4122 format).
// Returns an error if the parameter is missing or is not a valid UUID.
func (info *MatchInfo) ParamUUID(name string) ([16]byte, error) {
	var uuid [16]byte

	s, err := info.required(name)
	if err != nil {
		return uuid, err
	}

	// Canonical form only: 32 hex digits in five hyphen-separated groups.
	if len(s) != 36 {
		return uuid, fmt.Errorf("%w: %s (invalid UUID length)", ErrParamInvalid, name)
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid, fmt.Errorf("%w: %s (invalid UUID format)", ErrParamInvalid, name)
	}

	idx := 0
	for _, g := range uuidGroups {
		for i := g[0]; i < g[1]; i += 2 {
			high := hexToByte(s[i])
			low := hexToByte(s[i+1])
			if high == 255 || low == 255 {
				return uuid, fmt.Errorf("%w: %s (invalid hex in UUID)", ErrParamInvalid, name)
			}
			uuid[idx] = high<<4 | low
			idx++
		}
	}

	return uuid, nil
}

// hexToByte converts a hex character to its byte value.
// Returns 255 for invalid characters.
func hexToByte(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}

	return 255 // invalid
}

// ParamTime parses a matched parameter as a time.Time using the specified
// layout.
// Returns an error if the parameter is missing or cannot be parsed.
//
// Example:
//
//	info := m.Match("/posts/2024-01-31")
//	date, err := info.ParamTime("date", "2006-01-02")
func (info *MatchInfo) ParamTime(name, layout string) (time.Time, error) {
	s, err := info.required(name)
	if err != nil {
		return time.Time{}, err
	}

	val, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s (%w)", ErrParamInvalid, name, err)
	}

	return val, nil
}

// ParamIntRange parses a matched parameter as an int and validates it's
// within the range [minVal, maxVal].
// Returns an error if the parameter is missing, cannot be parsed, or is out
// of range.
func (info *MatchInfo) ParamIntRange(name string, minVal, maxVal int) (int, error) {
	val, err := info.ParamInt(name)
	if err != nil {
		return 0, err
	}

	if val < minVal || val > maxVal {
		return 0, fmt.Errorf("%w: %s (value %d not in range [%d, %d])", ErrParamInvalid, name, val, minVal, maxVal)
	}

	return val, nil
}

// ParamEnum validates that a matched parameter is one of the allowed values.
// Returns an error if the parameter is missing or not in the allowed list.
func (info *MatchInfo) ParamEnum(name string, allowed ...string) (string, error) {
	s, err := info.required(name)
	if err != nil {
		return "", err
	}

	if slices.Contains(allowed, s) {
		return s, nil
	}

	return "", fmt.Errorf("%w: %s (value %q not in allowed list: %v)", ErrParamInvalid, name, s, allowed)
}
