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

	rverrors "rivaas.dev/errors"
)

// Common errors returned by the urlmapping package.
var (
	// ErrNilMapping indicates that a nil mapping was added to a table.
	ErrNilMapping = errors.New("mapping cannot be nil")

	// ErrNilConstraint indicates that a nil constraint was supplied to a mapping.
	ErrNilConstraint = errors.New("constraint cannot be nil")

	// ErrNilLogger indicates that a nil logger was configured on a table.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrMissingParameter indicates that reverse URL creation required a
	// parameter that was not supplied. It is the unwrap target of
	// MissingParameterError.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrUnsupportedEncoding indicates that a character encoding name is not
	// registered with IANA or has no available encoder. It is the unwrap
	// target of EncodingError.
	ErrUnsupportedEncoding = errors.New("unsupported character encoding")
)

// Compile-time checks that the typed errors implement the optional
// rivaas.dev/errors contracts recognized by its formatters.
var (
	_ rverrors.ErrorCode    = (*PatternError)(nil)
	_ rverrors.ErrorDetails = (*PatternError)(nil)
	_ rverrors.ErrorCode    = (*MissingParameterError)(nil)
	_ rverrors.ErrorDetails = (*MissingParameterError)(nil)
	_ rverrors.ErrorCode    = (*EncodingError)(nil)
	_ rverrors.ErrorDetails = (*EncodingError)(nil)
)

// PatternError is returned by New when a mapping pattern cannot be parsed or
// compiled. It wraps the underlying cause, such as pattern.ErrEmptyPattern or
// a regexp compilation failure.
type PatternError struct {
	// Pattern is the mapping pattern that failed to compile.
	Pattern string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid url mapping pattern [%s]: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine-readable error code.
func (e *PatternError) Code() string {
	return "URL_MAPPING_INVALID_PATTERN"
}

// Details returns structured data about the failure.
func (e *PatternError) Details() any {
	return map[string]any{"pattern": e.Pattern}
}

// MissingParameterError is returned by the CreateURL family when a required
// parameter has no value. errors.Is(err, ErrMissingParameter) reports true
// for it.
type MissingParameterError struct {
	// Parameter is the name of the missing parameter.
	Parameter string

	// Pattern is the mapping pattern the URL was created for.
	Pattern string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("cannot create url for mapping [%s]: parameter [%s] is required but was not specified",
		e.Pattern, e.Parameter)
}

// Unwrap returns ErrMissingParameter.
func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// Code returns a stable machine-readable error code.
func (e *MissingParameterError) Code() string {
	return "URL_MAPPING_MISSING_PARAMETER"
}

// Details returns structured data about the failure.
func (e *MissingParameterError) Details() any {
	return map[string]any{"parameter": e.Parameter, "pattern": e.Pattern}
}

// EncodingError is returned by the CreateURL family when a character encoding
// is unknown or a value cannot be represented in it.
type EncodingError struct {
	// Encoding is the requested encoding name.
	Encoding string

	// Part is the URL part that failed to encode. Empty when the encoding
	// name itself could not be resolved.
	Part string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("encoding [%s]: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("cannot encode url part [%s] with encoding [%s]: %v", e.Part, e.Encoding, e.Err)
}

// Unwrap returns the underlying cause.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine-readable error code.
func (e *EncodingError) Code() string {
	return "URL_MAPPING_UNSUPPORTED_ENCODING"
}

// Details returns structured data about the failure.
func (e *EncodingError) Details() any {
	return map[string]any{"encoding": e.Encoding, "part": e.Part}
}
