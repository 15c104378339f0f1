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
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"rivaas.dev/urlmapping/pattern"
)

// DefaultEncoding is the character encoding used when the encoding argument
// of the CreateURL family is empty.
const DefaultEncoding = "UTF-8"

// CreateURL builds a URL for the mapping from parameter values, walking the
// declared tokens and substituting each captured wildcard with the value of
// its aligned constraint's parameter. Values are percent-encoded in the
// named character encoding; an empty name means DefaultEncoding.
//
// An optional token whose parameter has no value ends the path there.
// Values reaching a "(**)" token may span segments: each "/"-separated part
// is encoded separately. Parameter values not consumed by the path are
// appended as a query string in lexical key order, except the reserved names
// "controller" and "action".
//
// The result starts with the context path when one was configured with
// WithContextPath.
//
// It returns a MissingParameterError when a required parameter has no value
// and an EncodingError when the encoding is unknown or cannot represent a
// value.
func (m *Mapping) CreateURL(values map[string]any, encoding string) (string, error) {
	return m.createURL(values, encoding, true)
}

// CreateURLWithFragment builds a URL like CreateURL and appends an encoded
// fragment.
func (m *Mapping) CreateURLWithFragment(values map[string]any, encoding, fragment string) (string, error) {
	u, err := m.createURL(values, encoding, true)
	if err != nil {
		return "", err
	}
	return appendFragment(u, fragment, encoding)
}

// CreateRelativeURL builds a URL like CreateURL but never prepends the
// context path.
func (m *Mapping) CreateRelativeURL(values map[string]any, encoding string) (string, error) {
	return m.createURL(values, encoding, false)
}

// CreateRelativeURLWithFragment builds a URL like CreateRelativeURL and
// appends an encoded fragment.
func (m *Mapping) CreateRelativeURLWithFragment(values map[string]any, encoding, fragment string) (string, error) {
	u, err := m.createURL(values, encoding, false)
	if err != nil {
		return "", err
	}
	return appendFragment(u, fragment, encoding)
}

// CreateTargetURL builds a URL like CreateURL with the target identifiers
// merged into the parameter values under their reserved names. The values
// map is not modified. Empty identifiers are left out.
func (m *Mapping) CreateTargetURL(controller, action, namespace, plugin string, values map[string]any, encoding string) (string, error) {
	merged := make(map[string]any, len(values)+4)
	for k, v := range values {
		merged[k] = v
	}
	if controller != "" {
		merged[paramController] = controller
	}
	if action != "" {
		merged[paramAction] = action
	}
	if namespace != "" {
		merged[paramNamespace] = namespace
	}
	if plugin != "" {
		merged[paramPlugin] = plugin
	}
	return m.createURL(merged, encoding, true)
}

func (m *Mapping) createURL(values map[string]any, encodingName string, includeContextPath bool) (string, error) {
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if includeContextPath && m.contextPath != nil {
		buf.WriteString(m.contextPath())
	}

	used := make(map[string]struct{}, len(m.constraints)+2)
	cursor := 0

walk:
	for i := 0; i < m.data.TokenCount(); i++ {
		raw := m.data.Token(i).Raw

		if i == m.data.TokenCount()-1 && m.data.HasOptionalExtension() {
			stop, err := m.appendExtensionToken(buf, raw, values, used, &cursor, enc, encodingName)
			if err != nil {
				return "", err
			}
			if stop {
				break
			}
			continue
		}

		raw = strings.TrimSuffix(raw, "?")
		if !pattern.HasMarker(raw) {
			buf.WriteByte('/')
			buf.WriteString(raw)
			continue
		}

		assembled, err := pattern.SubstituteMarkers(raw, func(marker string) (string, error) {
			return m.resolveMarker(marker, values, used, &cursor)
		})
		if err != nil {
			return "", err
		}

		switch {
		case strings.Contains(assembled, "/") && raw == pattern.CapturedDoubleWildcard:
			assembled = strings.TrimPrefix(assembled, "/")
			for strings.HasSuffix(assembled, "/") {
				assembled = assembled[:len(assembled)-1]
			}
			for _, seg := range strings.Split(assembled, "/") {
				encoded, err := encodeValue(seg, enc, encodingName)
				if err != nil {
					return "", err
				}
				buf.WriteByte('/')
				buf.WriteString(encoded)
			}
		case assembled != "":
			encoded, err := encodeValue(assembled, enc, encodingName)
			if err != nil {
				return "", err
			}
			buf.WriteByte('/')
			buf.WriteString(encoded)
		default:
			// An omitted optional token ends the path; later tokens would
			// leave a gap.
			break walk
		}
	}

	if err := m.appendQuery(buf, values, used, enc, encodingName); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// appendExtensionToken renders the final token of a pattern that ends in
// "(.(*))". A leading "(*)" consumes the next constraint as usual; the
// extension itself consumes the one after and renders as "." plus the value,
// or disappears when the value is absent. The returned stop flag is set when
// an absent nullable value ends the path early.
func (m *Mapping) appendExtensionToken(buf *bytebufferpool.ByteBuffer, raw string, values map[string]any, used map[string]struct{}, cursor *int, enc encoding.Encoding, encodingName string) (bool, error) {
	token := raw + pattern.OptionalExtension

	if strings.HasPrefix(token, pattern.CapturedWildcard) && *cursor < len(m.constraints) {
		cp := m.constraints[*cursor]
		*cursor++
		used[cp.PropertyName()] = struct{}{}

		value, ok := values[cp.PropertyName()]
		if !ok || value == nil {
			if cp.Nullable() {
				return true, nil
			}
			return false, &MissingParameterError{Parameter: cp.PropertyName(), Pattern: m.data.Pattern()}
		}
		encoded, err := encodeValue(stringify(value), enc, encodingName)
		if err != nil {
			return false, err
		}
		rest := strings.TrimPrefix(token[len(pattern.CapturedWildcard):], "?")
		token = encoded + rest
	}

	var ext string
	if *cursor < len(m.constraints) {
		cp := m.constraints[*cursor]
		*cursor++
		used[cp.PropertyName()] = struct{}{}

		if value, ok := values[cp.PropertyName()]; ok && value != nil {
			encoded, err := encodeValue(stringify(value), enc, encodingName)
			if err != nil {
				return false, err
			}
			ext = "." + encoded
		}
	}
	token = strings.ReplaceAll(token, pattern.OptionalExtension+"?", ext)
	token = strings.ReplaceAll(token, pattern.OptionalExtension, ext)

	buf.WriteByte('/')
	buf.WriteString(token)
	return false, nil
}

// resolveMarker supplies the substitution for one captured wildcard marker
// during a token walk: the value of the next constraint's parameter, or the
// empty string when the value is absent and the constraint tolerates that.
func (m *Mapping) resolveMarker(marker string, values map[string]any, used map[string]struct{}, cursor *int) (string, error) {
	if *cursor >= len(m.constraints) {
		// A capture with no constraint has no parameter name to resolve.
		return "", &MissingParameterError{Parameter: marker, Pattern: m.data.Pattern()}
	}
	cp := m.constraints[*cursor]
	*cursor++
	used[cp.PropertyName()] = struct{}{}

	value, ok := values[cp.PropertyName()]
	if !ok || value == nil {
		if !cp.Nullable() {
			return "", &MissingParameterError{Parameter: cp.PropertyName(), Pattern: m.data.Pattern()}
		}
		return "", nil
	}
	return stringify(value), nil
}

// appendQuery serializes every parameter value not consumed by the token
// walk as a query string in lexical key order. The reserved names
// "controller" and "action" never serialize. Slice and array values expand
// into one pair per element.
func (m *Mapping) appendQuery(buf *bytebufferpool.ByteBuffer, values map[string]any, used map[string]struct{}, enc encoding.Encoding, encodingName string) error {
	used[paramController] = struct{}{}
	used[paramAction] = struct{}{}

	names := make([]string, 0, len(values))
	for name := range values {
		if _, ok := used[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	first := true
	appendPair := func(name string, value any) error {
		encodedName, err := encodeValue(name, enc, encodingName)
		if err != nil {
			return err
		}
		encodedValue, err := encodeValue(stringify(value), enc, encodingName)
		if err != nil {
			return err
		}
		if first {
			buf.WriteByte('?')
			first = false
		} else {
			buf.WriteByte('&')
		}
		buf.WriteString(encodedName)
		buf.WriteByte('=')
		buf.WriteString(encodedValue)
		return nil
	}

	for _, name := range names {
		value := values[name]
		if b, ok := value.([]byte); ok {
			if err := appendPair(name, string(b)); err != nil {
				return err
			}
			continue
		}
		rv := reflect.ValueOf(value)
		if value != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			for i := 0; i < rv.Len(); i++ {
				if err := appendPair(name, rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			continue
		}
		if err := appendPair(name, value); err != nil {
			return err
		}
	}
	return nil
}

// appendFragment appends "#" plus the encoded fragment. An empty fragment
// leaves the URL unchanged.
func appendFragment(u, fragment, encodingName string) (string, error) {
	if fragment == "" {
		return u, nil
	}
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return "", err
	}
	encoded, err := encodeValue(fragment, enc, encodingName)
	if err != nil {
		return "", err
	}
	return u + "#" + encoded, nil
}

// resolveEncoding maps a character encoding name to a transformer. UTF-8 and
// the empty name use the nil fast path: values percent-encode directly.
func resolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, &EncodingError{Encoding: name, Err: fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)}
	}
	if enc == nil {
		// Registered with IANA but no encoder available.
		return nil, &EncodingError{Encoding: name, Err: ErrUnsupportedEncoding}
	}
	return enc, nil
}

// encodeValue percent-encodes s for use in a path segment, query pair, or
// fragment. A non-nil enc first transforms s into the target character set
// so the escaped octets are in that encoding. Spaces encode as "%20", never
// "+".
func encodeValue(s string, enc encoding.Encoding, encodingName string) (string, error) {
	if enc != nil {
		transformed, err := enc.NewEncoder().String(s)
		if err != nil {
			return "", &EncodingError{Encoding: encodingName, Part: s, Err: err}
		}
		s = transformed
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), nil
}

// stringify renders a parameter value the way fmt would, with nil as the
// empty string.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
