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

	"rivaas.dev/urlmapping/pattern"
)

// MatchInfo describes a successful match of a path against a mapping. The
// identifier fields carry the mapping's declared target, with empty fields
// resolved from parameters of the same name.
type MatchInfo struct {
	// Params holds the captured parameter values merged with the mapping's
	// declared static parameters. Declared parameters win on name collision.
	Params map[string]string

	// Controller, Action, Namespace, Plugin, View and Redirect identify the
	// forwarding target.
	Controller string
	Action     string
	Namespace  string
	Plugin     string
	View       string
	Redirect   string

	// HTTPMethod is the method the mapping applies to, or AnyMethod.
	HTTPMethod string

	// Version is the API version the mapping applies to, or version.Any.
	Version string

	// Pattern is the declared pattern of the mapping that matched.
	Pattern string
}

// Match tests path against every logical variant of the mapping, most
// specific first, and returns the match produced by the first variant whose
// pattern and constraints both accept the path. It returns nil when no
// variant matches.
//
// Match does not consider HTTP methods or versions; use Table.MatchMethod
// for method-aware lookup.
func (m *Mapping) Match(path string) *MatchInfo {
	for _, v := range m.variants {
		if info, _ := m.matchVariant(v, path); info != nil {
			return info
		}
	}
	return nil
}

// matchVariant matches path against one compiled variant. The second return
// is true when the variant's pattern accepted the path but a constraint
// rejected a captured value.
func (m *Mapping) matchVariant(v *pattern.Compiled, path string) (*MatchInfo, bool) {
	idx := v.Regexp().FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}

	groups := v.GroupCount()
	ext := v.ExtensionGroup()
	params := make(map[string]string, len(m.constraints)+len(m.params))

	for i := 0; i < groups; i++ {
		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		absent := start < 0

		// The extension group is always declared last and binds the last
		// constraint, which the aligner has already marked nullable.
		if ext >= 0 && i == ext {
			if n := len(m.constraints); n > 0 {
				cp := m.constraints[n-1]
				if absent {
					if !cp.Nullable() {
						return nil, true
					}
				} else {
					value := path[start:end]
					if !cp.Validate(value) {
						return nil, true
					}
					params[cp.PropertyName()] = value
				}
			}
			break
		}

		if absent {
			if i < len(m.constraints) && !m.constraints[i].Nullable() {
				return nil, true
			}
			continue
		}

		value := path[start:end]
		if j := strings.IndexByte(value, '?'); j >= 0 {
			value = value[:j]
		}
		if i < len(m.constraints) {
			cp := m.constraints[i]
			if !cp.Validate(value) {
				return nil, true
			}
			params[cp.PropertyName()] = value
		}
	}

	// Constraints beyond the variant's captures bind nothing; they must
	// tolerate the absence.
	for i := groups; i < len(m.constraints); i++ {
		if !m.constraints[i].Nullable() {
			return nil, true
		}
	}

	for k, v := range m.params {
		params[k] = v
	}

	info := &MatchInfo{
		Params:     params,
		Controller: m.target.Controller,
		Action:     m.target.Action,
		Namespace:  m.target.Namespace,
		Plugin:     m.target.Plugin,
		View:       m.target.View,
		Redirect:   m.target.Redirect,
		HTTPMethod: m.httpMethod,
		Version:    m.version,
		Pattern:    m.data.Pattern(),
	}
	if info.Controller == "" {
		info.Controller = params[paramController]
	}
	if info.Action == "" {
		info.Action = params[paramAction]
	}
	if info.Namespace == "" {
		info.Namespace = params[paramNamespace]
	}
	if info.Plugin == "" {
		info.Plugin = params[paramPlugin]
	}
	if info.View == "" {
		info.View = params[paramView]
	}
	if info.Redirect == "" {
		info.Redirect = params[paramRedirect]
	}

	return info, false
}
