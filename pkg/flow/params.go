// Copyright 2026 The Oauthcore Authors
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

// Package flow implements the protocol state machines driving the Authorization
// Code, Access Token, Refresh, Resource, and Client Credentials flows. Each flow is
// a pure function from an Endpoint plus a parsed request to a Response: it holds no
// state across primitive calls, so a caller may run it straight through (as these
// functions do) or drive it as a sequence of suspension points without changing its
// semantics (spec §4.6, §5).
package flow

import (
	"errors"
	"fmt"
)

// ErrDuplicateParameter is returned by NewNormalizedParameter when the same key
// appears twice with different values.
var ErrDuplicateParameter = errors.New("flow: duplicate parameter with conflicting values")

// NormalizedParameter is a single-valued view over a request's parameters. Unlike
// a raw multi-value map, constructing one enforces that any repeated key carried
// the same value every time it appeared; a repeated key with differing values is a
// hard parse error rather than a silent "last one wins".
type NormalizedParameter map[string]string

// NewNormalizedParameter builds a NormalizedParameter from a multi-valued source
// (e.g. url.Values, or a parsed form body). Duplicate keys collapse if every
// occurrence carries an identical value; otherwise it returns
// ErrDuplicateParameter.
func NewNormalizedParameter(multi map[string][]string) (NormalizedParameter, error) {
	out := make(NormalizedParameter, len(multi))
	for k, values := range multi {
		if len(values) == 0 {
			continue
		}
		first := values[0]
		for _, v := range values[1:] {
			if v != first {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateParameter, k)
			}
		}
		out[k] = first
	}
	return out, nil
}

// Get returns the value for key and whether it was present. It also satisfies the
// structural "paramSource" contract that extensions (e.g. pkg/pkce) read their
// inputs through, and the signature OwnerSolicitor implementations expect from the
// abstract request they're handed.
func (p NormalizedParameter) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}
