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

// Package frontend provides a frontend-agnostic reference implementation of the
// request/response/endpoint plumbing an HTTP adapter would otherwise supply: a
// plain Request/Response pair and an Endpoint wiring the primitives together (spec
// §4.4, grounded in oxide-auth's frontends/simple).
package frontend

import (
	"context"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// AddonList composes several loosely related Extensions into one aggregate
// Extension an Endpoint can hand to a flow. Each hook runs every child in order;
// the first child to reject short-circuits the rest and becomes the aggregate's
// rejection. Surviving children's HookOutcome.Values are merged into one map,
// exactly as oxide-auth's frontends/simple/extensions/list.rs collects AddonResults
// from each addon in turn.
type AddonList struct {
	// Name identifies this aggregate's own slot; it carries no data of its own, so
	// it only matters if something keys off of it directly.
	Name string

	children []primitives.Extension
}

// NewAddonList builds an AddonList from zero or more children, run in the given
// order.
func NewAddonList(name string, children ...primitives.Extension) *AddonList {
	return &AddonList{Name: name, children: append([]primitives.Extension(nil), children...)}
}

// Add appends an extension to the end of the run order.
func (a *AddonList) Add(ext primitives.Extension) {
	a.children = append(a.children, ext)
}

// ID returns the configured name.
func (a *AddonList) ID() string { return a.Name }

// Authorization runs every child's Authorization hook in order.
func (a *AddonList) Authorization(ctx context.Context, req any, pre grant.PreGrant) (primitives.HookOutcome, error) {
	return a.run(func(ext primitives.Extension) (primitives.HookOutcome, error) {
		return ext.Authorization(ctx, req, pre)
	})
}

// AccessToken runs every child's AccessToken hook in order.
func (a *AddonList) AccessToken(ctx context.Context, req any, g grant.Grant) (primitives.HookOutcome, error) {
	return a.run(func(ext primitives.Extension) (primitives.HookOutcome, error) {
		return ext.AccessToken(ctx, req, g)
	})
}

// Refresh runs every child's Refresh hook in order.
func (a *AddonList) Refresh(ctx context.Context, req any, g grant.Grant) (primitives.HookOutcome, error) {
	return a.run(func(ext primitives.Extension) (primitives.HookOutcome, error) {
		return ext.Refresh(ctx, req, g)
	})
}

func (a *AddonList) run(call func(primitives.Extension) (primitives.HookOutcome, error)) (primitives.HookOutcome, error) {
	merged := make(grant.Extensions)
	for _, ext := range a.children {
		outcome, err := call(ext)
		if err != nil {
			return primitives.HookOutcome{}, err
		}
		if outcome.Reject {
			return outcome, nil
		}
		for id, v := range outcome.Values {
			merged[id] = v
		}
	}
	if len(merged) == 0 {
		return primitives.Continue(), nil
	}
	return primitives.HookOutcome{Values: merged}, nil
}

var _ primitives.Extension = (*AddonList)(nil)
