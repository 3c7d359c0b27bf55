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

package primitives

import (
	"context"

	"github.com/grantworks/oauthcore/pkg/grant"
)

// Extension observes and modifies grants at the three hook points a flow invokes:
// authorization-request, access-token-request, and refresh-request (spec §4.5). An
// Endpoint supplies one aggregate Extension to a flow; composing several
// extensions into one aggregate (so cross-cutting extensions can coordinate) is
// the job of a composite like frontend.AddonList, not of the flow machines.
type Extension interface {
	// ID identifies this extension's slot in a Grant's Extensions map.
	ID() string

	// Authorization runs during the authorization request, before a grant exists.
	// pre is the negotiated PreGrant; req is the flow's abstract request, opaque
	// to the flow machine itself. HookOutcome.Values returned here are stored onto the
	// grant once the owner consents.
	Authorization(ctx context.Context, req any, pre grant.PreGrant) (HookOutcome, error)

	// AccessToken runs during an authorization_code access-token request, after
	// the grant has been extracted from its code. g carries whatever value this
	// extension attached during Authorization (via g.Extensions[ID()]). This is
	// PKCE's verification hook.
	AccessToken(ctx context.Context, req any, g grant.Grant) (HookOutcome, error)

	// Refresh runs during a refresh_token request, after the grant has been
	// recovered from the refresh token and (if requested) narrowed.
	Refresh(ctx context.Context, req any, g grant.Grant) (HookOutcome, error)
}

// HookOutcome is the result of a single Extension hook invocation: continue
// (Reject false, Values empty), continue-with-data (Reject false, Values
// non-empty), or reject-with-error (Reject true, Description carries the RFC
// error_description). Values is keyed by extension identifier rather than holding
// a single value so that a composite Extension (one that fans a hook out to
// several children, such as frontend.AddonList) can report all of its children's
// values in one outcome.
type HookOutcome struct {
	Reject      bool
	Description string
	Values      grant.Extensions
}

// Continue builds a HookOutcome that proceeds without attaching data.
func Continue() HookOutcome {
	return HookOutcome{}
}

// ContinueWithValue builds a HookOutcome that proceeds and attaches v to the grant
// under the given extension id. Single, non-composite extensions use this; a
// composite merges its children's Values maps directly.
func ContinueWithValue(id string, v grant.ExtensionValue) HookOutcome {
	return HookOutcome{Values: grant.Extensions{id: v}}
}

// Reject builds a HookOutcome that rejects the request with the given
// human-readable description.
func Reject(description string) HookOutcome {
	return HookOutcome{Reject: true, Description: description}
}

// NoopExtension is an Extension that never rejects and never attaches data. It is
// useful as the default "no extensions configured" aggregate, and as an embeddable
// base for extensions that only care about one of the three hooks.
type NoopExtension struct{ Name string }

// ID returns the configured name.
func (n NoopExtension) ID() string { return n.Name }

// Authorization always continues without data.
func (NoopExtension) Authorization(context.Context, any, grant.PreGrant) (HookOutcome, error) {
	return Continue(), nil
}

// AccessToken always continues without data.
func (NoopExtension) AccessToken(context.Context, any, grant.Grant) (HookOutcome, error) {
	return Continue(), nil
}

// Refresh always continues without data.
func (NoopExtension) Refresh(context.Context, any, grant.Grant) (HookOutcome, error) {
	return Continue(), nil
}
