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

// Package grant defines the value objects shared across the authorization-server
// core: scopes, pre-grants, grants, issued tokens, and the extension-value map
// carried inside a grant. None of these types perform I/O; they are produced and
// consumed by the primitives and flow machines in sibling packages.
package grant

import "time"

// PreGrant is a proposed grant during authorization, before owner consent. It is
// produced by a Registrar and is immutable and self-owning: it outlives the
// registrar call that created it.
type PreGrant struct {
	// ClientID is the registered client this pre-grant was bound to.
	ClientID string
	// RedirectURI is the effective, registrar-approved redirect URI.
	RedirectURI string
	// Scope is the requested-or-default scope negotiated for this client.
	Scope Scope
}

// ExtensionValue is a single piece of data an Extension attaches to a Grant.
// Public values are round-tripped to the client in the token response; private
// values are only ever echoed back to the same extension on later requests that
// carry the grant, never surfaced to the client.
type ExtensionValue struct {
	// Public marks this value as safe to return to the client.
	Public bool
	// Data is the extension-defined payload, or "" if the extension only needs to
	// record that it ran (presence without data).
	Data string
}

// Extensions is a mapping from extension identifier to the extension value that
// extension attached to a grant. It is a plain map on purpose (see spec §9): an
// extension never walks back from a grant to the extension list, so there is no
// cycle to represent.
type Extensions map[string]ExtensionValue

// Clone returns a deep copy of the extension map.
func (e Extensions) Clone() Extensions {
	if e == nil {
		return nil
	}
	out := make(Extensions, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Public returns the subset of extension values marked Public.
func (e Extensions) Public() Extensions {
	out := make(Extensions)
	for k, v := range e {
		if v.Public {
			out[k] = v
		}
	}
	return out
}

// HasPrivate reports whether any extension value in the map is private. Assertion-
// backed authorizers refuse to encode grants for which this is true (spec §4.2).
func (e Extensions) HasPrivate() bool {
	for _, v := range e {
		if !v.Public {
			return true
		}
	}
	return false
}

// Grant is an issued grant: the server-side record binding an owner, a client, a
// redirect URI, a scope set, and an expiry. It is the root datum of the protocol.
//
// Invariants (enforced by the code that constructs a Grant, not by this type
// itself): Until is strictly in the future at issuance, Scope is non-empty, and
// RedirectURI is one of the registrar-accepted URIs for ClientID.
type Grant struct {
	// OwnerID is the opaque identifier of the resource owner who consented.
	OwnerID string
	// ClientID is the client this grant was issued to.
	ClientID string
	// RedirectURI is the redirect URI bound to this grant.
	RedirectURI string
	// Scope is the scope granted to the client.
	Scope Scope
	// Until is the absolute expiry of this grant.
	Until time.Time
	// Extensions carries the per-extension values attached at issuance.
	Extensions Extensions
}

// Clone returns a deep copy of the grant, including its extension map. Flow
// machines pass grants by value between primitive calls; cloning before handing a
// grant to a primitive that might retain it avoids aliasing the caller's copy.
func (g Grant) Clone() Grant {
	g.Extensions = g.Extensions.Clone()
	return g
}

// Expired reports whether the grant's expiry is at or before now.
func (g Grant) Expired(now time.Time) bool {
	return !now.Before(g.Until)
}

// DefaultTokenType is the token_type value used when an issuer does not override it.
const DefaultTokenType = "Bearer"

// IssuedToken is the result of an Issuer minting credentials for a Grant.
//
// Invariant: access tokens are unique within an issuer's lifetime with
// overwhelming probability; when Refresh is non-empty it identifies exactly one
// grant.
type IssuedToken struct {
	// Token is the access token.
	Token string
	// Refresh is the refresh token, or "" if none was issued.
	Refresh string
	// Until is the access token's absolute expiry.
	Until time.Time
	// TokenType is the token type, defaulting to "Bearer".
	TokenType string
}

// ExpiresIn returns the number of whole seconds until Until, relative to now,
// clamped to zero if already expired. This is the integer the token response's
// "expires_in" field uses.
func (t IssuedToken) ExpiresIn(now time.Time) int64 {
	d := t.Until.Sub(now)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}
