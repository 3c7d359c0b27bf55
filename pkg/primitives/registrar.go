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

// Package primitives declares the pluggable capability interfaces the flow state
// machines in package flow are built on: Registrar, Authorizer, Issuer,
// OwnerSolicitor, Extension, TagGrant, and PasswordPolicy. Each interface pins an
// abstract capability; concrete implementations (in-memory, assertion-backed, or a
// caller's own persistent backend) are sibling packages or external code.
package primitives

import (
	"context"
	"errors"

	"github.com/grantworks/oauthcore/pkg/grant"
)

// Registrar error kinds (spec §4.1). ErrUnregisteredClient: unknown client.
// ErrMismatchedRedirect: redirect_uri not registered for the client.
// ErrRegistrarUnspecified: internal/opaque failure (never distinguishes further,
// per spec §7's "never leak the distinguishing cause").
var (
	ErrUnregisteredClient   = errors.New("registrar: unregistered client")
	ErrMismatchedRedirect   = errors.New("registrar: mismatched redirect")
	ErrRegistrarUnspecified = errors.New("registrar: unspecified")
	// ErrScopeEscalation is returned by Negotiate when the requested scope is not
	// a subset of the client's default scope (RFC 6749 §3.3).
	ErrScopeEscalation = errors.New("registrar: requested scope exceeds default")
)

// BoundRedirectParams are the inputs to Registrar.BoundRedirect.
type BoundRedirectParams struct {
	ClientID string
	// RedirectURI is the client-supplied redirect URI, or "" if the request did
	// not supply one (in which case the client's primary URI is used).
	RedirectURI string
	// Scope is the raw requested scope string, or "" if none was requested.
	Scope string
	// State is the client-supplied opaque state value, echoed on redirect errors.
	State string
}

// ClientKind distinguishes public clients (no secret) from confidential clients
// (must authenticate with a passphrase).
type ClientKind int

const (
	// Public clients present no secret; Registrar.Check succeeds only when no
	// passphrase is given.
	Public ClientKind = iota
	// Confidential clients must present a passphrase that verifies against the
	// stored hash.
	Confidential
)

// Client is a registrar's record of one registered OAuth client.
type Client struct {
	ClientID string
	// RedirectURI is the primary redirect URI.
	RedirectURI string
	// AdditionalRedirectURIs are further URIs this client may request.
	AdditionalRedirectURIs []string
	// DefaultScope is the scope granted when the client does not narrow it, and
	// the ceiling against which requested scopes are checked for escalation.
	DefaultScope grant.Scope
	// Kind distinguishes public and confidential clients.
	Kind ClientKind
	// PassphraseHash is the opaque hash produced by a PasswordPolicy. Unused for
	// Public clients.
	PassphraseHash []byte
}

// Registrar is the client registry, redirect-URI negotiator, client
// authenticator, and scope negotiator (spec §4.1).
type Registrar interface {
	// BoundRedirect resolves the effective redirect URI for a client and returns a
	// PreGrant carrying that URI and the requested-or-default scope (scope
	// negotiation against the client's default happens in Negotiate, not here).
	//
	// If params.RedirectURI is empty the client's primary URI is used; otherwise
	// it must path-equal the primary URI or one of AdditionalRedirectURIs.
	BoundRedirect(ctx context.Context, params BoundRedirectParams) (grant.PreGrant, error)

	// Negotiate computes the final scope for a PreGrant: the intersection of the
	// requested scope and the client's default scope when a scope was requested,
	// or the default scope itself when none was requested. It fails with
	// ErrScopeEscalation if the requested scope is not a subset of the default.
	Negotiate(ctx context.Context, pre grant.PreGrant, requestedScope string) (grant.PreGrant, error)

	// Check authenticates a client. Public clients must present passphrase == nil;
	// confidential clients must present a passphrase that verifies against the
	// stored hash. All failure modes collapse to ErrRegistrarUnspecified so a
	// caller-visible error never distinguishes "unknown client" from "wrong
	// secret" from "public client given a secret" (spec §4.1, §7).
	Check(ctx context.Context, clientID string, passphrase []byte) error
}

// ErrPassphraseMismatch is returned by a PasswordPolicy's Check when the
// passphrase does not verify against the stored hash.
var ErrPassphraseMismatch = errors.New("primitives: passphrase mismatch")

// PasswordPolicy is a replaceable strategy for hashing and verifying client
// passphrases (spec §4.1). Implementations must use fresh random salts and
// constant-time verification.
type PasswordPolicy interface {
	// Store hashes passphrase for clientID and returns an opaque hash suitable for
	// long-term storage on the Client record.
	Store(clientID string, passphrase []byte) ([]byte, error)
	// Check verifies passphrase against a previously stored hash. It returns
	// ErrPassphraseMismatch (wrapped as appropriate) on mismatch.
	Check(clientID string, passphrase []byte, stored []byte) error
}
