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

package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// ClientCredentialsOwnerID is the prefix of the synthetic OwnerID stamped on a
// grant minted by ClientCredentials; the full OwnerID is this prefix followed by
// the client id. The client authenticates for itself, so there is no separate
// resource owner to name (RFC 6749 §4.4, spec §4.6.5).
const ClientCredentialsOwnerID = "client:"

// DefaultClientCredentialsLifetime is the access-grant lifetime ClientCredentials
// uses when no override is supplied.
const DefaultClientCredentialsLifetime = time.Hour

// ClientCredentials runs the client credentials flow (spec §4.6.5): POST /token
// with grant_type=client_credentials. Only confidential clients may use this
// grant; auth.Secret must be non-nil. No refresh token is issued, per RFC 6749
// §4.4.3's SHOULD NOT.
func ClientCredentials(ctx context.Context, ep Endpoint, params NormalizedParameter, auth ClientAuthentication, lifetime time.Duration) (any, error) {
	if lifetime <= 0 {
		lifetime = DefaultClientCredentialsLifetime
	}

	registrar, ok := ep.Registrar()
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	issuer, ok := ep.Issuer()
	if !ok {
		return nil, ErrPrimitiveMissing
	}

	if grantType, _ := params.Get("grant_type"); grantType != "client_credentials" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrUnsupportedGrantType, "grant_type must be \"client_credentials\"")})
	}

	if auth.ClientID == "" || auth.Secret == nil {
		return ep.Response(ctx, Template{
			Kind:            Unauthorized,
			OAuthErr:        newOAuthError(ErrInvalidClient, "client credentials grant requires a confidential client"),
			WWWAuthenticate: "Basic",
		})
	}
	if err := registrar.Check(ctx, auth.ClientID, auth.Secret); err != nil {
		return ep.Response(ctx, Template{
			Kind:            Unauthorized,
			OAuthErr:        newOAuthError(ErrInvalidClient, ""),
			WWWAuthenticate: "Basic",
		})
	}

	// Reuse the registrar's existing redirect/scope machinery to resolve the
	// client's default scope; the resolved redirect URI itself is unused here,
	// since this grant has no redirect step.
	scopeParam, _ := params.Get("scope")
	pre, err := registrar.BoundRedirect(ctx, primitives.BoundRedirectParams{ClientID: auth.ClientID})
	if err != nil {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidClient, "client not recognized")})
	}
	pre, err = registrar.Negotiate(ctx, pre, scopeParam)
	if err != nil {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidScope, err.Error())})
	}

	g := grant.Grant{
		OwnerID:  ClientCredentialsOwnerID + auth.ClientID,
		ClientID: auth.ClientID,
		Scope:    pre.Scope,
		Until:    time.Now().Add(lifetime),
	}

	issued, err := issuer.Issue(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("flow: issuer.Issue: %w", err)
	}
	// No refresh token: RFC 6749 §4.4.3.
	issued.Refresh = ""

	return ep.Response(ctx, Template{Kind: Ok, Body: &TokenResponse{
		AccessToken: issued.Token,
		TokenType:   issued.TokenType,
		ExpiresIn:   issued.ExpiresIn(time.Now()),
		Scope:       g.Scope.String(),
	}})
}
