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
)

// pathEqual compares two redirect URIs the way the spec's "URL-path-equals" check
// requires: exact string comparison. Accepting a broader notion of equality (query
// or fragment-insensitive) would reopen exactly the redirect-confusion class of bug
// path equality exists to close.
func pathEqual(a, b string) bool { return a == b }

// AccessToken runs the access-token request for grant_type=authorization_code
// (spec §4.6.2): POST /token. auth is the already-resolved client credential; see
// ClientAuthentication's doc comment for why the flow does not extract it itself.
func AccessToken(ctx context.Context, ep Endpoint, params NormalizedParameter, auth ClientAuthentication) (any, error) {
	registrar, ok := ep.Registrar()
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	authorizer, ok := ep.Authorizer()
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	issuer, ok := ep.Issuer()
	if !ok {
		return nil, ErrPrimitiveMissing
	}

	if grantType, _ := params.Get("grant_type"); grantType != "authorization_code" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrUnsupportedGrantType, "grant_type must be \"authorization_code\"")})
	}

	if auth.ClientID == "" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidRequest, "missing client authentication")})
	}
	if err := registrar.Check(ctx, auth.ClientID, auth.Secret); err != nil {
		return ep.Response(ctx, Template{
			Kind:            Unauthorized,
			OAuthErr:        newOAuthError(ErrInvalidClient, ""),
			WWWAuthenticate: "Basic",
		})
	}

	code, hasCode := params.Get("code")
	redirectURI, _ := params.Get("redirect_uri")
	if !hasCode || code == "" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidRequest, "missing code")})
	}

	g, err := authorizer.Extract(ctx, code)
	if err != nil {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, "code unknown, expired, or already redeemed")})
	}

	if g.ClientID != auth.ClientID || !pathEqual(g.RedirectURI, redirectURI) {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, "client_id or redirect_uri does not match the authorization request")})
	}

	outcome, err := ep.Extension().AccessToken(ctx, params, g)
	if err != nil {
		return nil, fmt.Errorf("flow: access-token extension hook: %w", err)
	}
	if outcome.Reject {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, outcome.Description)})
	}

	issued, err := issuer.Issue(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("flow: issuer.Issue: %w", err)
	}

	return ep.Response(ctx, Template{Kind: Ok, Body: &TokenResponse{
		AccessToken:  issued.Token,
		TokenType:    issued.TokenType,
		ExpiresIn:    issued.ExpiresIn(time.Now()),
		RefreshToken: issued.Refresh,
		Scope:        g.Scope.String(),
		Extra:        publicExtensionStrings(g.Extensions),
	}})
}
