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
)

// Refresh runs the refresh flow (spec §4.6.3): POST /token with
// grant_type=refresh_token. A public client presents no secret; auth.ClientID is
// still required and is checked against the refreshed grant's own client_id.
func Refresh(ctx context.Context, ep Endpoint, params NormalizedParameter, auth ClientAuthentication) (any, error) {
	registrar, ok := ep.Registrar()
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	issuer, ok := ep.Issuer()
	if !ok {
		return nil, ErrPrimitiveMissing
	}

	if grantType, _ := params.Get("grant_type"); grantType != "refresh_token" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrUnsupportedGrantType, "grant_type must be \"refresh_token\"")})
	}

	// Step 1: authenticate the client.
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

	refreshToken, hasRefresh := params.Get("refresh_token")
	if !hasRefresh || refreshToken == "" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidRequest, "missing refresh_token")})
	}

	// Step 2: recover the grant bound to the refresh token.
	g, err := issuer.RecoverRefresh(ctx, refreshToken)
	if err != nil {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, "refresh token unknown, expired, or revoked")})
	}

	// Step 3: the recovered grant must belong to the authenticated client.
	if g.ClientID != auth.ClientID {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, "refresh token was not issued to this client")})
	}

	// Step 4: optional scope narrowing. No widening: the requested scope must be
	// privileged to the grant's own scope.
	narrowed := g
	if requested, hasScope := params.Get("scope"); hasScope && requested != "" {
		requestedScope, err := grant.ParseScope(requested)
		if err != nil {
			return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidScope, "malformed scope")})
		}
		if !requestedScope.PrivilegedTo(g.Scope) {
			return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidScope, "requested scope exceeds the grant")})
		}
		narrowed.Scope = requestedScope
	}

	// Step 5: refresh-phase extension hook.
	outcome, err := ep.Extension().Refresh(ctx, params, narrowed)
	if err != nil {
		return nil, fmt.Errorf("flow: refresh extension hook: %w", err)
	}
	if outcome.Reject {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidGrant, outcome.Description)})
	}
	if len(outcome.Values) > 0 {
		narrowed.Extensions = outcome.Values
	}

	// Step 6: mint the replacement token.
	issued, err := issuer.Refresh(ctx, refreshToken, narrowed)
	if err != nil {
		return nil, fmt.Errorf("flow: issuer.Refresh: %w", err)
	}

	return ep.Response(ctx, Template{Kind: Ok, Body: &TokenResponse{
		AccessToken:  issued.Token,
		TokenType:    issued.TokenType,
		ExpiresIn:    issued.ExpiresIn(time.Now()),
		RefreshToken: issued.Refresh,
		Scope:        narrowed.Scope.String(),
		Extra:        publicExtensionStrings(narrowed.Extensions),
	}})
}
