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

// DefaultCodeLifetime is the authorization code expiry Authorization uses when no
// override is supplied (RFC 6749 §4.1.2 recommends ten minutes or less).
const DefaultCodeLifetime = 10 * time.Minute

// redirectQuery builds a redirect's query parameters: state (when present) plus
// the error code and any error_description/error_uri. The result is a plain map
// with no key order; the Endpoint decides how the parameters are ordered when it
// encodes the redirect (spec's ErrorUrl supplemental behavior).
func redirectQuery(state string, oauthErr *OAuthError) map[string]string {
	q := make(map[string]string, 4)
	if state != "" {
		q["state"] = state
	}
	q["error"] = oauthErr.Code
	if oauthErr.Description != "" {
		q["error_description"] = oauthErr.Description
	}
	if oauthErr.URI != "" {
		q["error_uri"] = oauthErr.URI
	}
	return q
}

// Authorization runs the authorization-code flow's authorization request (spec
// §4.6.1): GET /authorize. params must already be normalized. codeLifetime is the
// expiry stamped on the minted Grant; pass 0 to use DefaultCodeLifetime.
func Authorization(ctx context.Context, ep Endpoint, params NormalizedParameter, codeLifetime time.Duration) (any, error) {
	if codeLifetime <= 0 {
		codeLifetime = DefaultCodeLifetime
	}

	registrar, ok := ep.Registrar()
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	authorizer, ok := ep.Authorizer()
	if !ok {
		return nil, ErrPrimitiveMissing
	}

	state, _ := params.Get("state")

	// Step 1: parse and reject ill-formed requests directly, never by redirect.
	responseType, hasResponseType := params.Get("response_type")
	clientID, hasClientID := params.Get("client_id")
	if !hasClientID || clientID == "" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidRequest, "missing client_id")})
	}
	if !hasResponseType || responseType != "code" {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrUnsupportedResponseType, "response_type must be \"code\"")})
	}

	// Step 2: bind the redirect URI. Any failure here responds directly: the
	// redirect target is not yet trusted, so redirecting to it would be an
	// open-redirector.
	redirectURI, _ := params.Get("redirect_uri")
	scopeParam, _ := params.Get("scope")
	pre, err := registrar.BoundRedirect(ctx, primitives.BoundRedirectParams{
		ClientID:    clientID,
		RedirectURI: redirectURI,
		Scope:       scopeParam,
		State:       state,
	})
	if err != nil {
		return ep.Response(ctx, Template{Kind: ClientError, OAuthErr: newOAuthError(ErrInvalidRequest, "client or redirect_uri not recognized")})
	}

	// Step 3: negotiate scope. The redirect is trusted now, so failures redirect.
	negotiated, err := registrar.Negotiate(ctx, pre, scopeParam)
	if err != nil {
		return ep.Response(ctx, Template{
			Kind:          Redirect,
			RedirectURI:   pre.RedirectURI,
			RedirectQuery: redirectQuery(state, newOAuthError(ErrInvalidScope, err.Error())),
		})
	}
	pre = negotiated

	// Step 4: authorization-phase extension hook.
	outcome, err := ep.Extension().Authorization(ctx, params, pre)
	if err != nil {
		return nil, fmt.Errorf("flow: authorization extension hook: %w", err)
	}
	if outcome.Reject {
		return ep.Response(ctx, Template{
			Kind:          Redirect,
			RedirectURI:   pre.RedirectURI,
			RedirectQuery: redirectQuery(state, newOAuthError(ErrInvalidRequest, outcome.Description)),
		})
	}

	// Step 5: solicit owner consent.
	solicitor, ok := ep.Solicitor(ctx, params, pre)
	if !ok {
		return nil, ErrPrimitiveMissing
	}
	consent := solicitor.CheckConsent(ctx, params, pre)
	switch consent.Kind {
	case primitives.InProgress:
		return ep.Response(ctx, Template{Kind: InProgress, Raw: consent.Response})
	case primitives.Denied:
		return ep.Response(ctx, Template{
			Kind:          Redirect,
			RedirectURI:   pre.RedirectURI,
			RedirectQuery: redirectQuery(state, newOAuthError(ErrAccessDenied, "")),
		})
	case primitives.ConsentError:
		return nil, fmt.Errorf("flow: solicitor: %w", consent.Err)
	case primitives.Authorized:
		// proceeds below
	default:
		return nil, fmt.Errorf("flow: solicitor returned unknown consent kind %d", consent.Kind)
	}

	// Step 6: mint the grant and its authorization code.
	g := grant.Grant{
		OwnerID:     consent.OwnerID,
		ClientID:    pre.ClientID,
		RedirectURI: pre.RedirectURI,
		Scope:       pre.Scope,
		Until:       time.Now().Add(codeLifetime),
		Extensions:  outcome.Values,
	}
	code, err := authorizer.Authorize(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("flow: authorizer.Authorize: %w", err)
	}

	// Step 7: redirect with the code.
	query := map[string]string{"code": code}
	if state != "" {
		query["state"] = state
	}
	return ep.Response(ctx, Template{Kind: Redirect, RedirectURI: pre.RedirectURI, RedirectQuery: query})
}
