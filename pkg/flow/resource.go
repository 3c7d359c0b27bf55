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
	"strings"
	"time"

	"github.com/grantworks/oauthcore/pkg/grant"
)

// bearerChallenge builds the WWW-Authenticate header value for a failed resource
// check (spec §6). required is rendered space-separated even when empty.
func bearerChallenge(realm string, required []grant.Scope, errCode string) string {
	tokens := make([]string, 0, len(required))
	for _, s := range required {
		tokens = append(tokens, s.String())
	}
	return fmt.Sprintf(`Bearer realm=%q, scope=%q, error=%q`, realm, strings.Join(tokens, " "), errCode)
}

// Resource guards a protected resource (spec §4.6.4). bearerToken is the token
// extracted from the request's "Authorization: Bearer <token>" header by the
// caller; realm is used only to build the WWW-Authenticate challenge on failure.
//
// Unlike the other flows, Resource never calls ep.Response itself: on success the
// caller still has its own resource to serve, so it gets the grant back directly
// to read OwnerID/Scope from; on failure the returned Template is the caller's to
// pass to ep.Response.
func Resource(ctx context.Context, ep Endpoint, bearerToken string, realm string) (grant.Grant, *Template, error) {
	issuer, ok := ep.Issuer()
	if !ok {
		return grant.Grant{}, nil, ErrPrimitiveMissing
	}
	required, ok := ep.Scopes()
	if !ok {
		return grant.Grant{}, nil, ErrPrimitiveMissing
	}

	if bearerToken == "" {
		return grant.Grant{}, &Template{
			Kind:            Unauthorized,
			WWWAuthenticate: bearerChallenge(realm, required, ""),
		}, nil
	}

	g, err := issuer.RecoverToken(ctx, bearerToken)
	if err != nil {
		return grant.Grant{}, &Template{
			Kind:            Unauthorized,
			OAuthErr:        newOAuthError(ErrInvalidToken, ""),
			WWWAuthenticate: bearerChallenge(realm, required, ErrInvalidToken),
		}, nil
	}
	if g.Expired(time.Now()) {
		return grant.Grant{}, &Template{
			Kind:            Unauthorized,
			OAuthErr:        newOAuthError(ErrInvalidToken, "token expired"),
			WWWAuthenticate: bearerChallenge(realm, required, ErrInvalidToken),
		}, nil
	}

	satisfied := len(required) == 0
	for _, s := range required {
		if s.PrivilegedTo(g.Scope) {
			satisfied = true
			break
		}
	}
	if !satisfied {
		return grant.Grant{}, &Template{
			Kind:            Forbidden,
			OAuthErr:        newOAuthError(ErrInsufficientScope, ""),
			WWWAuthenticate: bearerChallenge(realm, required, ErrInsufficientScope),
		}, nil
	}

	return g, nil, nil
}
