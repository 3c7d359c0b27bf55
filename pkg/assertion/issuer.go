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

package assertion

import (
	"context"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

const (
	accessTag  = "token"
	refreshTag = "refresh"
)

// TokenSigner is a stateless primitives.Issuer: both the access and refresh token
// are self-contained, signed assertions, so RecoverToken and RecoverRefresh never
// touch a store. Unlike memory.TokenMap, TokenSigner never rotates the refresh
// token on Refresh: a stateless issuer has no record to invalidate a superseded
// refresh token against, so presenting the same refresh token after an earlier
// refresh would otherwise silently succeed again regardless of rotation, and
// claiming rotation while not actually being able to enforce it would be worse
// than not claiming it (spec §9, Open Question decision).
type TokenSigner struct {
	codec Codec
}

// NewTokenSigner builds a TokenSigner signing tokens with codec.
func NewTokenSigner(codec Codec) *TokenSigner {
	return &TokenSigner{codec: codec}
}

// Issue implements primitives.Issuer.
func (t *TokenSigner) Issue(_ context.Context, g grant.Grant) (grant.IssuedToken, error) {
	access, err := t.codec.Encode(accessTag, g)
	if err != nil {
		return grant.IssuedToken{}, err
	}
	refresh, err := t.codec.Encode(refreshTag, g)
	if err != nil {
		return grant.IssuedToken{}, err
	}
	return grant.IssuedToken{
		Token:     access,
		Refresh:   refresh,
		Until:     g.Until,
		TokenType: grant.DefaultTokenType,
	}, nil
}

// RecoverToken implements primitives.Issuer.
func (t *TokenSigner) RecoverToken(_ context.Context, accessToken string) (grant.Grant, error) {
	g, err := t.codec.Decode(accessTag, accessToken)
	if err != nil {
		return grant.Grant{}, primitives.ErrTokenNotFound
	}
	return g, nil
}

// RecoverRefresh implements primitives.Issuer.
func (t *TokenSigner) RecoverRefresh(_ context.Context, refreshToken string) (grant.Grant, error) {
	g, err := t.codec.Decode(refreshTag, refreshToken)
	if err != nil {
		return grant.Grant{}, primitives.ErrTokenNotFound
	}
	return g, nil
}

// Refresh implements primitives.Issuer. It mints a new access token for
// narrowedGrant and echoes refreshToken back unchanged; see the TokenSigner doc
// comment for why it does not rotate.
func (t *TokenSigner) Refresh(_ context.Context, refreshToken string, narrowedGrant grant.Grant) (grant.IssuedToken, error) {
	if _, err := t.codec.Decode(refreshTag, refreshToken); err != nil {
		return grant.IssuedToken{}, primitives.ErrTokenNotFound
	}

	access, err := t.codec.Encode(accessTag, narrowedGrant)
	if err != nil {
		return grant.IssuedToken{}, err
	}
	return grant.IssuedToken{
		Token:     access,
		Refresh:   refreshToken,
		Until:     narrowedGrant.Until,
		TokenType: grant.DefaultTokenType,
	}, nil
}

var _ primitives.Issuer = (*TokenSigner)(nil)
