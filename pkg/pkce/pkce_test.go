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

package pkce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
)

type params map[string]string

func (p params) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// RFC 7636 Appendix B.
const (
	rfcVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestExtension_S256_HappyPath(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	ctx := context.Background()

	outcome, err := ext.Authorization(ctx, params{
		"code_challenge":        rfcChallenge,
		"code_challenge_method": MethodS256,
	}, grant.PreGrant{})
	require.NoError(t, err)
	require.False(t, outcome.Reject)

	g := grant.Grant{Extensions: outcome.Values}

	outcome, err = ext.AccessToken(ctx, params{"code_verifier": rfcVerifier}, g)
	require.NoError(t, err)
	assert.False(t, outcome.Reject)
}

func TestExtension_S256_WrongVerifierFails(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	ctx := context.Background()

	outcome, err := ext.Authorization(ctx, params{
		"code_challenge":        rfcChallenge,
		"code_challenge_method": MethodS256,
	}, grant.PreGrant{})
	require.NoError(t, err)

	g := grant.Grant{Extensions: outcome.Values}

	// Valid syntax, wrong value.
	tampered := "a" + rfcVerifier[1:]
	outcome, err = ext.AccessToken(ctx, params{"code_verifier": tampered}, g)
	require.NoError(t, err)
	assert.True(t, outcome.Reject)
}

func TestExtension_Plain(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	ctx := context.Background()
	verifier := "this-is-a-verifier-at-least-43-characters-long"

	outcome, err := ext.Authorization(ctx, params{
		"code_challenge":        verifier,
		"code_challenge_method": MethodPlain,
	}, grant.PreGrant{})
	require.NoError(t, err)
	require.False(t, outcome.Reject)

	g := grant.Grant{Extensions: outcome.Values}

	outcome, err = ext.AccessToken(ctx, params{"code_verifier": verifier}, g)
	require.NoError(t, err)
	assert.False(t, outcome.Reject)
}

func TestExtension_DefaultMethodIsPlain(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	ctx := context.Background()
	verifier := "this-is-a-verifier-at-least-43-characters-long"

	outcome, err := ext.Authorization(ctx, params{"code_challenge": verifier}, grant.PreGrant{})
	require.NoError(t, err)
	require.False(t, outcome.Reject)
	assert.Equal(t, MethodPlain+":"+verifier, outcome.Values[extensionID].Data)
}

func TestExtension_NoChallenge_NotRequired(t *testing.T) {
	t.Parallel()

	ext := Extension{RequireForAuthorizationCode: false}
	ctx := context.Background()

	outcome, err := ext.Authorization(ctx, params{}, grant.PreGrant{})
	require.NoError(t, err)
	assert.False(t, outcome.Reject)
	assert.Empty(t, outcome.Values)

	// AccessToken with no stored challenge and no verifier presented continues.
	outcome, err = ext.AccessToken(ctx, params{}, grant.Grant{})
	require.NoError(t, err)
	assert.False(t, outcome.Reject)
}

func TestExtension_NoChallenge_RequiredRejects(t *testing.T) {
	t.Parallel()

	ext := Extension{RequireForAuthorizationCode: true}
	outcome, err := ext.Authorization(context.Background(), params{}, grant.PreGrant{})
	require.NoError(t, err)
	assert.True(t, outcome.Reject)
}

func TestExtension_VerifierWithoutChallengeRejected(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	outcome, err := ext.AccessToken(context.Background(), params{"code_verifier": rfcVerifier}, grant.Grant{})
	require.NoError(t, err)
	assert.True(t, outcome.Reject)
}

func TestExtension_MissingVerifierWhenChallengeStoredRejected(t *testing.T) {
	t.Parallel()

	ext := Extension{}
	ctx := context.Background()

	outcome, err := ext.Authorization(ctx, params{
		"code_challenge":        rfcChallenge,
		"code_challenge_method": MethodS256,
	}, grant.PreGrant{})
	require.NoError(t, err)

	g := grant.Grant{Extensions: outcome.Values}
	outcome, err = ext.AccessToken(ctx, params{}, g)
	require.NoError(t, err)
	assert.True(t, outcome.Reject)
}

func TestValidVerifierSyntax_LengthBounds(t *testing.T) {
	t.Parallel()

	assert.False(t, validVerifierSyntax(""))
	assert.False(t, validVerifierSyntax("tooshort"))
	assert.True(t, validVerifierSyntax(rfcVerifier))
	assert.False(t, validVerifierSyntax(string(make([]byte, 129))))
}
