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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

func TestTokenSigner_IssueAndRecover(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := NewTokenSigner(NewCodec([]byte("super-secret-key-at-least-32-bytes!")))

	g := testGrant()
	issued, err := issuer.Issue(ctx, g)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.Refresh)
	assert.Equal(t, grant.DefaultTokenType, issued.TokenType)

	recovered, err := issuer.RecoverToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, g.OwnerID, recovered.OwnerID)
	assert.Equal(t, g.Scope.String(), recovered.Scope.String())

	recoveredRefresh, err := issuer.RecoverRefresh(ctx, issued.Refresh)
	require.NoError(t, err)
	assert.Equal(t, g.OwnerID, recoveredRefresh.OwnerID)
}

func TestTokenSigner_AccessAndRefreshDoNotCollide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := NewTokenSigner(NewCodec([]byte("super-secret-key-at-least-32-bytes!")))

	issued, err := issuer.Issue(ctx, testGrant())
	require.NoError(t, err)

	_, err = issuer.RecoverToken(ctx, issued.Refresh)
	require.ErrorIs(t, err, primitives.ErrTokenNotFound, "a refresh token must not be usable as an access token")

	_, err = issuer.RecoverRefresh(ctx, issued.Token)
	require.ErrorIs(t, err, primitives.ErrTokenNotFound, "an access token must not be usable as a refresh token")
}

func TestTokenSigner_RefreshDoesNotRotate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := NewTokenSigner(NewCodec([]byte("super-secret-key-at-least-32-bytes!")))

	g := testGrant()
	issued, err := issuer.Issue(ctx, g)
	require.NoError(t, err)

	narrowed := g
	narrowed.Scope = grant.NewScope("default")
	reissued, err := issuer.Refresh(ctx, issued.Refresh, narrowed)
	require.NoError(t, err)

	assert.Equal(t, issued.Refresh, reissued.Refresh, "the stateless signer echoes the refresh token back unchanged")
	assert.NotEqual(t, issued.Token, reissued.Token)
}
