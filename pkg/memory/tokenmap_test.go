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

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

func newTestTokenMap() *TokenMap {
	return NewTokenMap(
		HMACTagGenerator{Secret: []byte("key"), Tag: "token"},
		HMACTagGenerator{Secret: []byte("key"), Tag: "refresh"},
	)
}

func testIssueGrant() grant.Grant {
	return grant.Grant{
		OwnerID:  "alice",
		ClientID: "c",
		Scope:    grant.NewScope("read", "write"),
		Until:    time.Now().Add(time.Hour),
	}
}

func TestTokenMap_IssueAndRecover(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := newTestTokenMap()

	g := testIssueGrant()
	issued, err := tm.Issue(ctx, g)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.Refresh)

	recovered, err := tm.RecoverToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, g.Scope.String(), recovered.Scope.String())
	assert.Equal(t, g.OwnerID, recovered.OwnerID)
	assert.Equal(t, g.ClientID, recovered.ClientID)
	assert.True(t, recovered.Until.Equal(g.Until) || recovered.Until.After(g.Until))
}

func TestTokenMap_RecoverToken_UnknownFails(t *testing.T) {
	t.Parallel()
	tm := newTestTokenMap()
	_, err := tm.RecoverToken(context.Background(), "bogus")
	require.ErrorIs(t, err, primitives.ErrTokenNotFound)
}

func TestTokenMap_RecoverToken_ExpiredEvictsAndFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := newTestTokenMap()

	g := testIssueGrant()
	g.Until = time.Now().Add(-time.Minute)
	issued, err := tm.Issue(ctx, g)
	require.NoError(t, err)

	_, err = tm.RecoverToken(ctx, issued.Token)
	require.ErrorIs(t, err, primitives.ErrTokenNotFound)
}

func TestTokenMap_Refresh_RotatesByDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := newTestTokenMap()

	g := testIssueGrant()
	issued, err := tm.Issue(ctx, g)
	require.NoError(t, err)

	narrowed := g
	narrowed.Scope = grant.NewScope("read")
	reissued, err := tm.Refresh(ctx, issued.Refresh, narrowed)
	require.NoError(t, err)

	assert.NotEqual(t, issued.Refresh, reissued.Refresh, "default policy rotates the refresh token")
	assert.NotEqual(t, issued.Token, reissued.Token)

	// The old access token no longer resolves.
	_, err = tm.RecoverToken(ctx, issued.Token)
	require.ErrorIs(t, err, primitives.ErrTokenNotFound)

	// The old refresh token no longer resolves either.
	_, err = tm.RecoverRefresh(ctx, issued.Refresh)
	require.ErrorIs(t, err, primitives.ErrTokenNotFound)

	// The new access token resolves to the narrowed grant's scope.
	recovered, err := tm.RecoverToken(ctx, reissued.Token)
	require.NoError(t, err)
	assert.Equal(t, "read", recovered.Scope.String())
}

func TestTokenMap_Refresh_NoRotationKeepsToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := newTestTokenMap().WithRotation(false)

	g := testIssueGrant()
	issued, err := tm.Issue(ctx, g)
	require.NoError(t, err)

	reissued, err := tm.Refresh(ctx, issued.Refresh, g)
	require.NoError(t, err)
	assert.Equal(t, issued.Refresh, reissued.Refresh)

	// The unrotated refresh token still resolves.
	_, err = tm.RecoverRefresh(ctx, issued.Refresh)
	require.NoError(t, err)
}

func TestTokenMap_Refresh_UnknownTokenFails(t *testing.T) {
	t.Parallel()
	tm := newTestTokenMap()
	_, err := tm.Refresh(context.Background(), "bogus", testIssueGrant())
	require.ErrorIs(t, err, primitives.ErrTokenNotFound)
}
