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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

func newTestClientMap(t *testing.T) *ClientMap {
	t.Helper()
	cm := NewClientMap(NewArgon2Policy())

	require.NoError(t, cm.Register(primitives.Client{
		ClientID:    "LocalClient",
		RedirectURI: "http://localhost:8021/endpoint",
		AdditionalRedirectURIs: []string{
			"http://localhost:8021/other",
		},
		DefaultScope: grant.NewScope("default"),
		Kind:         primitives.Public,
	}, nil))

	require.NoError(t, cm.Register(primitives.Client{
		ClientID:     "ConfClient",
		RedirectURI:  "https://example.com/callback",
		DefaultScope: grant.NewScope("read", "write"),
		Kind:         primitives.Confidential,
	}, []byte("s3cret")))

	return cm
}

func TestClientMap_BoundRedirect_DefaultsToPrimary(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	pre, err := cm.BoundRedirect(context.Background(), primitives.BoundRedirectParams{ClientID: "LocalClient"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8021/endpoint", pre.RedirectURI)
}

func TestClientMap_BoundRedirect_AcceptsAdditional(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	pre, err := cm.BoundRedirect(context.Background(), primitives.BoundRedirectParams{
		ClientID:    "LocalClient",
		RedirectURI: "http://localhost:8021/other",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8021/other", pre.RedirectURI)
}

func TestClientMap_BoundRedirect_MismatchRejected(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	_, err := cm.BoundRedirect(context.Background(), primitives.BoundRedirectParams{
		ClientID:    "LocalClient",
		RedirectURI: "http://attacker.example/",
	})
	require.ErrorIs(t, err, primitives.ErrMismatchedRedirect)
}

func TestClientMap_BoundRedirect_UnknownClient(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	_, err := cm.BoundRedirect(context.Background(), primitives.BoundRedirectParams{ClientID: "nobody"})
	require.ErrorIs(t, err, primitives.ErrUnregisteredClient)
}

func TestClientMap_Negotiate_DefaultWhenNoneRequested(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	pre, err := cm.Negotiate(context.Background(), grant.PreGrant{ClientID: "ConfClient"}, "")
	require.NoError(t, err)
	assert.Equal(t, "read write", pre.Scope.String())
}

func TestClientMap_Negotiate_EscalationRejected(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	_, err := cm.Negotiate(context.Background(), grant.PreGrant{ClientID: "LocalClient"}, "default admin")
	require.ErrorIs(t, err, primitives.ErrScopeEscalation)
}

func TestClientMap_Negotiate_NarrowingAccepted(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	pre, err := cm.Negotiate(context.Background(), grant.PreGrant{ClientID: "ConfClient"}, "read")
	require.NoError(t, err)
	assert.Equal(t, "read", pre.Scope.String())
}

func TestClientMap_Check_PublicClient(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	assert.NoError(t, cm.Check(context.Background(), "LocalClient", nil))
	assert.Error(t, cm.Check(context.Background(), "LocalClient", []byte("surprise")))
}

func TestClientMap_Check_ConfidentialClient(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	assert.NoError(t, cm.Check(context.Background(), "ConfClient", []byte("s3cret")))
	assert.Error(t, cm.Check(context.Background(), "ConfClient", []byte("wrong")))
	assert.Error(t, cm.Check(context.Background(), "ConfClient", nil))
}

func TestClientMap_Check_UnknownClientCollapsesError(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	err := cm.Check(context.Background(), "nobody", []byte("whatever"))
	require.ErrorIs(t, err, primitives.ErrRegistrarUnspecified)
}

func TestClientMap_Register_Duplicate(t *testing.T) {
	t.Parallel()
	cm := newTestClientMap(t)

	err := cm.Register(primitives.Client{ClientID: "LocalClient", Kind: primitives.Public}, nil)
	require.ErrorIs(t, err, ErrClientExists)
}
