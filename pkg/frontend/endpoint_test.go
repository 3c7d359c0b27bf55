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

package frontend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

func TestDenyAllSolicitor_AlwaysDenies(t *testing.T) {
	t.Parallel()

	consent := DenyAllSolicitor{}.CheckConsent(context.Background(), nil, grant.PreGrant{})
	assert.Equal(t, primitives.Denied, consent.Kind)
}

func TestFuncSolicitor_DelegatesToFunction(t *testing.T) {
	t.Parallel()

	var gotPre grant.PreGrant
	sol := FuncSolicitor(func(_ context.Context, _ any, pre grant.PreGrant) primitives.OwnerConsent {
		gotPre = pre
		return primitives.ConsentAuthorized("bob")
	})

	consent := sol.CheckConsent(context.Background(), nil, grant.PreGrant{ClientID: "c"})
	assert.Equal(t, primitives.Authorized, consent.Kind)
	assert.Equal(t, "bob", consent.OwnerID)
	assert.Equal(t, "c", gotPre.ClientID)
}

func TestSimpleEndpoint_DefaultsWhenUnconfigured(t *testing.T) {
	t.Parallel()

	ep := NewSimpleEndpoint()

	_, ok := ep.Registrar()
	assert.False(t, ok)
	_, ok = ep.Authorizer()
	assert.False(t, ok)
	_, ok = ep.Issuer()
	assert.False(t, ok)
	_, ok = ep.Scopes()
	assert.False(t, ok, "Scopes is absent unless WithScopes was called")

	sol, ok := ep.Solicitor(context.Background(), nil, grant.PreGrant{})
	require.True(t, ok)
	assert.IsType(t, DenyAllSolicitor{}, sol)

	assert.Equal(t, "none", ep.Extension().ID())
}

func TestSimpleEndpoint_EmptyScopesIsPresentButEmpty(t *testing.T) {
	t.Parallel()

	ep := NewSimpleEndpoint(WithScopes())
	scopes, ok := ep.Scopes()
	assert.True(t, ok)
	assert.Empty(t, scopes)
}

type stubRegistrar struct{}

func (stubRegistrar) BoundRedirect(context.Context, primitives.BoundRedirectParams) (grant.PreGrant, error) {
	return grant.PreGrant{}, nil
}
func (stubRegistrar) Negotiate(context.Context, grant.PreGrant, string) (grant.PreGrant, error) {
	return grant.PreGrant{}, nil
}
func (stubRegistrar) Check(context.Context, string, []byte) error { return nil }

func TestSimpleEndpoint_WiresConfiguredPrimitives(t *testing.T) {
	t.Parallel()

	reg := stubRegistrar{}
	ep := NewSimpleEndpoint(WithRegistrar(reg))

	got, ok := ep.Registrar()
	require.True(t, ok)
	assert.Equal(t, reg, got)
}

func TestSimpleEndpoint_ErrorWrapsInternalFailure(t *testing.T) {
	t.Parallel()

	ep := NewSimpleEndpoint()
	err := ep.Error(assertBoom)
	require.Error(t, err)
	assert.ErrorIs(t, err, assertBoom)
}

var assertBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }
