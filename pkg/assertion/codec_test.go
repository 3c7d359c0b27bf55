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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantworks/oauthcore/pkg/grant"
)

func testGrant() grant.Grant {
	return grant.Grant{
		OwnerID:     "alice",
		ClientID:    "LocalClient",
		RedirectURI: "http://localhost:8021/endpoint",
		Scope:       grant.NewScope("default"),
		Until:       time.Now().Add(10 * time.Minute).Truncate(time.Second),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	g := testGrant()

	token, err := codec.Encode("code", g)
	require.NoError(t, err)

	decoded, err := codec.Decode("code", token)
	require.NoError(t, err)

	assert.Equal(t, g.OwnerID, decoded.OwnerID)
	assert.Equal(t, g.ClientID, decoded.ClientID)
	assert.Equal(t, g.RedirectURI, decoded.RedirectURI)
	assert.Equal(t, g.Scope.String(), decoded.Scope.String())
	assert.True(t, g.Until.Equal(decoded.Until))
}

func TestCodec_TagMismatchRejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	token, err := codec.Encode("code", testGrant())
	require.NoError(t, err)

	_, err = codec.Decode("refresh", token)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_WrongKeyRejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	token, err := codec.Encode("code", testGrant())
	require.NoError(t, err)

	other := NewCodec([]byte("a-totally-different-secret-key!!!!"))
	_, err = other.Decode("code", token)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_TamperedPayloadRejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	token, err := codec.Encode("code", testGrant())
	require.NoError(t, err)

	tampered := token[:len(token)-1] + "x"
	_, err = codec.Decode("code", tampered)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_RefusesPrivateExtension(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	g := testGrant()
	g.Extensions = grant.Extensions{"pkce": {Public: false, Data: "S256:abc"}}

	_, err := codec.Encode("code", g)
	require.ErrorIs(t, err, ErrPrivateExtension)
}

func TestCodec_CarriesPublicExtensions(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	g := testGrant()
	g.Extensions = grant.Extensions{"oidc": {Public: true, Data: "nonce-xyz"}}

	token, err := codec.Encode("code", g)
	require.NoError(t, err)

	decoded, err := codec.Decode("code", token)
	require.NoError(t, err)
	assert.Equal(t, "nonce-xyz", decoded.Extensions["oidc"].Data)
}

func TestCodec_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret-key-at-least-32-bytes!"))
	g := testGrant()
	g.Until = time.Now().Add(-time.Hour)

	token, err := codec.Encode("code", g)
	require.NoError(t, err)

	// jwt.ParseWithClaims rejects an expired exp claim outright.
	_, err = codec.Decode("code", token)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestNewCodecFromPassphrase_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewCodecFromPassphrase("hunter2")
	b := NewCodecFromPassphrase("hunter2")

	token, err := a.Encode("code", testGrant())
	require.NoError(t, err)

	_, err = b.Decode("code", token)
	require.NoError(t, err, "two codecs derived from the same passphrase must agree")
}
