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

// Package assertion implements stateless, self-authenticating codes and tokens:
// a grant is encoded as a MAC'd payload the issuer never has to remember, trading
// revocability for the ability to run without persistent storage (spec §4.2, §4.3,
// §9). The payload format is a compact JWT (golang-jwt/jwt/v5, HMAC-SHA256): the
// signature stands in for the HMAC the original design called for, and "tag" domain-
// separates one secret across authorization codes, access tokens, and refresh
// tokens the same way a tagged generator would.
package assertion

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grantworks/oauthcore/pkg/grant"
)

func deriveKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// ErrPrivateExtension is returned by Codec.Encode when the grant carries a private
// extension value. A stateless, self-authenticating payload has nowhere to keep a
// private value out of the client's hands, so encoding such a grant is refused
// outright rather than silently downgrading it to public.
var ErrPrivateExtension = errors.New("assertion: grant carries a private extension value")

// ErrMalformed is returned by Codec.Decode for any token that fails to parse,
// fails signature verification, has expired, or carries a tag mismatched against
// the one requested. The cases are deliberately collapsed into one error so a
// caller cannot distinguish "forged" from "stale" from "wrong tag".
var ErrMalformed = errors.New("assertion: token malformed, expired, or wrong tag")

// Codec encodes and decodes grants as HMAC-signed JWTs. A single Codec is shared
// across however many tags (roles) a caller needs; the secret is what provides
// confidentiality of the signature, not the tag.
type Codec struct {
	secret []byte
}

// NewCodec builds a Codec keyed by secret. secret should be at least 32 bytes of
// high-entropy data; NewCodecFromPassphrase derives one from a lower-entropy
// passphrase instead.
func NewCodec(secret []byte) Codec {
	return Codec{secret: secret}
}

// NewCodecFromPassphrase derives a signing key from passphrase by hashing it,
// mirroring a deployment that only has a human-chosen secret to hand rather than a
// generated key.
func NewCodecFromPassphrase(passphrase string) Codec {
	return Codec{secret: deriveKey(passphrase)}
}

// encodeCounter is the monotonic counter stamped into every payload, so two
// encodings of equal grants under the same tag never yield the same token.
var encodeCounter atomic.Uint64

type assertionClaims struct {
	jwt.RegisteredClaims
	Tag         string          `json:"tag"`
	Counter     uint64          `json:"ctr"`
	OwnerID     string          `json:"oid"`
	ClientID    string          `json:"cid"`
	RedirectURI string          `json:"ruri"`
	Scope       string          `json:"scope"`
	Extensions  grant.Extensions `json:"ext,omitempty"`
}

// Encode signs g under tag, producing a compact token. It fails with
// ErrPrivateExtension if g carries any private extension value.
func (c Codec) Encode(tag string, g grant.Grant) (string, error) {
	if g.Extensions.HasPrivate() {
		return "", ErrPrivateExtension
	}

	claims := assertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(g.Until),
		},
		Tag:         tag,
		Counter:     encodeCounter.Add(1),
		OwnerID:     g.OwnerID,
		ClientID:    g.ClientID,
		RedirectURI: g.RedirectURI,
		Scope:       g.Scope.String(),
		Extensions:  g.Extensions.Public(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("assertion: signing token: %w", err)
	}
	return signed, nil
}

// Decode verifies and parses a token produced by Encode, requiring it to carry
// exactly tag. Any failure, including a correctly signed token presented against
// the wrong tag, collapses to ErrMalformed.
func (c Codec) Decode(tag string, token string) (grant.Grant, error) {
	var claims assertionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return grant.Grant{}, ErrMalformed
	}
	if claims.Tag != tag {
		return grant.Grant{}, ErrMalformed
	}

	scope, err := grant.ParseScope(claims.Scope)
	if err != nil {
		return grant.Grant{}, ErrMalformed
	}

	var until time.Time
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}

	return grant.Grant{
		OwnerID:     claims.OwnerID,
		ClientID:    claims.ClientID,
		RedirectURI: claims.RedirectURI,
		Scope:       scope,
		Until:       until,
		Extensions:  claims.Extensions,
	}, nil
}
