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
	"sync"
	"time"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

type refreshEntry struct {
	grant       grant.Grant
	accessToken string
}

// TokenMap is a map-backed primitives.Issuer. It holds two independent TagGrant
// generators, one per token role, so an access token and its paired refresh token
// never collide even when minted from the same counter value. By default it
// rotates the refresh token on every Refresh call; see WithRotation to disable
// that (matching the Open Question decision that rotation is issuer-internal
// policy rather than a protocol requirement).
type TokenMap struct {
	mu         sync.Mutex
	counter    uint64
	accessGen  primitives.TagGrant
	refreshGen primitives.TagGrant
	rotate     bool
	access     map[string]grant.Grant
	refresh    map[string]refreshEntry
}

// NewTokenMap builds a TokenMap that rotates refresh tokens by default.
func NewTokenMap(accessGen, refreshGen primitives.TagGrant) *TokenMap {
	return &TokenMap{
		accessGen:  accessGen,
		refreshGen: refreshGen,
		rotate:     true,
		access:     make(map[string]grant.Grant),
		refresh:    make(map[string]refreshEntry),
	}
}

// WithRotation overrides whether Refresh issues a new refresh token string or
// keeps the presented one valid for reuse.
func (t *TokenMap) WithRotation(rotate bool) *TokenMap {
	t.rotate = rotate
	return t
}

// Issue implements primitives.Issuer. The returned IssuedToken always carries a
// refresh token; callers that want access-token-only grants (e.g. client
// credentials, spec §4.6.5) should discard IssuedToken.Refresh rather than
// configuring this around it.
func (t *TokenMap) Issue(_ context.Context, g grant.Grant) (grant.IssuedToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter++
	access, err := t.accessGen.Generate(t.counter, g)
	if err != nil {
		return grant.IssuedToken{}, err
	}
	refresh, err := t.refreshGen.Generate(t.counter, g)
	if err != nil {
		return grant.IssuedToken{}, err
	}

	t.access[access] = g.Clone()
	t.refresh[refresh] = refreshEntry{grant: g.Clone(), accessToken: access}

	return grant.IssuedToken{
		Token:     access,
		Refresh:   refresh,
		Until:     g.Until,
		TokenType: grant.DefaultTokenType,
	}, nil
}

// RecoverToken implements primitives.Issuer.
func (t *TokenMap) RecoverToken(_ context.Context, accessToken string) (grant.Grant, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.access[accessToken]
	if !ok {
		return grant.Grant{}, primitives.ErrTokenNotFound
	}
	if g.Expired(time.Now()) {
		delete(t.access, accessToken)
		return grant.Grant{}, primitives.ErrTokenNotFound
	}
	return g, nil
}

// RecoverRefresh implements primitives.Issuer.
func (t *TokenMap) RecoverRefresh(_ context.Context, refreshToken string) (grant.Grant, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.refresh[refreshToken]
	if !ok {
		return grant.Grant{}, primitives.ErrTokenNotFound
	}
	return entry.grant, nil
}

// Refresh implements primitives.Issuer. It mints a new access token bound to
// narrowedGrant, invalidates the old access token, and either rotates the
// presented refresh token or leaves it valid, per t.rotate.
func (t *TokenMap) Refresh(_ context.Context, refreshToken string, narrowedGrant grant.Grant) (grant.IssuedToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.refresh[refreshToken]
	if !ok {
		return grant.IssuedToken{}, primitives.ErrTokenNotFound
	}

	t.counter++
	access, err := t.accessGen.Generate(t.counter, narrowedGrant)
	if err != nil {
		return grant.IssuedToken{}, err
	}

	delete(t.access, old.accessToken)
	t.access[access] = narrowedGrant.Clone()

	refresh := refreshToken
	if t.rotate {
		refresh, err = t.refreshGen.Generate(t.counter, narrowedGrant)
		if err != nil {
			return grant.IssuedToken{}, err
		}
		delete(t.refresh, refreshToken)
	}
	t.refresh[refresh] = refreshEntry{grant: narrowedGrant.Clone(), accessToken: access}

	return grant.IssuedToken{
		Token:     access,
		Refresh:   refresh,
		Until:     narrowedGrant.Until,
		TokenType: grant.DefaultTokenType,
	}, nil
}

var _ primitives.Issuer = (*TokenMap)(nil)
