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
	"sync"
	"time"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

const codeTag = "code"

// redeemedSet tracks codes that have already been extracted, bounded so a
// long-running server does not grow it without limit. Entries are dropped once
// their grant would have expired anyway, since an expired code cannot be
// re-extracted successfully regardless of redeemedSet's state.
type redeemedSet struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newRedeemedSet() *redeemedSet {
	return &redeemedSet{entries: make(map[string]time.Time)}
}

func (r *redeemedSet) markAndCheck(code string, until time.Time) (alreadyRedeemed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, exp := range r.entries {
		if now.After(exp) {
			delete(r.entries, k)
		}
	}

	if _, ok := r.entries[code]; ok {
		return true
	}
	r.entries[code] = until
	return false
}

// AssertionAuthorizer is a stateless primitives.Authorizer: Authorize signs the
// grant into a self-contained code, and Extract verifies it without consulting any
// store. Because the code is reconstructable from its own contents, single-use
// enforcement instead relies on a bounded, in-memory set of codes seen so far
// (spec's "stateless backend limitation", §9): two processes sharing a secret, or a
// process restarted between Authorize and Extract, will not observe each other's
// redemptions. Deployments that need strict single-use across a fleet should use
// memory.AuthMap (or their own persistent Authorizer) instead.
type AssertionAuthorizer struct {
	codec    Codec
	redeemed *redeemedSet
}

// NewAssertionAuthorizer builds an AssertionAuthorizer signing codes with codec.
func NewAssertionAuthorizer(codec Codec) *AssertionAuthorizer {
	return &AssertionAuthorizer{codec: codec, redeemed: newRedeemedSet()}
}

// Authorize implements primitives.Authorizer.
func (a *AssertionAuthorizer) Authorize(_ context.Context, g grant.Grant) (string, error) {
	code, err := a.codec.Encode(codeTag, g)
	if err != nil {
		return "", err
	}
	return code, nil
}

// Extract implements primitives.Authorizer.
func (a *AssertionAuthorizer) Extract(_ context.Context, code string) (grant.Grant, error) {
	g, err := a.codec.Decode(codeTag, code)
	if err != nil {
		return grant.Grant{}, primitives.ErrCodeNotFound
	}
	if g.Expired(time.Now()) {
		return grant.Grant{}, primitives.ErrCodeNotFound
	}
	if a.redeemed.markAndCheck(code, g.Until) {
		return grant.Grant{}, primitives.ErrCodeNotFound
	}
	return g, nil
}

var _ primitives.Authorizer = (*AssertionAuthorizer)(nil)
