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

// DefaultCodeLifetime is how long an authorization code minted by AuthMap remains
// redeemable, per RFC 6749 §4.1.2's "SHOULD expire shortly" recommendation.
const DefaultCodeLifetime = 10 * time.Minute

type codeEntry struct {
	grant   grant.Grant
	issued  time.Time
	expires time.Time
}

// AuthMap is a map-backed primitives.Authorizer. Codes are single-use: Extract
// atomically removes the entry it returns, so a second Extract of the same code
// always fails.
type AuthMap struct {
	mu       sync.Mutex
	counter  uint64
	gen      primitives.TagGrant
	lifetime time.Duration
	codes    map[string]codeEntry
}

// NewAuthMap builds an AuthMap using gen to mint codes and DefaultCodeLifetime as
// the redemption window.
func NewAuthMap(gen primitives.TagGrant) *AuthMap {
	return &AuthMap{gen: gen, lifetime: DefaultCodeLifetime, codes: make(map[string]codeEntry)}
}

// WithCodeLifetime overrides the redemption window.
func (a *AuthMap) WithCodeLifetime(d time.Duration) *AuthMap {
	a.lifetime = d
	return a
}

// Authorize implements primitives.Authorizer.
func (a *AuthMap) Authorize(_ context.Context, g grant.Grant) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counter++
	code, err := a.gen.Generate(a.counter, g)
	if err != nil {
		return "", err
	}

	now := time.Now()
	a.codes[code] = codeEntry{grant: g.Clone(), issued: now, expires: now.Add(a.lifetime)}
	return code, nil
}

// Extract implements primitives.Authorizer.
func (a *AuthMap) Extract(_ context.Context, code string) (grant.Grant, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.codes[code]
	if !ok {
		return grant.Grant{}, primitives.ErrCodeNotFound
	}
	delete(a.codes, code)

	if time.Now().After(entry.expires) {
		return grant.Grant{}, primitives.ErrCodeNotFound
	}
	return entry.grant, nil
}

var _ primitives.Authorizer = (*AuthMap)(nil)
