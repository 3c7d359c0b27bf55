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

package primitives

import (
	"context"
	"errors"

	"github.com/grantworks/oauthcore/pkg/grant"
)

// ErrTokenNotFound is returned by Issuer.RecoverToken/RecoverRefresh when the
// presented token is unknown, revoked, or expired.
var ErrTokenNotFound = errors.New("primitives: token not found or expired")

// Issuer mints access and (optionally) refresh tokens from a grant, and looks
// grants back up by either token (spec §4.3).
//
// Ordering guarantee: Refresh must atomically replace a rotated refresh token if
// the implementation rotates on use.
type Issuer interface {
	// Issue mints an IssuedToken for g. The returned token's expiry derives from
	// g.Until.
	Issue(ctx context.Context, g grant.Grant) (grant.IssuedToken, error)

	// RecoverToken looks up the grant bound to an access token.
	RecoverToken(ctx context.Context, accessToken string) (grant.Grant, error)

	// RecoverRefresh looks up the grant bound to a refresh token.
	RecoverRefresh(ctx context.Context, refreshToken string) (grant.Grant, error)

	// Refresh mints a new IssuedToken for narrowedGrant, the grant derived from
	// refreshToken after the flow has applied any scope narrowing. The issuer is
	// free to rotate the refresh token or keep it; see each implementation's doc
	// comment for its policy.
	Refresh(ctx context.Context, refreshToken string, narrowedGrant grant.Grant) (grant.IssuedToken, error)
}

// TagGrant is a pluggable tag/token generator (spec §4.3's "TagGrant contract").
// Implementations must be collision-resistant across the lifetime of an issuer
// even for equal grants, which is why a strictly monotonic counter is threaded
// through every call. Determinism is not required; signature-based generators
// such as memory.HMACTagGenerator are acceptable.
type TagGrant interface {
	// Generate produces a tag string for g at the given monotonic counter value.
	Generate(counter uint64, g grant.Grant) (string, error)
}
