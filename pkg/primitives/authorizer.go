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

// ErrCodeNotFound is returned by Authorizer.Extract when the code is unknown,
// already redeemed, or expired. The three cases are deliberately indistinguishable
// to callers (spec §4.2): a single-use code that has been consumed looks exactly
// like one that never existed.
var ErrCodeNotFound = errors.New("primitives: authorization code not found or already used")

// Authorizer mints authorization codes and redeems them exactly once (spec §4.2).
//
// Ordering guarantee: Extract must be atomic with code invalidation. Two
// concurrent Extract calls presenting the same code must not both succeed.
type Authorizer interface {
	// Authorize mints an opaque, unforgeable, single-use code bound to g.
	Authorize(ctx context.Context, g grant.Grant) (code string, err error)

	// Extract returns the grant bound to code and atomically removes the code
	// from the authorizer, or ErrCodeNotFound if the code was never issued, has
	// already been redeemed, or has expired.
	Extract(ctx context.Context, code string) (grant.Grant, error)
}
