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
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// HMACTagGenerator produces collision-resistant, non-recoverable tags by signing
// the monotonic counter and a canonical summary of the grant with an HMAC-SHA256
// keyed by Secret. Tag domain-separates the generator: an endpoint's AuthMap and
// TokenMap each hold distinct HMACTagGenerator values (one per code, access-token,
// and refresh-token role) so the same (counter, grant) pair never produces the same
// string across roles.
type HMACTagGenerator struct {
	Secret []byte
	Tag    string
}

// Generate implements primitives.TagGrant.
func (h HMACTagGenerator) Generate(counter uint64, g grant.Grant) (string, error) {
	mac := hmac.New(sha256.New, h.Secret)
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)
	mac.Write(counterBytes[:])
	mac.Write([]byte(h.Tag))
	mac.Write([]byte{0})
	mac.Write([]byte(g.ClientID))
	mac.Write([]byte{0})
	mac.Write([]byte(g.OwnerID))
	mac.Write([]byte{0})
	mac.Write([]byte(g.RedirectURI))
	mac.Write([]byte{0})
	mac.Write([]byte(g.Scope.String()))
	sum := mac.Sum(nil)
	return base64.RawURLEncoding.EncodeToString(append(counterBytes[:], sum...)), nil
}

// RandomTagGenerator produces tags from cryptographically secure random bytes,
// ignoring the grant and counter entirely. Guessing resistance comes purely from
// entropy, not from any bound to the grant's contents.
type RandomTagGenerator struct {
	// Length is the number of random bytes per tag before encoding. 32 is a
	// reasonable default (256 bits of entropy).
	Length int
}

// Generate implements primitives.TagGrant.
func (r RandomTagGenerator) Generate(_ uint64, _ grant.Grant) (string, error) {
	length := r.Length
	if length == 0 {
		length = 32
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("memory: generating random tag: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// UUIDTagGenerator produces tags as UUIDv4 strings, ignoring the grant and
// counter entirely. It trades RandomTagGenerator's raw entropy budget for a
// tag shape (RFC 4122 UUID) that is convenient to log, index, and pass through
// systems that expect a UUID-shaped opaque identifier.
type UUIDTagGenerator struct{}

// Generate implements primitives.TagGrant.
func (UUIDTagGenerator) Generate(_ uint64, _ grant.Grant) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("memory: generating uuid tag: %w", err)
	}
	return id.String(), nil
}

var (
	_ primitives.TagGrant = HMACTagGenerator{}
	_ primitives.TagGrant = RandomTagGenerator{}
	_ primitives.TagGrant = UUIDTagGenerator{}
)
