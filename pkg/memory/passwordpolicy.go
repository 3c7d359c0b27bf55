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
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/grantworks/oauthcore/pkg/primitives"
)

const saltLen = 16

// Argon2Policy hashes client passphrases with Argon2id. It is the default
// PasswordPolicy; new deployments should use it over PBKDF2Policy.
type Argon2Policy struct {
	// Time, Memory, and Threads tune the Argon2id cost parameters. The zero value
	// of Argon2Policy uses reasonable defaults (see NewArgon2Policy).
	Time, Memory uint32
	Threads      uint8
	KeyLen       uint32
}

// NewArgon2Policy returns an Argon2Policy with the parameters the Argon2
// reference implementation recommends for interactive login (time=1,
// memory=64MiB, threads=4, keyLen=32).
func NewArgon2Policy() Argon2Policy {
	return Argon2Policy{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}
}

// deriveKey runs Argon2id over passphrase and salt. Store's encoded hash is
// "salt || derived key", both fixed-length, so Check can split without a
// delimiter.
func (p Argon2Policy) deriveKey(passphrase, salt []byte) []byte {
	if p == (Argon2Policy{}) {
		p = NewArgon2Policy()
	}
	return argon2.IDKey(passphrase, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// Store hashes passphrase under a freshly generated random salt.
func (p Argon2Policy) Store(_ string, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("memory: generating argon2 salt: %w", err)
	}
	key := p.deriveKey(passphrase, salt)
	return append(salt, key...), nil
}

// Check verifies passphrase against a hash produced by Store, in constant time.
func (p Argon2Policy) Check(_ string, passphrase, stored []byte) error {
	if len(stored) < saltLen {
		return primitives.ErrPassphraseMismatch
	}
	salt, key := stored[:saltLen], stored[saltLen:]
	candidate := p.deriveKey(passphrase, salt)
	if subtle.ConstantTimeCompare(candidate, key) != 1 {
		return primitives.ErrPassphraseMismatch
	}
	return nil
}

// PBKDF2Policy hashes client passphrases with PBKDF2-HMAC-SHA256. It exists for
// compatibility with registrars migrated from an older deployment; prefer
// Argon2Policy for new client secrets.
type PBKDF2Policy struct {
	// Iterations is the PBKDF2 iteration count.
	Iterations int
	KeyLen     int
}

// NewPBKDF2Policy returns a PBKDF2Policy with 600,000 iterations (the current
// OWASP baseline for PBKDF2-HMAC-SHA256) and a 32-byte derived key.
func NewPBKDF2Policy() PBKDF2Policy {
	return PBKDF2Policy{Iterations: 600_000, KeyLen: 32}
}

func (p PBKDF2Policy) deriveKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, p.Iterations, p.KeyLen, sha256.New)
}

// Store hashes passphrase under a freshly generated random salt, storing the
// iteration count alongside it so Check can reproduce the derivation even if a
// later PBKDF2Policy changes its default.
func (p PBKDF2Policy) Store(_ string, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("memory: generating pbkdf2 salt: %w", err)
	}
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(p.Iterations))
	key := p.deriveKey(passphrase, salt)
	return append(append(header, salt...), key...), nil
}

// Check verifies passphrase against a hash produced by Store, in constant time.
func (p PBKDF2Policy) Check(_ string, passphrase, stored []byte) error {
	if len(stored) < 4+saltLen {
		return primitives.ErrPassphraseMismatch
	}
	iterations := int(binary.BigEndian.Uint32(stored[:4]))
	salt := stored[4 : 4+saltLen]
	key := stored[4+saltLen:]
	candidate := pbkdf2.Key(passphrase, salt, iterations, len(key), sha256.New)
	if subtle.ConstantTimeCompare(candidate, key) != 1 {
		return primitives.ErrPassphraseMismatch
	}
	return nil
}

var (
	_ primitives.PasswordPolicy = Argon2Policy{}
	_ primitives.PasswordPolicy = PBKDF2Policy{}
)
