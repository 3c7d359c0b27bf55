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

// Package memory provides in-memory, non-persistent reference implementations of
// every primitive in package primitives. They exist for tests, examples, and small
// deployments; callers with a persistent backend implement the primitives interfaces
// directly rather than adapting these types.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/grantworks/oauthcore/internal/oclog"
	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// ErrClientExists is returned by ClientMap.Register when the client id is already
// registered.
var ErrClientExists = errors.New("memory: client already registered")

// ClientMap is a map-backed primitives.Registrar. It is safe for concurrent use.
type ClientMap struct {
	mu     sync.RWMutex
	policy primitives.PasswordPolicy
	record map[string]primitives.Client
}

// NewClientMap builds an empty ClientMap. policy hashes and verifies passphrases
// for confidential clients registered through Register; it is never consulted for
// public clients.
func NewClientMap(policy primitives.PasswordPolicy) *ClientMap {
	return &ClientMap{
		policy: policy,
		record: make(map[string]primitives.Client),
	}
}

// Register adds a new client. For a Confidential client, passphrase is hashed
// through the configured PasswordPolicy and the hash stored on the record;
// passphrase itself is never retained. For a Public client, passphrase must be nil.
func (m *ClientMap) Register(client primitives.Client, passphrase []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.record[client.ClientID]; exists {
		return fmt.Errorf("%w: %s", ErrClientExists, client.ClientID)
	}

	if client.Kind == primitives.Confidential {
		hash, err := m.policy.Store(client.ClientID, passphrase)
		if err != nil {
			return fmt.Errorf("memory: hashing client passphrase: %w", err)
		}
		client.PassphraseHash = hash
	} else {
		client.PassphraseHash = nil
	}

	m.record[client.ClientID] = client
	return nil
}

func (m *ClientMap) lookup(clientID string) (primitives.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.record[clientID]
	return c, ok
}

// BoundRedirect resolves the effective redirect URI. Matching is exact-string, per
// the registered primary URI or any of AdditionalRedirectURIs; no partial-path or
// query-string normalization is performed, so registrations must be exact.
func (m *ClientMap) BoundRedirect(_ context.Context, params primitives.BoundRedirectParams) (grant.PreGrant, error) {
	client, ok := m.lookup(params.ClientID)
	if !ok {
		return grant.PreGrant{}, fmt.Errorf("%w: %s", primitives.ErrUnregisteredClient, params.ClientID)
	}

	redirect := params.RedirectURI
	if redirect == "" {
		redirect = client.RedirectURI
	} else if redirect != client.RedirectURI && !contains(client.AdditionalRedirectURIs, redirect) {
		return grant.PreGrant{}, primitives.ErrMismatchedRedirect
	}

	pre := grant.PreGrant{ClientID: client.ClientID, RedirectURI: redirect}
	if params.Scope != "" {
		scope, err := grant.ParseScope(params.Scope)
		if err != nil {
			return grant.PreGrant{}, fmt.Errorf("memory: parsing requested scope: %w", err)
		}
		pre.Scope = scope
	} else {
		pre.Scope = client.DefaultScope
	}
	return pre, nil
}

// Negotiate computes the final scope: the client's default scope if requestedScope
// is empty, or requestedScope itself after checking it is privileged to (a subset
// of) the default. ErrScopeEscalation is returned otherwise.
func (m *ClientMap) Negotiate(_ context.Context, pre grant.PreGrant, requestedScope string) (grant.PreGrant, error) {
	client, ok := m.lookup(pre.ClientID)
	if !ok {
		return grant.PreGrant{}, fmt.Errorf("%w: %s", primitives.ErrUnregisteredClient, pre.ClientID)
	}

	if requestedScope == "" {
		pre.Scope = client.DefaultScope
		return pre, nil
	}

	requested, err := grant.ParseScope(requestedScope)
	if err != nil {
		return grant.PreGrant{}, fmt.Errorf("memory: parsing requested scope: %w", err)
	}
	if !requested.PrivilegedTo(client.DefaultScope) {
		return grant.PreGrant{}, fmt.Errorf("%w: %s", primitives.ErrScopeEscalation, requestedScope)
	}
	pre.Scope = requested
	return pre, nil
}

// Check authenticates clientID against passphrase. Every failure mode, including an
// unknown client id, a public client given a non-nil passphrase, and a confidential
// client's passphrase mismatch, collapses to ErrRegistrarUnspecified.
func (m *ClientMap) Check(_ context.Context, clientID string, passphrase []byte) error {
	client, ok := m.lookup(clientID)
	if !ok {
		oclog.Debugw("client check against unregistered client", "client_id", clientID)
		return primitives.ErrRegistrarUnspecified
	}

	switch client.Kind {
	case primitives.Public:
		if len(passphrase) != 0 {
			return primitives.ErrRegistrarUnspecified
		}
		return nil
	case primitives.Confidential:
		if len(passphrase) == 0 {
			return primitives.ErrRegistrarUnspecified
		}
		if err := m.policy.Check(clientID, passphrase, client.PassphraseHash); err != nil {
			return primitives.ErrRegistrarUnspecified
		}
		return nil
	default:
		return primitives.ErrRegistrarUnspecified
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ primitives.Registrar = (*ClientMap)(nil)
