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

// Package pkce implements RFC 7636 Proof Key for Code Exchange as a
// primitives.Extension: it binds a code_challenge to the authorization request and
// verifies the matching code_verifier when the code is redeemed, closing the
// authorization-code-interception gap for public clients.
package pkce

import (
	"context"
	"crypto/subtle"

	"golang.org/x/oauth2"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// MethodPlain and MethodS256 are the two code_challenge_method values RFC 7636
// defines. A request that omits code_challenge_method defaults to MethodPlain
// (RFC 7636 §4.3).
const (
	MethodPlain = "plain"
	MethodS256  = "S256"
)

// paramSource is the structural interface an Extension's "req any" parameter must
// satisfy for Extension to read code_challenge, code_challenge_method, and
// code_verifier out of it. A flow's normalized parameter bag implements this.
type paramSource interface {
	Get(key string) (string, bool)
}

const extensionID = "pkce"

// Extension is the PKCE primitives.Extension. RequireForAuthorizationCode, if set,
// rejects authorization requests that omit code_challenge; RFC 7636 recommends but
// does not mandate this for public clients, so the default is to allow PKCE-less
// requests through unchanged.
type Extension struct {
	RequireForAuthorizationCode bool
}

// ID implements primitives.Extension.
func (Extension) ID() string { return extensionID }

// Authorization implements primitives.Extension. It validates and records the
// code_challenge (privately; it is never echoed to the client) for later
// verification in AccessToken.
func (e Extension) Authorization(_ context.Context, req any, _ grant.PreGrant) (primitives.HookOutcome, error) {
	ps, _ := req.(paramSource)

	var challenge, method string
	if ps != nil {
		challenge, _ = ps.Get("code_challenge")
		method, _ = ps.Get("code_challenge_method")
	}

	if challenge == "" {
		if e.RequireForAuthorizationCode {
			return primitives.Reject("code_challenge is required"), nil
		}
		return primitives.Continue(), nil
	}

	if method == "" {
		method = MethodPlain
	}
	if method != MethodPlain && method != MethodS256 {
		return primitives.Reject("unsupported code_challenge_method"), nil
	}
	if !validVerifierSyntax(challenge) {
		return primitives.Reject("malformed code_challenge"), nil
	}

	return primitives.ContinueWithValue(extensionID, grant.ExtensionValue{
		Public: false,
		Data:   method + ":" + challenge,
	}), nil
}

// AccessToken implements primitives.Extension. It requires and verifies
// code_verifier against whatever challenge Authorization recorded on this grant.
func (e Extension) AccessToken(_ context.Context, req any, g grant.Grant) (primitives.HookOutcome, error) {
	stored, hadChallenge := g.Extensions[extensionID]

	ps, _ := req.(paramSource)
	var verifier string
	var hadVerifier bool
	if ps != nil {
		verifier, hadVerifier = ps.Get("code_verifier")
	}

	if !hadChallenge {
		if hadVerifier {
			return primitives.Reject("code_verifier presented without a code_challenge"), nil
		}
		return primitives.Continue(), nil
	}

	if !hadVerifier || verifier == "" {
		return primitives.Reject("code_verifier is required"), nil
	}
	if !validVerifierSyntax(verifier) {
		return primitives.Reject("malformed code_verifier"), nil
	}

	method, challenge, ok := splitStored(stored.Data)
	if !ok {
		return primitives.Reject("malformed stored code_challenge"), nil
	}

	var computed string
	switch method {
	case MethodPlain:
		computed = verifier
	case MethodS256:
		computed = oauth2.S256ChallengeFromVerifier(verifier)
	default:
		return primitives.Reject("unsupported code_challenge_method"), nil
	}

	if subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) != 1 {
		return primitives.Reject("code_verifier does not match code_challenge"), nil
	}
	return primitives.Continue(), nil
}

// Refresh implements primitives.Extension. PKCE has nothing to verify on a refresh
// request; it always continues.
func (Extension) Refresh(_ context.Context, _ any, _ grant.Grant) (primitives.HookOutcome, error) {
	return primitives.Continue(), nil
}

func splitStored(data string) (method, challenge string, ok bool) {
	for i := 0; i < len(data); i++ {
		if data[i] == ':' {
			return data[:i], data[i+1:], true
		}
	}
	return "", "", false
}

// validVerifierSyntax checks the RFC 7636 §4.1 code_verifier grammar, which also
// bounds a well-formed code_challenge (plain challenges are the verifier itself;
// S256 challenges are fixed-length base64url and satisfy the same grammar):
// 43-128 characters from [A-Z] [a-z] [0-9] "-" "." "_" "~".
func validVerifierSyntax(s string) bool {
	if len(s) < 43 || len(s) > 128 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '.' || r == '_' || r == '~':
		default:
			return false
		}
	}
	return true
}

var _ primitives.Extension = Extension{}
