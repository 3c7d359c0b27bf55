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

package flow

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// ErrPrimitiveMissing is returned at the start of a flow when the Endpoint lacks a
// primitive that flow requires (spec §4.7).
var ErrPrimitiveMissing = errors.New("flow: required primitive missing from endpoint")

// ResponseKind is the abstract shape of a Response, independent of any HTTP
// framework: the endpoint turns a (Kind, Template) pair into its own concrete
// response type.
type ResponseKind int

// Response kinds a flow may request from an Endpoint.
const (
	Ok ResponseKind = iota
	Redirect
	InProgress
	ClientError
	Unauthorized
	Forbidden
	ServerError
)

// Template is what a flow hands its Endpoint to build a concrete Response. Only
// the fields relevant to Kind are populated; the rest are zero.
type Template struct {
	Kind ResponseKind

	// RedirectURI and RedirectQuery populate a Redirect response: the flow has
	// already decided the exact query parameters (including any error fields);
	// the endpoint only needs to append them and issue the redirect.
	RedirectURI   string
	RedirectQuery map[string]string

	// Body populates an Ok response's payload (e.g. a *TokenResponse).
	Body any

	// Raw populates an InProgress response: the solicitor's own response value,
	// passed through verbatim.
	Raw any

	// OAuthErr populates ClientError, Unauthorized, and Forbidden responses.
	OAuthErr *OAuthError

	// WWWAuthenticate populates the header value for Unauthorized/Forbidden
	// responses guarding a resource (spec §4.6.4).
	WWWAuthenticate string
}

// Endpoint composes the primitives and response-construction strategy a flow
// needs (spec §4.7). Each accessor's second return value is false if that
// primitive was not configured; flows that require it fail fast with
// ErrPrimitiveMissing rather than calling a nil primitive.
type Endpoint interface {
	Registrar() (primitives.Registrar, bool)
	Authorizer() (primitives.Authorizer, bool)
	Issuer() (primitives.Issuer, bool)
	// Scopes is the list of scopes a resource flow guards; absent for endpoints
	// that never run the resource flow.
	Scopes() ([]grant.Scope, bool)
	// Solicitor selects the OwnerSolicitor for one authorization request. req is
	// the in-flight request value the flow was given; pre is the negotiated
	// PreGrant.
	Solicitor(ctx context.Context, req any, pre grant.PreGrant) (primitives.OwnerSolicitor, bool)
	// Extension returns the aggregate Extension for this endpoint. An endpoint
	// with no extensions configured returns primitives.NoopExtension{}, never nil.
	Extension() primitives.Extension
	// Response converts a Template into a concrete, framework-specific response.
	Response(ctx context.Context, t Template) (any, error)
	// Error converts an internal (non-protocol) failure into the endpoint's
	// error type, e.g. for logging and a generic 500 response.
	Error(internal error) error
}

// TokenResponse is the JSON body of a successful /token response (spec §6).
// Extra carries extension public values and is flattened into the top-level JSON
// object rather than nested, since RFC 6749 §5.1 allows additional top-level
// response parameters.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope"`
	Extra        map[string]string `json:"-"`
}

// MarshalJSON flattens Extra alongside the named fields.
func (t TokenResponse) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"access_token": t.AccessToken,
		"token_type":   t.TokenType,
		"expires_in":   t.ExpiresIn,
		"scope":        t.Scope,
	}
	if t.RefreshToken != "" {
		out["refresh_token"] = t.RefreshToken
	}
	for k, v := range t.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// ClientAuthentication is the client credential a caller extracted from the
// request before invoking a flow (e.g. from the HTTP Basic Authorization header,
// or from the body if AllowClientSecretInBody-style policy permits it). Deciding
// which source to trust, and rejecting a request presenting both, is the adapter's
// job (spec §1's HTTP-adapter Non-goal): the flow only ever sees the final,
// already-resolved credential.
type ClientAuthentication struct {
	ClientID string
	// Secret is nil for a public client or when no secret was presented.
	Secret []byte
}

func publicExtensionStrings(ext grant.Extensions) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]string, len(ext))
	for k, v := range ext.Public() {
		out[k] = v.Data
	}
	return out
}
