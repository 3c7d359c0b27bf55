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

import "fmt"

// OAuthError codes, per RFC 6749 and spec §7's error taxonomy.
const (
	ErrInvalidRequest          = "invalid_request"
	ErrInvalidClient           = "invalid_client"
	ErrInvalidGrant            = "invalid_grant"
	ErrUnauthorizedClient      = "unauthorized_client"
	ErrUnsupportedGrantType    = "unsupported_grant_type"
	ErrUnsupportedResponseType = "unsupported_response_type"
	ErrInvalidScope            = "invalid_scope"
	ErrAccessDenied            = "access_denied"
	ErrInvalidToken            = "invalid_token"
	ErrInsufficientScope       = "insufficient_scope"
)

// OAuthError is a flow-level protocol error: an RFC error code plus the optional
// human-readable detail RFC 6749 permits disclosing. It is distinct from a plain Go
// error returned by a primitive: primitive failures are converted into an
// OAuthError (usually collapsing detail, e.g. "Unspecified" always becomes
// invalid_client/invalid_grant without further distinction) before reaching the
// endpoint.
type OAuthError struct {
	Code        string
	Description string
	URI         string
}

// Error implements the error interface.
func (e *OAuthError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// newOAuthError builds an OAuthError with the given code and description.
func newOAuthError(code, description string) *OAuthError {
	return &OAuthError{Code: code, Description: description}
}
