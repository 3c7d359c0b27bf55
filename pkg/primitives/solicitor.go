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

	"github.com/grantworks/oauthcore/pkg/grant"
)

// ConsentKind discriminates the variants of OwnerConsent.
type ConsentKind int

// OwnerConsent variants (spec §4.4).
const (
	// Authorized means the owner consented; OwnerID carries their identifier.
	Authorized ConsentKind = iota
	// Denied means the owner refused consent.
	Denied
	// InProgress means consent is still being solicited (e.g. a consent page);
	// Response carries the solicitor's response to hand back to the user agent
	// verbatim.
	InProgress
	// ConsentError means the solicitor failed internally; Err carries the cause.
	ConsentError
)

// OwnerConsent is the outcome of asking a solicitor to mediate end-user consent.
// Exactly one of the fields corresponding to Kind is meaningful.
type OwnerConsent struct {
	Kind ConsentKind
	// OwnerID is set when Kind == Authorized. It must be a stable, non-empty
	// identifier for the resource owner.
	OwnerID string
	// Response is set when Kind == InProgress: an opaque value the caller's
	// Endpoint knows how to turn into an HTTP response (e.g. render a consent
	// page). The flow machine never inspects it.
	Response any
	// Err is set when Kind == ConsentError.
	Err error
}

// ConsentAuthorized builds an Authorized OwnerConsent.
func ConsentAuthorized(ownerID string) OwnerConsent {
	return OwnerConsent{Kind: Authorized, OwnerID: ownerID}
}

// ConsentDenied builds a Denied OwnerConsent.
func ConsentDenied() OwnerConsent {
	return OwnerConsent{Kind: Denied}
}

// ConsentInProgress builds an InProgress OwnerConsent carrying response.
func ConsentInProgress(response any) OwnerConsent {
	return OwnerConsent{Kind: InProgress, Response: response}
}

// ConsentFailed builds a ConsentError OwnerConsent carrying err.
func ConsentFailed(err error) OwnerConsent {
	return OwnerConsent{Kind: ConsentError, Err: err}
}

// OwnerSolicitor mediates end-user consent during the authorization flow (spec
// §4.4). request is the abstract, frontend-specific in-flight request object; the
// solicitor may read from it (e.g. a session cookie) but the flow machine itself
// never inspects it.
type OwnerSolicitor interface {
	CheckConsent(ctx context.Context, request any, pre grant.PreGrant) OwnerConsent
}
