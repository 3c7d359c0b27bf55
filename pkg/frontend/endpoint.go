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

package frontend

import (
	"context"
	"fmt"

	"github.com/grantworks/oauthcore/pkg/flow"
	"github.com/grantworks/oauthcore/pkg/grant"
	"github.com/grantworks/oauthcore/pkg/primitives"
)

// DenyAllSolicitor is the "safe default" OwnerSolicitor: it denies every
// request. An Endpoint with no solicitor configured uses this rather than a
// nil value, so a deployment that forgets to wire up real consent fails
// closed instead of panicking or silently authorizing everyone.
type DenyAllSolicitor struct{}

// CheckConsent implements primitives.OwnerSolicitor.
func (DenyAllSolicitor) CheckConsent(context.Context, any, grant.PreGrant) primitives.OwnerConsent {
	return primitives.ConsentDenied()
}

// FuncSolicitor adapts a plain function to primitives.OwnerSolicitor, useful
// for tests and small embeddings that do not want to define a named type.
type FuncSolicitor func(ctx context.Context, request any, pre grant.PreGrant) primitives.OwnerConsent

// CheckConsent implements primitives.OwnerSolicitor.
func (f FuncSolicitor) CheckConsent(ctx context.Context, request any, pre grant.PreGrant) primitives.OwnerConsent {
	return f(ctx, request, pre)
}

// SimpleEndpoint is a reference flow.Endpoint composing primitives supplied
// at construction time. Any primitive omitted from NewSimpleEndpoint's
// options leaves the corresponding accessor reporting "absent" rather than
// panicking, exactly as the spec's §4.7 PrimitiveMissing behavior requires; a
// flow that needs it fails fast instead of calling through a nil value.
type SimpleEndpoint struct {
	registrar  primitives.Registrar
	authorizer primitives.Authorizer
	issuer     primitives.Issuer
	scopes     []grant.Scope
	hasScopes  bool
	solicitor  primitives.OwnerSolicitor
	extension  primitives.Extension
}

// Option configures a SimpleEndpoint built by NewSimpleEndpoint.
type Option func(*SimpleEndpoint)

// WithRegistrar configures the Registrar primitive.
func WithRegistrar(r primitives.Registrar) Option {
	return func(e *SimpleEndpoint) { e.registrar = r }
}

// WithAuthorizer configures the Authorizer primitive.
func WithAuthorizer(a primitives.Authorizer) Option {
	return func(e *SimpleEndpoint) { e.authorizer = a }
}

// WithIssuer configures the Issuer primitive.
func WithIssuer(i primitives.Issuer) Option {
	return func(e *SimpleEndpoint) { e.issuer = i }
}

// WithScopes configures the scope list a Resource flow guards. Passing an
// empty, non-nil slice means "no scope required"; never calling WithScopes
// at all means the Resource flow is unavailable on this Endpoint.
func WithScopes(scopes ...grant.Scope) Option {
	return func(e *SimpleEndpoint) {
		e.scopes = scopes
		e.hasScopes = true
	}
}

// WithSolicitor configures the OwnerSolicitor used for every authorization
// request this Endpoint serves. Omitting it defaults to DenyAllSolicitor.
func WithSolicitor(s primitives.OwnerSolicitor) Option {
	return func(e *SimpleEndpoint) { e.solicitor = s }
}

// WithExtension configures the aggregate Extension (e.g. a
// frontend.AddonList). Omitting it defaults to primitives.NoopExtension.
func WithExtension(ext primitives.Extension) Option {
	return func(e *SimpleEndpoint) { e.extension = ext }
}

// NewSimpleEndpoint builds a SimpleEndpoint from the given options.
func NewSimpleEndpoint(opts ...Option) *SimpleEndpoint {
	e := &SimpleEndpoint{}
	for _, opt := range opts {
		opt(e)
	}
	if e.solicitor == nil {
		e.solicitor = DenyAllSolicitor{}
	}
	if e.extension == nil {
		e.extension = primitives.NoopExtension{Name: "none"}
	}
	return e
}

// Registrar implements flow.Endpoint.
func (e *SimpleEndpoint) Registrar() (primitives.Registrar, bool) {
	return e.registrar, e.registrar != nil
}

// Authorizer implements flow.Endpoint.
func (e *SimpleEndpoint) Authorizer() (primitives.Authorizer, bool) {
	return e.authorizer, e.authorizer != nil
}

// Issuer implements flow.Endpoint.
func (e *SimpleEndpoint) Issuer() (primitives.Issuer, bool) {
	return e.issuer, e.issuer != nil
}

// Scopes implements flow.Endpoint.
func (e *SimpleEndpoint) Scopes() ([]grant.Scope, bool) {
	return e.scopes, e.hasScopes
}

// Solicitor implements flow.Endpoint. request and pre are accepted to satisfy
// the interface; a SimpleEndpoint uses the same solicitor for every request
// rather than selecting one dynamically.
func (e *SimpleEndpoint) Solicitor(_ context.Context, _ any, _ grant.PreGrant) (primitives.OwnerSolicitor, bool) {
	return e.solicitor, true
}

// Extension implements flow.Endpoint.
func (e *SimpleEndpoint) Extension() primitives.Extension {
	return e.extension
}

// Response implements flow.Endpoint by delegating to NewResponse.
func (e *SimpleEndpoint) Response(_ context.Context, t flow.Template) (any, error) {
	return NewResponse(t)
}

// Error implements flow.Endpoint: internal failures are wrapped, never
// exposed to the client beyond a generic server error (spec §7).
func (e *SimpleEndpoint) Error(internal error) error {
	return fmt.Errorf("frontend: internal endpoint failure: %w", internal)
}

var _ flow.Endpoint = (*SimpleEndpoint)(nil)
