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
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/grantworks/oauthcore/pkg/flow"
)

// Status is the open set of HTTP status families a Response may carry,
// independent of any particular web framework's status-code type.
type Status int

// Response status values a flow.Template can be converted into.
const (
	StatusOK Status = iota
	StatusRedirect
	StatusBadRequest
	StatusUnauthorized
	StatusForbidden
	StatusServerError
)

// Body models the two encodings a Response body may carry.
type Body struct {
	Text string
	JSON string
}

// Response is the open, owning response type NewResponse builds from a
// flow.Template: a status, an optional redirect Location, an optional
// WWW-Authenticate header value, and an optional Body. Callers map this onto
// their own HTTP framework's response writer.
type Response struct {
	Status          Status
	Location        *url.URL
	WWWAuthenticate string
	Body            *Body
	// Raw carries a solicitor's own response verbatim for an InProgress
	// authorization outcome; every other field is the zero value when Raw is
	// set.
	Raw any
}

// oauthErrorJSON is the wire shape of a token error response (spec §6).
type oauthErrorJSON struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// NewResponse converts a flow.Template into a Response. It is the Response
// method a SimpleEndpoint uses; exported standalone so a caller assembling
// its own Endpoint can reuse the same conversion without a SimpleEndpoint.
func NewResponse(t flow.Template) (*Response, error) {
	switch t.Kind {
	case flow.Ok:
		payload, err := json.Marshal(t.Body)
		if err != nil {
			return nil, fmt.Errorf("frontend: encoding response body: %w", err)
		}
		return &Response{Status: StatusOK, Body: &Body{JSON: string(payload)}}, nil

	case flow.Redirect:
		loc, err := url.Parse(t.RedirectURI)
		if err != nil {
			return nil, fmt.Errorf("frontend: parsing redirect_uri: %w", err)
		}
		q := loc.Query()
		for _, k := range sortedKeys(t.RedirectQuery) {
			q.Set(k, t.RedirectQuery[k])
		}
		loc.RawQuery = q.Encode()
		return &Response{Status: StatusRedirect, Location: loc}, nil

	case flow.InProgress:
		return &Response{Status: StatusOK, Raw: t.Raw}, nil

	case flow.ClientError:
		payload, err := json.Marshal(errorJSON(t.OAuthErr))
		if err != nil {
			return nil, fmt.Errorf("frontend: encoding error body: %w", err)
		}
		return &Response{Status: StatusBadRequest, Body: &Body{JSON: string(payload)}}, nil

	case flow.Unauthorized:
		payload, err := json.Marshal(errorJSON(t.OAuthErr))
		if err != nil {
			return nil, fmt.Errorf("frontend: encoding error body: %w", err)
		}
		return &Response{Status: StatusUnauthorized, WWWAuthenticate: t.WWWAuthenticate, Body: &Body{JSON: string(payload)}}, nil

	case flow.Forbidden:
		payload, err := json.Marshal(errorJSON(t.OAuthErr))
		if err != nil {
			return nil, fmt.Errorf("frontend: encoding error body: %w", err)
		}
		return &Response{Status: StatusForbidden, WWWAuthenticate: t.WWWAuthenticate, Body: &Body{JSON: string(payload)}}, nil

	case flow.ServerError:
		return &Response{Status: StatusServerError}, nil

	default:
		return nil, fmt.Errorf("frontend: unknown response kind %d", t.Kind)
	}
}

func errorJSON(e *flow.OAuthError) oauthErrorJSON {
	if e == nil {
		return oauthErrorJSON{Error: "server_error"}
	}
	return oauthErrorJSON{Error: e.Code, ErrorDescription: e.Description, ErrorURI: e.URI}
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
