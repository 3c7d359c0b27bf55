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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAuthorizationRequest_ReadsQuery(t *testing.T) {
	t.Parallel()

	req := NewAuthorizationRequest(map[string]string{"client_id": "abc"})
	v, ok := req.Get("client_id")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = req.Get("missing")
	assert.False(t, ok)
}

func TestNewTokenRequest_BodyTakesPrecedenceOverQuery(t *testing.T) {
	t.Parallel()

	req := NewTokenRequest(map[string]string{"grant_type": "authorization_code"}, "Basic xyz")
	v, ok := req.Get("grant_type")
	assert.True(t, ok)
	assert.Equal(t, "authorization_code", v)
	assert.Equal(t, "Basic xyz", req.Auth)

	req.Query = map[string]string{"grant_type": "should_never_win"}
	v, ok = req.Get("grant_type")
	assert.True(t, ok)
	assert.Equal(t, "authorization_code", v, "Body must shadow Query for the same key")
}

func TestRequest_FallsBackToQueryWhenBodyMissing(t *testing.T) {
	t.Parallel()

	req := &Request{Query: map[string]string{"state": "xyz"}}
	v, ok := req.Get("state")
	assert.True(t, ok)
	assert.Equal(t, "xyz", v)
}
