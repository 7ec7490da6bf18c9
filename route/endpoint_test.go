// Copyright 2026 The Servant Authors
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

package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEndpoint(t *testing.T, b *Builder) *Endpoint {
	t.Helper()
	api, err := NewAPI(b)
	require.NoError(t, err)
	return api.Endpoints()[0]
}

func TestEndpoint_MatchStatic(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("health").Path("healthz"))

	caps, ok := ep.Match(http.MethodGet, "/healthz")
	require.True(t, ok)
	assert.Empty(t, caps)

	_, ok = ep.Match(http.MethodPost, "/healthz")
	assert.False(t, ok, "verb mismatch must not match")

	_, ok = ep.Match(http.MethodGet, "/health")
	assert.False(t, ok, "literal mismatch must not match")

	_, ok = ep.Match(http.MethodGet, "/healthz/extra")
	assert.False(t, ok, "extra components must not match")
}

func TestEndpoint_MatchCapture(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("getPerson").Path("person").Capture("name", String))

	caps, ok := ep.Match(http.MethodGet, "/person/Paula")
	require.True(t, ok)
	assert.Equal(t, []string{"Paula"}, caps)

	_, ok = ep.Match(http.MethodGet, "/person")
	assert.False(t, ok, "missing capture component must not match")
}

func TestEndpoint_MatchMultipleCaptures(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("comment").
		Path("posts").Capture("postID", Int64).
		Path("comments").Capture("commentID", Int64))

	caps, ok := ep.Match(http.MethodGet, "/posts/7/comments/42")
	require.True(t, ok)
	assert.Equal(t, []string{"7", "42"}, caps)
}

func TestEndpoint_MatchRoot(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("root"))

	_, ok := ep.Match(http.MethodGet, "/")
	assert.True(t, ok)

	_, ok = ep.Match(http.MethodGet, "/anything")
	assert.False(t, ok)
}

func TestEndpoint_TrailingSlashIsDistinct(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("list").Path("person"))

	_, ok := ep.Match(http.MethodGet, "/person")
	assert.True(t, ok)

	_, ok = ep.Match(http.MethodGet, "/person/")
	assert.False(t, ok)
}

func TestEndpoint_EmptyComponentNeverBindsCapture(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("getPerson").Path("person").Capture("name", String))

	_, ok := ep.Match(http.MethodGet, "/person//")
	assert.False(t, ok)
}

func TestEndpoint_BuildPath(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("comment").
		Path("posts").Capture("postID", Int64).
		Path("comments").Capture("commentID", Int64))

	path, err := ep.BuildPath([]string{"7", "42"})
	require.NoError(t, err)
	assert.Equal(t, "/posts/7/comments/42", path)
}

func TestEndpoint_BuildPathArityMismatch(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("getPerson").Path("person").Capture("name", String))

	_, err := ep.BuildPath(nil)
	assert.Error(t, err)

	_, err = ep.BuildPath([]string{"a", "b"})
	assert.Error(t, err)
}

func TestEndpoint_BuildPathRoot(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("root"))

	path, err := ep.BuildPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "/", path)
}

func TestEndpoint_RoundTrip(t *testing.T) {
	t.Parallel()

	// BuildPath output always matches the endpoint that produced it.
	ep := mustEndpoint(t, Put("update").
		Path("api").Capture("id", String).Path("detail"))

	path, err := ep.BuildPath([]string{"abc"})
	require.NoError(t, err)

	caps, ok := ep.Match(http.MethodPut, path)
	require.True(t, ok)
	assert.Equal(t, []string{"abc"}, caps)
}

func TestEndpoint_Captures(t *testing.T) {
	t.Parallel()

	ep := mustEndpoint(t, Get("x").
		Path("a").Capture("one", Int).Path("b").Capture("two", Bool))

	caps := ep.Captures()
	require.Len(t, caps, 2)
	assert.Equal(t, "one", caps[0].Name)
	assert.Equal(t, Int, caps[0].Kind)
	assert.Equal(t, "two", caps[1].Name)
	assert.Equal(t, Bool, caps[1].Kind)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{String, "string"},
		{Int, "int"},
		{Int64, "int64"},
		{Float, "float"},
		{Bool, "bool"},
		{UUID, "uuid"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
