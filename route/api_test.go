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

func TestNewAPI_PreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	api, err := NewAPI(
		Get("first").Path("a"),
		Get("second").Path("b"),
		Post("third").Path("a").Body(),
	)
	require.NoError(t, err)
	require.Equal(t, 3, api.Len())

	eps := api.Endpoints()
	assert.Equal(t, "first", eps[0].Name())
	assert.Equal(t, "second", eps[1].Name())
	assert.Equal(t, "third", eps[2].Name())
}

func TestNewAPI_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	_, err := NewAPI(
		Get("dup").Path("a"),
		Post("dup").Path("b"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate endpoint name")
}

func TestNewAPI_RejectsEmptyName(t *testing.T) {
	t.Parallel()

	_, err := NewAPI(Get("").Path("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be empty")
}

func TestNewAPI_RejectsDuplicateCapture(t *testing.T) {
	t.Parallel()

	_, err := NewAPI(
		Get("bad").Capture("id", Int).Path("sub").Capture("id", Int),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate capture "id"`)
}

func TestNewAPI_RejectsDuplicateQuery(t *testing.T) {
	t.Parallel()

	_, err := NewAPI(
		Get("bad").Path("a").Query("name", String).Query("name", String),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate query parameter "name"`)
}

func TestNewAPI_RejectsDoubleBody(t *testing.T) {
	t.Parallel()

	_, err := NewAPI(Post("bad").Path("a").Body().Body())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body declared twice")
}

func TestMustAPI_PanicsOnInvalidDescription(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustAPI(Get("").Path("a"))
	})
}

func TestAPI_Lookup(t *testing.T) {
	t.Parallel()

	api := MustAPI(
		Get("getPerson").Path("person").Capture("name", String),
	)

	ep, ok := api.Lookup("getPerson")
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, ep.Method())
	assert.Equal(t, "/person/:name", ep.Pattern())

	_, ok = api.Lookup("nope")
	assert.False(t, ok)
}

func TestBuilder_Verbs(t *testing.T) {
	t.Parallel()

	api := MustAPI(
		Get("g").Path("x"),
		Post("p").Path("x"),
		Put("u").Path("x"),
		Delete("d").Path("x"),
	)

	methods := make([]string, 0, 4)
	for _, ep := range api.Endpoints() {
		methods = append(methods, ep.Method())
	}
	assert.Equal(t, []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
	}, methods)
}

func TestBuilder_PathSplitsOnSlashes(t *testing.T) {
	t.Parallel()

	api := MustAPI(Get("nested").Path("api/v1/users"))
	ep, _ := api.Lookup("nested")
	assert.Equal(t, "/api/v1/users", ep.Pattern())

	segments := ep.Segments()
	require.Len(t, segments, 3)
	for _, s := range segments {
		assert.False(t, s.IsCapture())
	}
}
