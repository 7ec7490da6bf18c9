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

package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusAndMessage(t *testing.T) {
	t.Parallel()

	err := New(http.StatusBadRequest, "bob not found")
	assert.Equal(t, "bob not found", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
}

func TestError_ZeroStatusDefaultsTo500(t *testing.T) {
	t.Parallel()

	err := &Error{Message: "boom"}
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestError_Wrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection reset")
	err := Wrap(http.StatusBadGateway, cause)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
	assert.Equal(t, "connection reset", err.Message)
	assert.True(t, stderrors.Is(err, cause))
}

func TestError_WrapNil(t *testing.T) {
	t.Parallel()

	err := Wrap(http.StatusServiceUnavailable, nil)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), err.Message)
}

func TestSimple_FormatTypedError(t *testing.T) {
	t.Parallel()

	f := NewSimple()
	req := httptest.NewRequest(http.MethodGet, "/person", nil)

	resp := f.Format(req, New(http.StatusInternalServerError, "error message"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)

	body, ok := resp.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error message", body["error"])
	assert.NotContains(t, body, "details")
}

func TestSimple_FormatPlainErrorDefaultsTo500(t *testing.T) {
	t.Parallel()

	f := NewSimple()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	resp := f.Format(req, stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestSimple_FormatIncludesDetails(t *testing.T) {
	t.Parallel()

	f := NewSimple()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := BadRequest("invalid age").WithFields(map[string]any{"field": "age"})
	resp := f.Format(req, err)

	body := resp.Body.(map[string]any)
	assert.Equal(t, map[string]any{"field": "age"}, body["details"])
}

func TestSimple_StatusResolverWins(t *testing.T) {
	t.Parallel()

	f := &Simple{StatusResolver: func(error) int { return http.StatusTeapot }}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	resp := f.Format(req, New(http.StatusBadRequest, "x"))
	assert.Equal(t, http.StatusTeapot, resp.Status)
}

func TestSimple_FormatWrappedTypedError(t *testing.T) {
	t.Parallel()

	// A typed error found through a wrap chain still picks its status.
	f := NewSimple()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	wrapped := stderrors.Join(stderrors.New("context"), NotFound("missing"))
	resp := f.Format(req, wrapped)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}
