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

package binding

import (
	"errors"
	"fmt"
	"net/http"
)

// Source identifies where a value being bound came from.
type Source int

const (
	// SourceUnknown is an unspecified source.
	SourceUnknown Source = iota

	// SourcePath represents URL path captures.
	SourcePath

	// SourceQuery represents URL query parameters.
	SourceQuery

	// SourceBody represents the request or response body.
	SourceBody
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	default:
		return "unknown"
	}
}

// ErrUnsupportedContentType is returned when no codec is registered for a
// request's Content-Type.
var ErrUnsupportedContentType = errors.New("binding: unsupported content type")

// BindError describes a failure to bind one value. It carries enough
// context to produce a useful client-error response without exposing
// internals.
type BindError struct {
	// Source is where the value came from (path, query, body).
	Source Source

	// Field is the capture or parameter name, or the content type for
	// body decode failures.
	Field string

	// Value is the raw value that failed to bind. Empty for body errors.
	Value string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("binding: cannot bind %s %q from value %q: %v", e.Source, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("binding: cannot bind %s %q: %v", e.Source, e.Field, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *BindError) Unwrap() error {
	return e.Err
}

// HTTPStatus marks bind failures as client errors. Decode failures of
// captures, query parameters, and bodies surface as 400 responses.
func (e *BindError) HTTPStatus() int {
	return http.StatusBadRequest
}
