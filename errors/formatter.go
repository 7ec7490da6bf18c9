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
	"net/http"
)

// Formatter defines how errors are rendered into HTTP responses.
// Implementations are transport-agnostic: they return the response
// components and the caller writes them.
//
// Example:
//
//	formatter := errors.NewSimple()
//	response := formatter.Format(req, err)
//	w.Header().Set("Content-Type", response.ContentType)
//	w.WriteHeader(response.Status)
//	json.NewEncoder(w).Encode(response.Body)
type Formatter interface {
	// Format converts an error into HTTP response components.
	Format(req *http.Request, err error) Response
}

// Response represents a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body, marshaled by the caller.
	Body any
}

// ErrorType allows errors to declare their own HTTP status code. Domain
// errors implement this to control the wire status; errors without it
// default to 500.
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrorDetails allows errors to expose additional structured information
// in the response body.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// NewSimple creates a Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// NewRFC9457 creates an RFC9457 formatter. The baseURL is prepended to
// problem type slugs to form full type URIs.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}
