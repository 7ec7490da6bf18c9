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
	"fmt"
	"net/http"
)

// Error is a handler failure with an explicit HTTP status code. The status
// and message pass through to the HTTP response unchanged; clients recover
// the message as a substring of the response body.
type Error struct {
	// Status is the HTTP status code, typically 4xx or 5xx.
	Status int

	// Message is the human-readable failure description.
	Message string

	// Fields carries optional structured detail included in the response.
	Fields map[string]any

	// Err is an optional underlying cause, not exposed on the wire.
	Err error
}

// New creates an Error with the given status code and message.
//
// Example:
//
//	return nil, errors.New(http.StatusInternalServerError, "error message")
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates a 400 Error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound creates a 404 Error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Internal creates a 500 Error.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Wrap creates an Error with the given status whose message is err's text
// and whose cause is err. If err is nil, the status text is used.
func Wrap(status int, err error) *Error {
	if err == nil {
		return New(status, http.StatusText(status))
	}
	return &Error{Status: status, Message: err.Error(), Err: err}
}

// WithFields returns a copy of the error carrying structured detail.
func (e *Error) WithFields(fields map[string]any) *Error {
	clone := *e
	clone.Fields = fields
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus implements ErrorType; the status propagates verbatim.
func (e *Error) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Details implements ErrorDetails when structured fields are present.
func (e *Error) Details() any {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
