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

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for call construction.
var (
	// ErrNilAPI is returned by New when the API description is nil.
	ErrNilAPI = errors.New("client: api must not be nil")

	// ErrUnknownEndpoint is returned by Call for undeclared names.
	ErrUnknownEndpoint = errors.New("client: unknown endpoint")
)

// StatusError is a non-2xx response from the server. The server's failure
// message is always contained in Error()'s text, so callers can match it
// by substring even when transport context is added around it.
type StatusError struct {
	// Status is the HTTP status code.
	Status int

	// Message is the failure message extracted from the response body.
	Message string

	// Body is the raw response body.
	Body []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("client: server returned %d: %s", e.Status, e.Message)
}

// TransportError is a client-side failure that never produced a valid
// response: connection refused, timeout, or a malformed reply. It is
// distinct from StatusError.
type TransportError struct {
	// Op describes the failing call, e.g. "GET http://127.0.0.1:9/".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// extractMessage pulls the failure message out of an error response body.
// It understands the Simple formatter's {"error": ...} shape and RFC 9457
// problem details; anything else is returned as trimmed raw text.
func extractMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(body))
}
