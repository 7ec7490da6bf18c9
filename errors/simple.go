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
	"errors"
	"net/http"
)

// Simple formats errors as flat JSON objects with Content-Type
// "application/json". Format: {"error": "message", "details": {...}}.
type Simple struct {
	// StatusResolver determines the HTTP status from an error. If nil,
	// the ErrorType interface is consulted, defaulting to 500.
	StatusResolver func(err error) int
}

// Format converts an error into a simple JSON response. The error message
// is always present under "error"; structured details are included when
// the error implements ErrorDetails.
func (f *Simple) Format(req *http.Request, err error) Response {
	body := map[string]any{
		"error": err.Error(),
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		if d := detailed.Details(); d != nil {
			body["details"] = d
		}
	}

	return Response{
		Status:      f.determineStatus(err),
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

func (f *Simple) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}
