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
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// RFC9457 formats errors as RFC 9457 Problem Details with Content-Type
// "application/problem+json".
type RFC9457 struct {
	// BaseURL is prepended to problem type slugs to create full URIs,
	// e.g. "https://api.example.com/problems" + "/bad-request".
	BaseURL string

	// StatusResolver determines the HTTP status from an error. If nil,
	// the ErrorType interface is consulted, defaulting to 500.
	StatusResolver func(err error) int
}

// ProblemDetail is an RFC 9457 problem detail document.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON merges extensions inline while protecting the reserved
// problem detail member names.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		switch k {
		case "type", "title", "status", "detail", "instance":
		default:
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// Format converts an error into an RFC 9457 problem details response.
// The request path becomes the instance URI; structured details from
// ErrorDetails become an extension member.
func (f *RFC9457) Format(req *http.Request, err error) Response {
	status := f.determineStatus(err)

	p := ProblemDetail{
		Type:     f.problemType(status),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: req.URL.Path,
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		if d := detailed.Details(); d != nil {
			p.Extensions = map[string]any{"details": d}
		}
	}

	return Response{
		Status:      status,
		ContentType: "application/problem+json",
		Body:        p,
	}
}

func (f *RFC9457) determineStatus(err error) int {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}

	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}

	return http.StatusInternalServerError
}

// problemType derives a type URI from the status text, e.g. 400 becomes
// <base>/bad-request. Without a BaseURL the generic "about:blank" is used.
func (f *RFC9457) problemType(status int) string {
	if f.BaseURL == "" {
		return "about:blank"
	}
	slug := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "-"))
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + slug
}
