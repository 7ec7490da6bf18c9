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
	"fmt"
	"slices"
	"strings"
)

// Segment is one path component of an endpoint: either a static literal or
// a typed capture. Literal is non-empty for static segments; captures carry
// Name and Kind instead.
type Segment struct {
	Literal string
	Name    string
	Kind    Kind
}

// IsCapture reports whether the segment binds a path component to a value
// rather than matching it literally.
func (s Segment) IsCapture() bool {
	return s.Literal == ""
}

// QueryParam is a declared, optional query parameter. Absence is not an
// error at match time; presence is reported to the handler alongside the
// decoded value.
type QueryParam struct {
	Name string
	Kind Kind
}

// Endpoint is one route alternative: an HTTP verb plus an ordered chain of
// segments, query parameters, and an optional request body. Endpoints are
// immutable once the API containing them has been constructed.
type Endpoint struct {
	name     string
	method   string
	segments []Segment
	queries  []QueryParam
	hasBody  bool
	pattern  string
}

// Name returns the endpoint's unique name within its API.
func (e *Endpoint) Name() string { return e.name }

// Method returns the HTTP verb (GET, POST, PUT, DELETE).
func (e *Endpoint) Method() string { return e.method }

// Pattern returns the path pattern with captures rendered as :name,
// e.g. "/person/:name". Useful for logs and metrics labels.
func (e *Endpoint) Pattern() string { return e.pattern }

// HasBody reports whether the endpoint declares a request body.
func (e *Endpoint) HasBody() bool { return e.hasBody }

// Segments returns a copy of the endpoint's path segments.
func (e *Endpoint) Segments() []Segment {
	return slices.Clone(e.segments)
}

// Captures returns the capture segments in declaration order.
func (e *Endpoint) Captures() []Segment {
	caps := make([]Segment, 0, len(e.segments))
	for _, s := range e.segments {
		if s.IsCapture() {
			caps = append(caps, s)
		}
	}
	return caps
}

// Queries returns a copy of the declared query parameters.
func (e *Endpoint) Queries() []QueryParam {
	return slices.Clone(e.queries)
}

// Match checks the request method and path against the endpoint's shape.
// On a structural match it returns the raw (undecoded) capture values in
// declaration order. Decoding raw values into their declared kinds is the
// caller's concern; a structural match that later fails to decode must not
// fall through to another endpoint.
func (e *Endpoint) Match(method, path string) ([]string, bool) {
	if method != e.method {
		return nil, false
	}

	components := splitPath(path)
	if len(components) != len(e.segments) {
		return nil, false
	}

	var captures []string
	for i, seg := range e.segments {
		if seg.IsCapture() {
			if components[i] == "" {
				return nil, false
			}
			captures = append(captures, components[i])
			continue
		}
		if components[i] != seg.Literal {
			return nil, false
		}
	}

	return captures, true
}

// BuildPath substitutes the given raw capture values into the endpoint's
// pattern and returns the resulting request path. Values are concatenated
// verbatim; the caller is responsible for formatting typed values first.
func (e *Endpoint) BuildPath(captures []string) (string, error) {
	var b strings.Builder
	next := 0
	for _, seg := range e.segments {
		b.WriteByte('/')
		if seg.IsCapture() {
			if next >= len(captures) {
				return "", fmt.Errorf("route: endpoint %q needs %d capture values, got %d", e.name, len(e.Captures()), len(captures))
			}
			b.WriteString(captures[next])
			next++
			continue
		}
		b.WriteString(seg.Literal)
	}
	if next != len(captures) {
		return "", fmt.Errorf("route: endpoint %q needs %d capture values, got %d", e.name, next, len(captures))
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// buildPattern renders segments as a human-readable pattern string.
func buildPattern(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		if seg.IsCapture() {
			b.WriteByte(':')
			b.WriteString(seg.Name)
		} else {
			b.WriteString(seg.Literal)
		}
	}
	return b.String()
}

// splitPath splits a request path into components. The root path "/" has no
// components. A trailing slash produces a trailing empty component, which
// never matches, so "/person/" is distinct from "/person".
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
