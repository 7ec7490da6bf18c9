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
	"net/http"
	"strings"
)

// Builder assembles one endpoint through a fluent chain. Builders defer
// validation: errors accumulate and surface when the API is constructed,
// so a chain never needs intermediate error checks.
//
// Example:
//
//	route.Get("getBook").
//	    Path("books").
//	    Capture("id", route.Int64).
//	    Query("format", route.String)
type Builder struct {
	name     string
	method   string
	segments []Segment
	queries  []QueryParam
	hasBody  bool
	err      error
}

// Get starts a GET endpoint with the given name.
func Get(name string) *Builder { return newBuilder(name, http.MethodGet) }

// Post starts a POST endpoint with the given name.
func Post(name string) *Builder { return newBuilder(name, http.MethodPost) }

// Put starts a PUT endpoint with the given name.
func Put(name string) *Builder { return newBuilder(name, http.MethodPut) }

// Delete starts a DELETE endpoint with the given name.
func Delete(name string) *Builder { return newBuilder(name, http.MethodDelete) }

func newBuilder(name, method string) *Builder {
	b := &Builder{name: name, method: method}
	if name == "" {
		b.fail("endpoint name must not be empty")
	}
	return b
}

// Path appends static path segments. The literal may contain slashes, in
// which case each component becomes its own segment: Path("api/v1/users")
// is equivalent to Path("api").Path("v1").Path("users").
func (b *Builder) Path(literal string) *Builder {
	for _, part := range strings.Split(strings.Trim(literal, "/"), "/") {
		if part == "" {
			b.fail("static segment in %q must not be empty", literal)
			continue
		}
		b.segments = append(b.segments, Segment{Literal: part})
	}
	return b
}

// Capture appends a typed path capture. The capture name must be unique
// within the endpoint.
func (b *Builder) Capture(name string, kind Kind) *Builder {
	if name == "" {
		b.fail("capture name must not be empty")
		return b
	}
	if !kind.valid() {
		b.fail("capture %q has invalid kind", name)
		return b
	}
	for _, s := range b.segments {
		if s.IsCapture() && s.Name == name {
			b.fail("duplicate capture %q", name)
			return b
		}
	}
	b.segments = append(b.segments, Segment{Name: name, Kind: kind})
	return b
}

// Query declares a typed optional query parameter.
func (b *Builder) Query(name string, kind Kind) *Builder {
	if name == "" {
		b.fail("query parameter name must not be empty")
		return b
	}
	if !kind.valid() {
		b.fail("query parameter %q has invalid kind", name)
		return b
	}
	for _, q := range b.queries {
		if q.Name == name {
			b.fail("duplicate query parameter %q", name)
			return b
		}
	}
	b.queries = append(b.queries, QueryParam{Name: name, Kind: kind})
	return b
}

// Body declares that the endpoint accepts a request body.
func (b *Builder) Body() *Builder {
	if b.hasBody {
		b.fail("body declared twice")
		return b
	}
	b.hasBody = true
	return b
}

// build finalizes the builder into an immutable endpoint.
func (b *Builder) build() (*Endpoint, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Endpoint{
		name:     b.name,
		method:   b.method,
		segments: b.segments,
		queries:  b.queries,
		hasBody:  b.hasBody,
		pattern:  buildPattern(b.segments),
	}, nil
}

// fail records the first builder error; later errors are dropped because
// they are usually consequences of the first.
func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("route: endpoint %q: %s", b.name, fmt.Sprintf(format, args...))
	}
}
