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

package dispatch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aycanirican/servant/binding"
	"github.com/aycanirican/servant/route"
)

// Context carries one request's decoded arguments into its handler.
// Captures and present query parameters are already decoded into their
// declared kinds by the time the handler runs; decode failures never reach
// handler code.
//
// A Context is only valid for the duration of the handler call.
type Context struct {
	// Request is the underlying HTTP request.
	Request *http.Request

	// Response is the response writer. Handlers normally return a value
	// instead of writing directly; direct writes bypass outcome encoding.
	Response http.ResponseWriter

	endpoint  *route.Endpoint
	captures  map[string]any
	queries   map[string]any
	body      []byte
	bodyCodec binding.Codec
	logger    *slog.Logger
	requestID string
}

// Endpoint returns the matched endpoint description.
func (c *Context) Endpoint() *route.Endpoint {
	return c.endpoint
}

// Context returns the request's context.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// RequestID returns the identifier assigned to this request. It is also
// attached to every entry of Logger.
func (c *Context) RequestID() string {
	return c.requestID
}

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Capture returns the decoded value of the named capture.
func (c *Context) Capture(name string) (any, bool) {
	v, ok := c.captures[name]
	return v, ok
}

// String returns the named capture as a string, or "" if the capture is
// absent or declared with another kind.
func (c *Context) String(name string) string {
	s, _ := c.captures[name].(string)
	return s
}

// Int returns the named capture as an int.
func (c *Context) Int(name string) int {
	n, _ := c.captures[name].(int)
	return n
}

// Int64 returns the named capture as an int64.
func (c *Context) Int64(name string) int64 {
	n, _ := c.captures[name].(int64)
	return n
}

// Float returns the named capture as a float64.
func (c *Context) Float(name string) float64 {
	f, _ := c.captures[name].(float64)
	return f
}

// Bool returns the named capture as a bool.
func (c *Context) Bool(name string) bool {
	b, _ := c.captures[name].(bool)
	return b
}

// UUID returns the named capture as a uuid.UUID.
func (c *Context) UUID(name string) uuid.UUID {
	id, _ := c.captures[name].(uuid.UUID)
	return id
}

// Query returns the decoded value of the named query parameter and whether
// it was present on the request. Declared parameters are optional; handlers
// decide what absence means.
func (c *Context) Query(name string) (any, bool) {
	v, ok := c.queries[name]
	return v, ok
}

// QueryString returns the named query parameter as a string.
func (c *Context) QueryString(name string) (string, bool) {
	v, ok := c.queries[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// QueryInt returns the named query parameter as an int.
func (c *Context) QueryInt(name string) (int, bool) {
	v, ok := c.queries[name]
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// QueryBool returns the named query parameter as a bool.
func (c *Context) QueryBool(name string) (bool, bool) {
	v, ok := c.queries[name]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Bind decodes the request body into v using the codec selected by the
// request's Content-Type. It returns a *binding.BindError if the body does
// not parse, which surfaces as a 400 response when returned from the
// handler.
func (c *Context) Bind(v any) error {
	return c.bodyCodec.Decode(c.body, v)
}

// RawBody returns the unparsed request body. Nil when the endpoint does
// not declare a body.
func (c *Context) RawBody() []byte {
	return c.body
}
