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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aycanirican/servant/binding"
	"github.com/aycanirican/servant/route"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

// Option defines functional options for client configuration.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithCodec sets the request body codec. Defaults to JSON.
func WithCodec(codec binding.Codec) Option {
	return func(c *Client) { c.codec = codec }
}

// WithTimeout sets a per-call timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// Client issues requests described by a route.API. One callable surface,
// Call, covers every endpoint; arguments are validated against the
// endpoint's declared shape before anything touches the network.
//
// A Client is safe for concurrent use.
type Client struct {
	api     *route.API
	baseURL string
	hc      *http.Client
	codec   binding.Codec
	timeout time.Duration
}

// New creates a client for the given API rooted at baseURL
// (e.g. "http://127.0.0.1:8080").
func New(api *route.API, baseURL string, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must include scheme and host", baseURL)
	}

	c := &Client{
		api:     api,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		codec:   binding.JSON(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: c.timeout}
	} else if c.timeout != 0 {
		hc := *c.hc
		hc.Timeout = c.timeout
		c.hc = &hc
	}

	return c, nil
}

// Args carries the values for one call, mirroring the endpoint's declared
// elements.
type Args struct {
	// Captures are the path capture values in declaration order. Each
	// value's type must match its capture's declared kind.
	Captures []any

	// Query holds the present query parameters by name. Absent
	// parameters are omitted from the query string entirely, not sent
	// as empty values.
	Query map[string]any

	// Body is the request payload for endpoints that declare one.
	Body any
}

// Response is a successful (2xx) response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Header is the response header.
	Header http.Header

	// Body is the raw response body.
	Body []byte

	codec binding.Codec
}

// Decode deserializes a response body into T using the codec matching the
// response's Content-Type.
func Decode[T any](resp *Response) (T, error) {
	var v T
	if err := resp.codec.Decode(resp.Body, &v); err != nil {
		return v, fmt.Errorf("client: decoding response: %w", err)
	}
	return v, nil
}

// Call invokes the named endpoint. It builds the request path by
// substituting captures, appends only the query parameters present in
// args, serializes the body when the endpoint declares one, performs the
// request, and classifies the outcome: 2xx → *Response, non-2xx →
// *StatusError, anything else → *TransportError.
func (c *Client) Call(ctx context.Context, name string, args Args) (*Response, error) {
	ep, ok := c.api.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
	}

	target, err := c.buildURL(ep, args)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if ep.HasBody() {
		if args.Body == nil {
			return nil, fmt.Errorf("client: endpoint %q declares a request body but none was given", name)
		}
		data, err := c.codec.Encode(args.Body)
		if err != nil {
			return nil, fmt.Errorf("client: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else if args.Body != nil {
		return nil, fmt.Errorf("client: endpoint %q does not declare a request body", name)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method(), target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", c.codec.ContentType())
	}

	op := ep.Method() + " " + target

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Status:  resp.StatusCode,
			Message: extractMessage(body),
			Body:    body,
		}
	}

	codec, err := binding.ForContentType(resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown response format; fall back to the request codec so
		// Decode still has a chance.
		codec = c.codec
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
		codec:  codec,
	}, nil
}

// buildURL formats captures and present query parameters into the request
// URL. Capture values are substituted verbatim into the path.
func (c *Client) buildURL(ep *route.Endpoint, args Args) (string, error) {
	captures := ep.Captures()
	if len(args.Captures) != len(captures) {
		return "", fmt.Errorf("client: endpoint %q needs %d capture values, got %d",
			ep.Name(), len(captures), len(args.Captures))
	}

	rawCaptures := make([]string, len(captures))
	for i, seg := range captures {
		s, err := binding.Format(args.Captures[i], seg.Kind)
		if err != nil {
			return "", fmt.Errorf("client: capture %q: %w", seg.Name, err)
		}
		rawCaptures[i] = s
	}

	path, err := ep.BuildPath(rawCaptures)
	if err != nil {
		return "", err
	}

	declared := ep.Queries()
	values := url.Values{}
	for _, qp := range declared {
		v, present := args.Query[qp.Name]
		if !present {
			continue
		}
		s, err := binding.Format(v, qp.Kind)
		if err != nil {
			return "", fmt.Errorf("client: query parameter %q: %w", qp.Name, err)
		}
		values.Set(qp.Name, s)
	}
	for name := range args.Query {
		if !declaredQuery(declared, name) {
			return "", fmt.Errorf("client: endpoint %q does not declare query parameter %q", ep.Name(), name)
		}
	}

	target := c.baseURL + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	return target, nil
}

func declaredQuery(declared []route.QueryParam, name string) bool {
	for _, qp := range declared {
		if qp.Name == name {
			return true
		}
	}
	return false
}
