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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aycanirican/servant/binding"
	apierrors "github.com/aycanirican/servant/errors"
	"github.com/aycanirican/servant/route"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Sentinel errors returned by Handle.
var (
	// ErrNilAPI is returned by New when the API description is nil.
	ErrNilAPI = errors.New("dispatch: api must not be nil")

	// ErrFrozen is returned when binding a handler after serving started.
	ErrFrozen = errors.New("dispatch: handlers are frozen once serving has started")

	// ErrUnknownEndpoint is returned when binding a name the API does not declare.
	ErrUnknownEndpoint = errors.New("dispatch: unknown endpoint")

	// ErrAlreadyBound is returned when an endpoint already has a handler.
	ErrAlreadyBound = errors.New("dispatch: endpoint already has a handler")
)

// HandlerFunc is the server-side handler for one endpoint. The returned
// value is encoded as a 2xx response; a nil value produces 204 No Content.
// A returned error is formatted through the dispatcher's error formatter:
// errors implementing errors.ErrorType keep their declared status, all
// others become 500 responses.
type HandlerFunc func(c *Context) (any, error)

// Option defines functional options for dispatcher configuration.
type Option func(*Dispatcher)

// WithFormatter sets the error formatter. Defaults to errors.NewSimple().
func WithFormatter(f apierrors.Formatter) Option {
	return func(d *Dispatcher) { d.formatter = f }
}

// WithLogger sets the base logger for request-scoped logging and access
// logs. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithCodec sets the response body codec. Defaults to JSON.
func WithCodec(c binding.Codec) Option {
	return func(d *Dispatcher) { d.codec = c }
}

// WithObservability sets the observability recorder. Pass nil to disable.
func WithObservability(rec ObservabilityRecorder) Option {
	return func(d *Dispatcher) { d.recorder = rec }
}

// WithMaxBodyBytes caps request body size; larger bodies are rejected
// with 413. Defaults to 4 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(d *Dispatcher) { d.maxBodyBytes = n }
}

// defaultMaxBodyBytes caps request bodies at 4 MiB unless configured.
const defaultMaxBodyBytes = 4 << 20

// Dispatcher matches requests against a route.API and executes bound
// handlers. It implements http.Handler and is safe for concurrent use.
//
// Handlers are bound by endpoint name during setup. The first request
// freezes the bindings; configuration and serving are mutually exclusive
// phases, which eliminates data races on the handler table.
type Dispatcher struct {
	api        *route.API
	handlersMu sync.Mutex
	handlers   map[string]HandlerFunc // guarded by handlersMu until freeze
	frozen     bool                   // guarded by handlersMu

	freezeOnce sync.Once
	bound      map[string]HandlerFunc // immutable snapshot taken at freeze

	formatter    apierrors.Formatter
	codec        binding.Codec
	logger       *slog.Logger
	recorder     ObservabilityRecorder
	maxBodyBytes int64
}

// New creates a dispatcher for the given API description.
//
// Example:
//
//	d, err := dispatch.New(api, dispatch.WithLogger(logger))
//	if err != nil {
//	    log.Fatalf("dispatcher: %v", err)
//	}
func New(api *route.API, opts ...Option) (*Dispatcher, error) {
	if api == nil {
		return nil, ErrNilAPI
	}

	d := &Dispatcher{
		api:          api,
		handlers:     make(map[string]HandlerFunc, api.Len()),
		formatter:    apierrors.NewSimple(),
		codec:        binding.JSON(),
		logger:       noopLogger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// MustNew is New that panics on configuration errors.
func MustNew(api *route.API, opts ...Option) *Dispatcher {
	d, err := New(api, opts...)
	if err != nil {
		panic(fmt.Sprintf("dispatch.MustNew: %v", err))
	}
	return d
}

// Handle binds a handler to the named endpoint. Binding fails once serving
// has started, for names the API does not declare, and for endpoints that
// already have a handler.
func (d *Dispatcher) Handle(name string, h HandlerFunc) error {
	if _, ok := d.api.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
	}

	// Frozen check and map write must share the mutex: a Handle call that
	// races the first request either lands before the freeze snapshot or
	// fails with ErrFrozen, never mid-snapshot.
	d.handlersMu.Lock()
	defer d.handlersMu.Unlock()
	if d.frozen {
		return fmt.Errorf("%w: %q", ErrFrozen, name)
	}
	if _, bound := d.handlers[name]; bound {
		return fmt.Errorf("%w: %q", ErrAlreadyBound, name)
	}
	d.handlers[name] = h

	return nil
}

// MustHandle is Handle that panics on error. Returns the dispatcher for
// chained setup.
func (d *Dispatcher) MustHandle(name string, h HandlerFunc) *Dispatcher {
	if err := d.Handle(name, h); err != nil {
		panic(fmt.Sprintf("dispatch.MustHandle: %v", err))
	}
	return d
}

// ServeHTTP matches the request against the API's endpoints in declaration
// order and executes the first structural match. See the package
// documentation for the failure mapping.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// First request freezes handler bindings into an immutable snapshot.
	// Once.Do gives every later request a happens-before edge to the
	// snapshot, so reads of d.bound need no lock.
	d.freezeOnce.Do(func() {
		d.handlersMu.Lock()
		d.frozen = true
		d.bound = make(map[string]HandlerFunc, len(d.handlers))
		for name, h := range d.handlers {
			d.bound[name] = h
		}
		d.handlersMu.Unlock()
	})

	start := time.Now()
	ctx := req.Context()
	var obsState any
	if d.recorder != nil {
		enriched, state := d.recorder.OnRequestStart(ctx, req)
		if enriched != ctx {
			ctx = enriched
			req = req.WithContext(ctx)
		}
		obsState = state
	}

	rw := &responseWriter{ResponseWriter: w}

	for _, ep := range d.api.Endpoints() {
		raw, ok := ep.Match(req.Method, req.URL.Path)
		if !ok {
			continue
		}
		d.serve(rw, req, ep, raw)
		if d.recorder != nil {
			d.recorder.OnRequestEnd(ctx, obsState, rw.StatusCode(), rw.Size(), ep.Pattern())
		}
		return
	}

	// Unmatched requests get the same access-log treatment as matched
	// ones; they are the requests most worth noticing.
	logger := d.logger.With(
		slog.String("method", req.Method),
		slog.String("route", notFoundPattern),
		slog.String("path", req.URL.Path),
	)
	notFound := apierrors.NotFound(fmt.Sprintf("no route for %s %s", req.Method, req.URL.Path))
	d.writeError(rw, req, logger, notFound)
	d.accessLog(logger, rw, start)
	if d.recorder != nil {
		d.recorder.OnRequestEnd(ctx, obsState, rw.StatusCode(), rw.Size(), notFoundPattern)
	}
}

// serve decodes the request for a matched endpoint, runs its handler, and
// encodes the outcome.
func (d *Dispatcher) serve(rw *responseWriter, req *http.Request, ep *route.Endpoint, raw []string) {
	start := time.Now()
	requestID := uuid.NewString()
	logger := d.logger.With(
		slog.String("method", req.Method),
		slog.String("route", ep.Pattern()),
		slog.String("request_id", requestID),
	)

	c := &Context{
		Request:   req,
		Response:  rw,
		endpoint:  ep,
		logger:    logger,
		requestID: requestID,
	}

	if err := d.decodeRequest(c, req, ep, raw); err != nil {
		d.writeError(rw, req, logger, err)
		d.accessLog(logger, rw, start)
		return
	}

	result, err := d.invoke(c)
	if err != nil {
		d.writeError(rw, req, logger, err)
		d.accessLog(logger, rw, start)
		return
	}

	d.writeResult(rw, logger, result)
	d.accessLog(logger, rw, start)
}

// decodeRequest assembles the typed arguments for a matched endpoint:
// captures in declaration order, present query parameters, and the raw
// body. Any failure aborts the request with a client error; a structural
// match never falls through to a later endpoint.
func (d *Dispatcher) decodeRequest(c *Context, req *http.Request, ep *route.Endpoint, raw []string) error {
	captures := ep.Captures()
	c.captures = make(map[string]any, len(captures))
	for i, seg := range captures {
		v, err := binding.Convert(binding.SourcePath, seg.Name, raw[i], seg.Kind)
		if err != nil {
			return err
		}
		c.captures[seg.Name] = v
	}

	query := req.URL.Query()
	queries := ep.Queries()
	c.queries = make(map[string]any, len(queries))
	for _, qp := range queries {
		vals, present := query[qp.Name]
		if !present || len(vals) == 0 {
			continue
		}
		v, err := binding.Convert(binding.SourceQuery, qp.Name, vals[0], qp.Kind)
		if err != nil {
			return err
		}
		c.queries[qp.Name] = v
	}

	if !ep.HasBody() {
		return nil
	}

	codec, err := binding.ForContentType(req.Header.Get("Content-Type"))
	if err != nil {
		return apierrors.Wrap(http.StatusUnsupportedMediaType, err)
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Response, req.Body, d.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apierrors.Newf(http.StatusRequestEntityTooLarge,
				"request body exceeds %d bytes", maxErr.Limit)
		}
		return apierrors.Wrap(http.StatusBadRequest, fmt.Errorf("reading request body: %w", err))
	}
	c.body = body
	c.bodyCodec = codec

	return nil
}

// invoke runs the handler with panic isolation. A panicking handler
// produces a 500 outcome for this request only; the serving process and
// subsequent requests are unaffected.
func (d *Dispatcher) invoke(c *Context) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panic", slog.Any("panic", r))
			result = nil
			err = apierrors.Internal("internal server error")
		}
	}()

	handler, bound := d.handler(c.endpoint.Name())
	if !bound {
		return nil, apierrors.New(http.StatusNotImplemented,
			fmt.Sprintf("endpoint %q has no handler", c.endpoint.Name()))
	}

	return handler(c)
}

func (d *Dispatcher) handler(name string) (HandlerFunc, bool) {
	h, ok := d.bound[name]
	return h, ok
}

// writeResult encodes a success outcome. A nil result becomes 204.
func (d *Dispatcher) writeResult(rw *responseWriter, logger *slog.Logger, result any) {
	if result == nil {
		rw.WriteHeader(http.StatusNoContent)
		return
	}

	data, err := d.codec.Encode(result)
	if err != nil {
		logger.Error("response encoding failed", slog.Any("error", err))
		d.writeError(rw, nil, logger, apierrors.Internal("response encoding failed"))
		return
	}

	rw.Header().Set("Content-Type", d.codec.ContentType())
	rw.WriteHeader(http.StatusOK)
	if _, err := rw.Write(data); err != nil {
		logger.Warn("response write failed", slog.Any("error", err))
	}
}

// writeError formats a failure outcome onto the wire. The handler's status
// code and message propagate verbatim through the formatter.
func (d *Dispatcher) writeError(rw *responseWriter, req *http.Request, logger *slog.Logger, err error) {
	if req == nil {
		// Formatters take the request for instance URIs; synthesize an
		// empty one for the encode-failure path.
		req = &http.Request{URL: &url.URL{}}
	}

	resp := d.formatter.Format(req, err)
	rw.Header().Set("Content-Type", resp.ContentType)
	rw.WriteHeader(resp.Status)
	if encodeErr := json.NewEncoder(rw).Encode(resp.Body); encodeErr != nil {
		logger.Warn("error response write failed", slog.Any("error", encodeErr))
	}
}

// accessLog emits one entry per completed request.
func (d *Dispatcher) accessLog(logger *slog.Logger, rw *responseWriter, start time.Time) {
	logger.Info("request complete",
		slog.Int("status", rw.StatusCode()),
		slog.Int64("bytes", rw.Size()),
		slog.Duration("duration", time.Since(start)),
	)
}
