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

// Package telemetry implements the dispatch package's observability seam
// with OpenTelemetry: one server span per request plus request count and
// duration instruments, labeled by method, route pattern, and status.
//
//	rec, err := telemetry.NewRecorder()
//	d := dispatch.MustNew(api, dispatch.WithObservability(rec))
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/aycanirican/servant/dispatch"
)

// scopeName is the instrumentation scope for tracer and meter.
const scopeName = "github.com/aycanirican/servant/telemetry"

// Option defines functional options for recorder configuration.
type Option func(*config)

type config struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) { c.meterProvider = mp }
}

// Recorder implements dispatch.ObservabilityRecorder using OpenTelemetry.
// It is safe for concurrent use.
type Recorder struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

var _ dispatch.ObservabilityRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder. Without options, the global OTel tracer
// and meter providers are used, so an application configures the SDK once
// and the recorder follows.
func NewRecorder(opts ...Option) (*Recorder, error) {
	cfg := &config{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(scopeName)

	requests, err := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of dispatched HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating request counter: %w", err)
	}

	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating duration histogram: %w", err)
	}

	return &Recorder{
		tracer:   cfg.tracerProvider.Tracer(scopeName),
		requests: requests,
		duration: duration,
	}, nil
}

// requestState travels from OnRequestStart to OnRequestEnd.
type requestState struct {
	span   trace.Span
	start  time.Time
	method string
}

// OnRequestStart opens a server span for the request. The span's name is
// finalized in OnRequestEnd once the route pattern is known.
func (r *Recorder) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	ctx, span := r.tracer.Start(ctx, req.Method,
		trace.WithSpanKind(trace.SpanKindServer),
	)
	return ctx, &requestState{
		span:   span,
		start:  time.Now(),
		method: req.Method,
	}
}

// OnRequestEnd closes the span and records the request metrics. The route
// pattern, not the raw path, labels the instruments to keep cardinality
// bounded.
func (r *Recorder) OnRequestEnd(ctx context.Context, state any, status int, size int64, routePattern string) {
	st, ok := state.(*requestState)
	if !ok {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", st.method),
		attribute.String("http.route", routePattern),
		attribute.Int("http.response.status_code", status),
	}

	st.span.SetName(st.method + " " + routePattern)
	st.span.SetAttributes(append(attrs, attribute.Int64("http.response.body.size", size))...)
	if status >= 500 {
		st.span.SetStatus(codes.Error, http.StatusText(status))
	}
	st.span.End()

	opt := metric.WithAttributes(attrs...)
	r.requests.Add(ctx, 1, opt)
	r.duration.Record(ctx, float64(time.Since(st.start))/float64(time.Millisecond), opt)
}
