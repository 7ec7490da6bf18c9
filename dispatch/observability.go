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
	"net/http"
)

// ObservabilityRecorder receives request lifecycle events. Implementations
// integrate tracing and metrics without the dispatcher depending on any
// particular backend; the telemetry package provides an OpenTelemetry
// implementation.
//
// OnRequestStart runs before route matching and may enrich the request
// context (e.g. with a span). The returned state value is handed back to
// OnRequestEnd unchanged.
type ObservabilityRecorder interface {
	// OnRequestStart begins observing a request.
	OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any)

	// OnRequestEnd finishes observing a request. routePattern is the
	// matched endpoint's pattern, or "_not_found" when nothing matched.
	OnRequestEnd(ctx context.Context, state any, status int, size int64, routePattern string)
}

// notFoundPattern is the sentinel route pattern reported for unmatched
// requests.
const notFoundPattern = "_not_found"
