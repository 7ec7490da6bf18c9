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

// Package client derives a typed HTTP client from a route.API description.
// It is the mirror of the dispatch package: the same description that
// drives server-side matching drives request construction here.
//
//	cl, err := client.New(api, "http://127.0.0.1:8080")
//	resp, err := cl.Call(ctx, "getPerson", client.Args{
//	    Captures: []any{"Paula"},
//	})
//	person, err := client.Decode[Person](resp)
//
// Argument values are checked against the endpoint's declared kinds before
// the request is sent; mismatches fail locally instead of producing a
// malformed request.
//
// Failures split into two kinds: *StatusError for non-2xx responses, with
// the server's message recoverable from its Error() text, and wrapped
// transport errors (connection refused, timeouts, decode failures) for
// everything that never produced a valid response.
package client
