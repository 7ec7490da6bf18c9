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

// Package route provides declarative, immutable descriptions of HTTP API
// surfaces. A description is a list of endpoints, each an ordered chain of
// static path segments, typed captures, typed optional query parameters, an
// optional request body, and an HTTP verb.
//
// Descriptions are built once at startup and shared by the server-side
// dispatcher and the derived typed client:
//
//	api := route.MustAPI(
//	    route.Get("getPerson").Path("person").Capture("name", route.String),
//	    route.Post("createPerson").Path("person").Body(),
//	)
//
// Endpoints are matched in declaration order; the first endpoint whose
// method, static segments, and capture arity fit the request wins. Later
// endpoints are never consulted once an earlier one matches structurally,
// even if decoding subsequently fails.
package route
