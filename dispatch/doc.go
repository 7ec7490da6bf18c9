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

// Package dispatch serves HTTP requests against a route.API description.
//
// A Dispatcher binds one handler to each endpoint by name and implements
// http.Handler. Incoming requests are matched against the API's endpoints
// in declaration order; the first structural match wins. Captures, query
// parameters, and the body are decoded into typed values before the
// handler runs, and the handler's outcome (a success value or an error)
// is encoded into the response.
//
//	api := route.MustAPI(
//	    route.Get("getPerson").Path("person").Capture("name", route.String),
//	)
//
//	d := dispatch.MustNew(api)
//	d.MustHandle("getPerson", func(c *dispatch.Context) (any, error) {
//	    return Person{Name: c.String("name")}, nil
//	})
//	http.ListenAndServe(":8080", d)
//
// Failure mapping: no endpoint matches → 404; a capture, query parameter,
// or body fails to decode → 400; the body exceeds the configured cap →
// 413; the Content-Type has no codec → 415; a handler error implementing
// errors.ErrorType → its declared status, message included verbatim in
// the body; any other handler error or panic → 500. A failing request
// never affects subsequent requests.
package dispatch
