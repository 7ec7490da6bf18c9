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

// Package errors defines the failure taxonomy for dispatched requests and
// formats failures into HTTP responses.
//
// A handler signals failure by returning an error. Errors that implement
// the ErrorType interface (such as *Error from this package) choose their
// own HTTP status code; that status and the error message propagate
// verbatim to the wire. All other errors surface as 500 responses.
//
//	return nil, errors.New(http.StatusBadRequest, "bob not found")
//
// Formatters turn errors into response bodies. Simple produces plain
// {"error": ...} JSON objects; RFC9457 produces RFC 9457 problem details.
// Dispatchers default to Simple.
package errors
