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

// Package binding converts wire-level request material into typed values.
//
// Two concerns live here:
//
//   - Convert turns a raw path capture or query value into the typed value
//     its route declaration names (string, int, float, bool, uuid, ...).
//   - Codec encodes and decodes request/response bodies. JSON is the
//     default; MessagePack, TOML, and YAML codecs are provided and selected
//     by Content-Type on the server or by option on the client.
//
// All failures are reported as *BindError carrying the source (path, query,
// or body), the field involved, and the underlying cause.
package binding
