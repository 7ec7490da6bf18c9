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

package route

// Kind identifies the declared type of a capture or query parameter.
// The zero value is String, so an unspecified kind decodes as raw text.
type Kind int

const (
	// String accepts any non-empty path component or query value verbatim.
	String Kind = iota

	// Int decodes a base-10 signed integer into int.
	Int

	// Int64 decodes a base-10 signed integer into int64.
	Int64

	// Float decodes a decimal number into float64.
	Float

	// Bool decodes "true"/"false" (and strconv.ParseBool variants) into bool.
	Bool

	// UUID decodes an RFC 4122 UUID via github.com/google/uuid.
	UUID
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case UUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// valid reports whether k is one of the declared kinds.
func (k Kind) valid() bool {
	return k >= String && k <= UUID
}
