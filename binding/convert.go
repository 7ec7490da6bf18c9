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

package binding

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/aycanirican/servant/route"
)

// Convert parses a raw string value into the typed value the given kind
// names. The returned value's dynamic type is:
//
//	route.String → string
//	route.Int    → int
//	route.Int64  → int64
//	route.Float  → float64
//	route.Bool   → bool
//	route.UUID   → uuid.UUID
//
// Parse failures return a *BindError with the given source and field so the
// caller can surface a client-error response.
func Convert(source Source, field, value string, kind route.Kind) (any, error) {
	v, err := convert(value, kind)
	if err != nil {
		return nil, &BindError{Source: source, Field: field, Value: value, Err: err}
	}
	return v, nil
}

func convert(value string, kind route.Kind) (any, error) {
	switch kind {
	case route.String:
		return value, nil

	case route.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return n, nil

	case route.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}
		return n, nil

	case route.Float:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float: %w", err)
		}
		return f, nil

	case route.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool: %w", err)
		}
		return b, nil

	case route.UUID:
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid: %w", err)
		}
		return id, nil

	default:
		return nil, fmt.Errorf("unsupported kind %v", kind)
	}
}

// Format renders a typed value back into its wire representation. It is the
// inverse of Convert and is used by the client when substituting captures
// and query parameters. The value must match the declared kind exactly; no
// implicit numeric conversions are performed.
func Format(value any, kind route.Kind) (string, error) {
	switch kind {
	case route.String:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case route.Int:
		if n, ok := value.(int); ok {
			return strconv.Itoa(n), nil
		}

	case route.Int64:
		if n, ok := value.(int64); ok {
			return strconv.FormatInt(n, 10), nil
		}

	case route.Float:
		if f, ok := value.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}

	case route.Bool:
		if b, ok := value.(bool); ok {
			return strconv.FormatBool(b), nil
		}

	case route.UUID:
		if id, ok := value.(uuid.UUID); ok {
			return id.String(), nil
		}
	}

	return "", fmt.Errorf("binding: value %T does not match declared kind %v", value, kind)
}
