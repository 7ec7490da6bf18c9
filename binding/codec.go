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
	"strings"
)

// Codec serializes request and response bodies in one wire format.
// Implementations must be safe for concurrent use.
type Codec interface {
	// ContentType returns the MIME type the codec produces and consumes,
	// without parameters (e.g. "application/json").
	ContentType() string

	// Encode serializes v into the codec's wire format.
	Encode(v any) ([]byte, error)

	// Decode deserializes data into v, which must be a pointer.
	Decode(data []byte, v any) error
}

// codecs is the package registry, keyed by bare content type. Populated at
// init time by the codec implementations; never mutated afterwards.
var codecs = map[string]Codec{}

func registerCodec(c Codec) {
	codecs[c.ContentType()] = c
}

// ForContentType returns the codec registered for the given Content-Type
// header value. Parameters (charset and the like) are ignored. An empty
// content type selects JSON, matching the common client default.
func ForContentType(contentType string) (Codec, error) {
	ct := strings.TrimSpace(contentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" {
		return JSON(), nil
	}
	c, ok := codecs[strings.ToLower(ct)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return c, nil
}

// bodyError wraps a codec failure as a BindError attributed to the body.
func bodyError(contentType string, err error) error {
	return &BindError{Source: SourceBody, Field: contentType, Err: err}
}
