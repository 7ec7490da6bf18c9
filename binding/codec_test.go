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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string `json:"name" msgpack:"name" toml:"name" yaml:"name"`
	Age  int    `json:"age" msgpack:"age" toml:"age" yaml:"age"`
}

func TestForContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
	}{
		{"application/json", "application/json"},
		{"application/json; charset=utf-8", "application/json"},
		{"  Application/JSON ", "application/json"},
		{"application/msgpack", "application/msgpack"},
		{"application/toml", "application/toml"},
		{"application/yaml", "application/yaml"},
		{"", "application/json"},
	}

	for _, tt := range tests {
		c, err := ForContentType(tt.header)
		require.NoError(t, err, "header %q", tt.header)
		assert.Equal(t, tt.want, c.ContentType(), "header %q", tt.header)
	}
}

func TestForContentType_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ForContentType("text/csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedContentType))
}

func TestCodecs_PersonRoundTrip(t *testing.T) {
	t.Parallel()

	original := person{Name: "Clara", Age: 42}

	for _, codec := range []Codec{JSON(), MsgPack(), TOML(), YAML()} {
		t.Run(codec.ContentType(), func(t *testing.T) {
			t.Parallel()

			data, err := codec.Encode(original)
			require.NoError(t, err)

			var decoded person
			require.NoError(t, codec.Decode(data, &decoded))
			assert.Equal(t, original, decoded)
		})
	}
}

func TestCodec_DecodeFailureIsBindError(t *testing.T) {
	t.Parallel()

	var p person
	err := JSON().Decode([]byte("{not json"), &p)
	require.Error(t, err)

	var bindErr *BindError
	require.True(t, errors.As(err, &bindErr))
	assert.Equal(t, SourceBody, bindErr.Source)
	assert.Equal(t, "application/json", bindErr.Field)
}
