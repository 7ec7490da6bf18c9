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
	"bytes"

	"github.com/BurntSushi/toml"
)

// tomlCodec serializes bodies as TOML via github.com/BurntSushi/toml.
type tomlCodec struct{}

func init() { registerCodec(tomlCodec{}) }

// TOML returns the TOML codec.
func TOML() Codec { return tomlCodec{} }

func (tomlCodec) ContentType() string { return "application/toml" }

func (tomlCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, bodyError("application/toml", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		return bodyError("application/toml", err)
	}
	return nil
}
