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
	"gopkg.in/yaml.v3"
)

// yamlCodec serializes bodies as YAML via gopkg.in/yaml.v3.
type yamlCodec struct{}

func init() { registerCodec(yamlCodec{}) }

// YAML returns the YAML codec.
func YAML() Codec { return yamlCodec{} }

func (yamlCodec) ContentType() string { return "application/yaml" }

func (yamlCodec) Encode(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, bodyError("application/yaml", err)
	}
	return data, nil
}

func (yamlCodec) Decode(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return bodyError("application/yaml", err)
	}
	return nil
}
