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
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackCodec serializes bodies as MessagePack, using
// github.com/vmihailenco/msgpack/v5 for parsing.
type msgpackCodec struct{}

func init() { registerCodec(msgpackCodec{}) }

// MsgPack returns the MessagePack codec.
func MsgPack() Codec { return msgpackCodec{} }

func (msgpackCodec) ContentType() string { return "application/msgpack" }

func (msgpackCodec) Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, bodyError("application/msgpack", err)
	}
	return data, nil
}

func (msgpackCodec) Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return bodyError("application/msgpack", err)
	}
	return nil
}
