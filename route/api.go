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

import (
	"fmt"
)

// API is an ordered, immutable list of endpoints describing a complete API
// surface. Declaration order is match precedence: dispatchers try endpoints
// in order and the first structural match consumes the request.
//
// An API is safe for concurrent use; it is never modified after NewAPI
// returns.
type API struct {
	endpoints []*Endpoint
	byName    map[string]*Endpoint
}

// NewAPI builds an API from the given endpoint builders. It validates every
// builder and rejects duplicate endpoint names. Configuration errors are
// reported at startup, not at request time.
//
// Example:
//
//	api, err := route.NewAPI(
//	    route.Get("getPerson").Path("person").Capture("name", route.String),
//	    route.Post("createPerson").Path("person").Body(),
//	)
func NewAPI(builders ...*Builder) (*API, error) {
	api := &API{
		endpoints: make([]*Endpoint, 0, len(builders)),
		byName:    make(map[string]*Endpoint, len(builders)),
	}

	for _, b := range builders {
		ep, err := b.build()
		if err != nil {
			return nil, err
		}
		if _, exists := api.byName[ep.name]; exists {
			return nil, fmt.Errorf("route: duplicate endpoint name %q", ep.name)
		}
		api.endpoints = append(api.endpoints, ep)
		api.byName[ep.name] = ep
	}

	return api, nil
}

// MustAPI is NewAPI that panics on invalid descriptions. Intended for
// package-level API declarations where a bad description should fail fast.
func MustAPI(builders ...*Builder) *API {
	api, err := NewAPI(builders...)
	if err != nil {
		panic(fmt.Sprintf("route.MustAPI: %v", err))
	}
	return api
}

// Endpoints returns the endpoints in declaration order. The returned slice
// is shared; callers must not modify it.
func (a *API) Endpoints() []*Endpoint {
	return a.endpoints
}

// Lookup returns the endpoint with the given name.
func (a *API) Lookup(name string) (*Endpoint, bool) {
	ep, ok := a.byName[name]
	return ep, ok
}

// Len returns the number of endpoints.
func (a *API) Len() int {
	return len(a.endpoints)
}
