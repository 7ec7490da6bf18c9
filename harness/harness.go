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

// Package harness starts HTTP servers on kernel-assigned ephemeral ports
// for tests. Each server owns its listener exclusively for the lifetime of
// one invocation, so sequential or concurrent harnesses never collide.
//
// Startup and teardown rendezvous exactly twice with the serve goroutine:
// Start returns only after the readiness cell (a one-shot closed channel)
// reports the serve loop is live, and Close returns only after the loop
// has confirmed its exit. Run wires Close into t.Cleanup so teardown
// happens even when the test body fails or panics.
//
//	srv := harness.Run(t, dispatcher)
//	resp, err := http.Get(srv.URL() + "/person/Paula")
package harness

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// State is the harness lifecycle state.
type State int32

const (
	// StateNotStarted is the zero state before Start.
	StateNotStarted State = iota
	// StateStarting means the listener is being bound.
	StateStarting
	// StateReady means the socket is bound and the serve goroutine has
	// signaled readiness.
	StateReady
	// StateServing means the serve loop is accepting requests.
	StateServing
	// StateStopping means Close has begun teardown.
	StateStopping
	// StateStopped means the serve loop has confirmed its exit.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateStarting:
		return "starting"
	case StateReady:
		return "ready"
	case StateServing:
		return "serving"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Option defines functional options for harness configuration.
type Option func(*Server)

// WithH2C enables HTTP/2 cleartext support on the test server.
func WithH2C() Option {
	return func(s *Server) { s.enableH2C = true }
}

// WithServerTimeouts sets the HTTP server timeouts.
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(s *Server) {
		s.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 10 * time.Second,
		read:       30 * time.Second,
		write:      60 * time.Second,
		idle:       120 * time.Second,
	}
}

// Server is one running test server bound to an ephemeral local port.
type Server struct {
	ln        net.Listener
	srv       *http.Server
	ready     chan struct{} // readiness cell: closed exactly once
	done      chan error    // serve loop exit, carries the serve error
	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
	enableH2C bool
	timeouts  *serverTimeouts
}

// Start binds 127.0.0.1:0, starts serving h on a background goroutine, and
// returns once the serve loop has signaled readiness. The kernel assigns
// the port, so concurrent harnesses cannot contend for an address.
func Start(h http.Handler, opts ...Option) (*Server, error) {
	s := &Server{
		ready: make(chan struct{}),
		done:  make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(int32(StateStarting))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		s.state.Store(int32(StateStopped))
		return nil, fmt.Errorf("harness: binding listener: %w", err)
	}
	s.ln = ln

	handler := h
	if s.enableH2C {
		handler = h2c.NewHandler(h, &http2.Server{})
	}

	timeouts := s.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	s.srv = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	go func() {
		// Readiness cell: one writer, any number of blocked readers.
		s.state.Store(int32(StateReady))
		close(s.ready)

		s.state.Store(int32(StateServing))
		err := s.srv.Serve(s.ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
		close(s.done)
	}()

	<-s.ready
	return s, nil
}

// Run starts a server and registers Close in t.Cleanup, guaranteeing
// teardown regardless of how the test body exits.
func Run(t testing.TB, h http.Handler, opts ...Option) *Server {
	t.Helper()

	s, err := Start(h, opts...)
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(ctx); err != nil {
			t.Errorf("harness: close: %v", err)
		}
	})
	return s
}

// Addr returns the bound address, e.g. "127.0.0.1:49152".
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Port returns the kernel-assigned port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the server's base URL, e.g. "http://127.0.0.1:49152".
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Close shuts the server down and blocks until the serve loop has
// confirmed its exit. Graceful shutdown is attempted within ctx; when ctx
// expires, remaining connections are closed forcefully. Close is
// idempotent: later calls return the first call's result.
func (s *Server) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateStopping))

		err := s.srv.Shutdown(ctx)
		if err != nil {
			// Context expired mid-shutdown; force remaining
			// connections closed so the serve loop exits.
			err = errors.Join(err, s.srv.Close())
		}

		// Wait for the serve loop's confirmed exit. This must never be
		// skipped: a dangling serve goroutine would outlive the test.
		serveErr := <-s.done

		s.state.Store(int32(StateStopped))
		s.closeErr = errors.Join(err, serveErr)
	})
	return s.closeErr
}
