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

package harness

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})
}

func closeNow(t *testing.T, s *Server) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}

func TestStart_ServesAfterReturn(t *testing.T) {
	s, err := Start(okHandler())
	require.NoError(t, err)
	defer closeNow(t, s)

	// Start returned, so the server must already accept requests. No
	// retry loop here on purpose.
	resp, err := http.Get(s.URL())
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestStart_SequentialInvocationsReleasePort(t *testing.T) {
	// Repeated start/stop cycles must leave nothing behind: after Close
	// the port is free to rebind.
	for i := 0; i < 20; i++ {
		s, err := Start(okHandler())
		require.NoError(t, err)

		addr := s.Addr()
		closeNow(t, s)

		ln, err := net.Listen("tcp", addr)
		require.NoError(t, err, "port still held after Close (iteration %d)", i)
		require.NoError(t, ln.Close())
	}
}

func TestStart_ConcurrentServersGetDistinctPorts(t *testing.T) {
	const n = 8

	servers := make([]*Server, n)
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			servers[i], errs[i] = Start(okHandler())
		}(i)
	}
	wg.Wait()

	ports := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, ports[servers[i].Port()], "port %d assigned twice", servers[i].Port())
		ports[servers[i].Port()] = true
		closeNow(t, servers[i])
	}
}

func TestServer_StateTransitions(t *testing.T) {
	s, err := Start(okHandler())
	require.NoError(t, err)

	state := s.State()
	assert.Contains(t, []State{StateReady, StateServing}, state)

	closeNow(t, s)
	assert.Equal(t, StateStopped, s.State())
}

func TestClose_Idempotent(t *testing.T) {
	s, err := Start(okHandler())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx), "second Close returns the first result")
	require.NoError(t, s.Close(ctx))
}

func TestClose_ForcesSlowConnections(t *testing.T) {
	block := make(chan struct{})
	s, err := Start(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	require.NoError(t, err)

	// Park a request inside the handler so graceful shutdown cannot
	// complete, then close with a short deadline.
	go func() {
		resp, err := http.Get(s.URL())
		if err == nil {
			resp.Body.Close()
		}
	}()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = s.Close(ctx)
	close(block)

	// Graceful shutdown timed out, so Close reports it, but the serve
	// loop has still confirmed its exit.
	require.Error(t, err)
	assert.Equal(t, StateStopped, s.State())
}

func TestRun_CleansUpViaTestCleanup(t *testing.T) {
	var addr string

	// Run a sub-test so its cleanup fires before we probe the port.
	t.Run("inner", func(t *testing.T) {
		s := Run(t, okHandler())
		addr = s.Addr()

		resp, err := http.Get(s.URL())
		require.NoError(t, err)
		resp.Body.Close()
	})

	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err, "listener must be released after the sub-test's cleanup")
	require.NoError(t, ln.Close())
}

func TestStart_H2C(t *testing.T) {
	s, err := Start(okHandler(), WithH2C())
	require.NoError(t, err)
	defer closeNow(t, s)

	// Plain HTTP/1.1 must keep working through the h2c wrapper.
	resp, err := http.Get(s.URL())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStart_CustomTimeouts(t *testing.T) {
	s, err := Start(okHandler(), WithServerTimeouts(
		time.Second, 2*time.Second, 3*time.Second, 4*time.Second,
	))
	require.NoError(t, err)
	defer closeNow(t, s)

	resp, err := http.Get(s.URL())
	require.NoError(t, err)
	resp.Body.Close()
}
