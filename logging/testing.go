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

package logging

import (
	"io"
	"log/slog"
)

// NewTestLogger creates a silent logger for tests. All output is discarded,
// keeping test output clean.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// NewCaptureLogger creates a JSON logger that writes to the provided
// writer, for tests that assert on log output.
//
// Example:
//
//	var buf bytes.Buffer
//	logger := logging.NewCaptureLogger(&buf)
//	// ... exercise code ...
//	require.Contains(t, buf.String(), "request complete")
func NewCaptureLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}
