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

// Package logging configures structured slog loggers for servers built on
// the dispatch package. It standardizes handler selection, level, and the
// service attributes attached to every entry.
//
//	logger := logging.New(
//	    logging.WithTextHandler(),
//	    logging.WithLevel(slog.LevelDebug),
//	    logging.WithServiceName("people-api"),
//	)
package logging

import (
	"io"
	"log/slog"
	"os"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// Option configures logger construction.
type Option func(*config)

type config struct {
	handlerType    HandlerType
	output         io.Writer
	level          slog.Level
	serviceName    string
	serviceVersion string
	addSource      bool
}

// WithHandlerType sets the logging handler type.
func WithHandlerType(t HandlerType) Option {
	return func(c *config) { c.handlerType = t }
}

// WithJSONHandler uses JSON structured logging (default).
func WithJSONHandler() Option {
	return WithHandlerType(JSONHandler)
}

// WithTextHandler uses text key=value logging.
func WithTextHandler() Option {
	return WithHandlerType(TextHandler)
}

// WithOutput sets the output writer. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithServiceName attaches a service attribute to every entry.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion attaches a version attribute to every entry.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithSource includes source file and line in log entries.
func WithSource() Option {
	return func(c *config) { c.addSource = true }
}

// New builds a slog.Logger from the given options.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		handlerType: JSONHandler,
		output:      os.Stderr,
		level:       slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	}

	var handler slog.Handler
	switch cfg.handlerType {
	case TextHandler:
		handler = slog.NewTextHandler(cfg.output, hopts)
	default:
		handler = slog.NewJSONHandler(cfg.output, hopts)
	}

	logger := slog.New(handler)
	if cfg.serviceName != "" {
		logger = logger.With(slog.String("service", cfg.serviceName))
	}
	if cfg.serviceVersion != "" {
		logger = logger.With(slog.String("version", cfg.serviceVersion))
	}
	return logger
}
