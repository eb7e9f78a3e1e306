/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server exposes the conversion engine over HTTP.
package server

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"vitess.io/charconv/go/charconv/codec"
	"vitess.io/charconv/go/log"
	"vitess.io/charconv/go/viperutil/debug"
)

const (
	defaultMaxBodySize     = 16 << 20
	defaultShutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Addr is the TCP listen address, e.g. ":8080".
	Addr string
	// MaxBodySize limits request bodies. Defaults to 16 MiB.
	MaxBodySize int64
	// DefaultPolicy applies when a request does not name one.
	DefaultPolicy codec.ErrorPolicy
	// CORSOrigins, if set, enables CORS for the listed origins.
	CORSOrigins []string
	// DisableCompression turns off gzip/deflate of responses.
	DisableCompression bool
	// AccessLog, if set, receives one line per request in the Apache
	// combined log format.
	AccessLog io.Writer
	// ShutdownTimeout bounds how long Serve waits for in-flight requests.
	// Defaults to 10 seconds.
	ShutdownTimeout time.Duration
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Config, if set, is rendered at /debug/config.
	Config *viper.Viper
}

// Server is the HTTP conversion service.
type Server struct {
	opts    Options
	router  *mux.Router
	handler http.Handler

	ready chan struct{}
	addr  net.Addr
}

// New returns a Server with all routes installed.
func New(opts Options) *Server {
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		opts:   opts,
		router: mux.NewRouter(),
		ready:  make(chan struct{}),
	}

	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.Handle("/debug/vars", expvar.Handler()).Methods(http.MethodGet)
	if opts.Config != nil {
		s.router.HandleFunc("/debug/config", debug.HandlerFunc(opts.Config)).Methods(http.MethodGet)
	}

	api := s.router.NewRoute().Subrouter()
	api.HandleFunc("/convert", s.convert).Methods(http.MethodPost).Name("Convert")
	api.HandleFunc("/detect", s.detect).Methods(http.MethodPost).Name("Detect")
	api.HandleFunc("/validate", s.validate).Methods(http.MethodPost).Name("Validate")
	api.HandleFunc("/encodings", s.encodings).Methods(http.MethodGet).Name("Encodings")

	if len(opts.CORSOrigins) > 0 {
		s.router.Use(handlers.CORS(handlers.AllowedOrigins(opts.CORSOrigins)))
	}

	// Middlewares run in order of addition: in-flight tracking, recovery,
	// then compression.
	middlewares := []mux.MiddlewareFunc{
		trackInFlight,
		handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}), handlers.PrintRecoveryStack(true)),
	}
	if !opts.DisableCompression {
		middlewares = append(middlewares, handlers.CompressHandler)
	}
	api.Use(middlewares...)

	s.handler = s.router
	if opts.AccessLog != nil {
		s.handler = handlers.CombinedLoggingHandler(opts.AccessLog, s.router)
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Ready returns a channel that is closed once Serve is accepting
// connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the resolved listen address. It is only valid after Ready
// is closed.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	s.addr = listener.Addr()
	close(s.ready)

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.InfoS("charconv server listening", "address", s.addr.String())

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case err := <-serveDone:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WarnS("charconv server shutdown", "error", err)
		return err
	}
	<-serveDone
	log.InfoS("charconv server stopped", "address", s.addr.String())
	return nil
}

type recoveryLogger struct{}

func (recoveryLogger) Println(args ...any) {
	log.Errorf("recovered from panic: %s", fmt.Sprint(args...))
}
