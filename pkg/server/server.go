/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

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

// Package server is an in-memory emulator of the document database service.
package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
	"github.com/unikorn-cloud/docdb/pkg/server/handler"
	"github.com/unikorn-cloud/docdb/pkg/server/middleware"
	"github.com/unikorn-cloud/docdb/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options configure the HTTP server.
type Options struct {
	// ListenAddress tells the server what to listen on.
	ListenAddress string

	// ReadTimeout defines how long before we give up on the client.
	ReadTimeout time.Duration

	// ReadHeaderTimeout defines how long before we give up on the client.
	ReadHeaderTimeout time.Duration

	// WriteTimeout defines how long we take to respond before we give up.
	WriteTimeout time.Duration

	// RequestTimeout places a hard limit on all requests lengths.
	RequestTimeout time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-listen-address", ":8081", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "server-read-header-timeout", time.Second, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.RequestTimeout, "server-request-timeout", 30*time.Second, "How long to wait of a request to be serviced.")
}

// Server is the emulator.
type Server struct {
	Options Options

	// Store holds the emulator state, a new one is created if unset.
	Store *store.Store

	// Registry collects the emulator's metrics, a new one is created
	// if unset.
	Registry *prometheus.Registry
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	if s.Store == nil {
		s.Store = store.New()
	}

	if s.Registry == nil {
		s.Registry = prometheus.NewRegistry()
	}

	metrics, err := middleware.NewMetrics(s.Registry)
	if err != nil {
		return nil, err
	}

	validator, err := middleware.NewValidator()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logging(log.FromContext(ctx).WithName("api")))
	router.Use(metrics.Middleware)

	if s.Options.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(s.Options.RequestTimeout))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.NewResourceMissingError("resource"))
	})

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Group(func(r chi.Router) {
		r.Use(validator.Middleware)

		openapi.HandlerWithOptions(handler.New(s.Store), openapi.ChiServerOptions{
			BaseRouter: r,
			ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				errors.HandleError(w, r, errors.NewInvalidRequestError().WithCause(err).WithErrorDescription(err.Error()))
			},
		})
	})

	return router, nil
}

// GetServer returns an HTTP server for the emulator.
func (s *Server) GetServer(ctx context.Context) (*http.Server, error) {
	handler, err := s.Handler(ctx)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           handler,
	}

	return server, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	server, err := s.GetServer(ctx)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		// Make sure we give the server a chance to drain in-flight requests.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown error")
		}
	}()

	logger.Info("server listening", "address", s.Options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
