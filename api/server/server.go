// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/logging"
)

const (
	MetricsEndpoint = "/metrics"
	RatesEndpoint   = "/rates"
	HealthEndpoint  = "/health"

	nameVar = "name"
)

var _ Rates = (*rates.Manager)(nil)

// Wrapper wraps every routed handler.
type Wrapper interface {
	WrapHandler(next http.Handler) http.Handler
}

// Rates is the part of the rates manager that the server exposes.
type Rates interface {
	Observe(name string, value float64) error
	Snapshot() map[string]rates.Reading
}

// Server maintains the HTTP router
type Server struct {
	log     logging.Logger
	config  Config
	rates   Rates
	handler http.Handler
}

// New returns a server exposing [rates] and the [metrics] handler.
func New(
	log logging.Logger,
	config Config,
	rates Rates,
	metrics http.Handler,
	wrappers ...Wrapper,
) *Server {
	s := &Server{
		log:    log,
		config: config,
		rates:  rates,
	}

	router := mux.NewRouter()
	for _, wrapper := range wrappers {
		router.Use(wrapper.WrapHandler)
	}
	router.Handle(MetricsEndpoint, metrics).Methods(http.MethodGet)
	router.HandleFunc(HealthEndpoint, s.health).Methods(http.MethodGet)
	router.HandleFunc(RatesEndpoint, s.getRates).Methods(http.MethodGet)
	router.HandleFunc(RatesEndpoint+"/{"+nameVar+"}", s.getRate).Methods(http.MethodGet)
	router.HandleFunc(RatesEndpoint+"/{"+nameVar+"}", s.observe).Methods(http.MethodPost)

	log.Info("API created",
		zap.Strings("allowedOrigins", config.AllowedOrigins),
	)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	s.handler = gziphandler.GzipHandler(corsHandler)
	return s
}

// Handler returns the root handler of this server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Dispatch serves HTTP requests until [ctx] is cancelled, then waits up to
// ShutdownTimeout for in-flight requests to complete.
func (s *Server) Dispatch(ctx context.Context) error {
	listenAddress := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("couldn't listen on %q: %w", listenAddress, err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	s.log.Info("HTTP API server listening",
		zap.Stringer("address", listener.Addr()),
	)

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("couldn't shut down HTTP API server: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("HTTP API server stopped")
	return nil
}
