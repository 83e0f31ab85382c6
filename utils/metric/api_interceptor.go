// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/movingrate/movingrate/utils/wrappers"
)

const unknownRoute = "unknown"

var _ APIInterceptor = (*apiInterceptor)(nil)

// APIInterceptor records the duration and outcome of every API request.
type APIInterceptor interface {
	// WrapHandler is usable as a gorilla/mux middleware.
	WrapHandler(next http.Handler) http.Handler
}

type apiInterceptor struct {
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

func NewAPIInterceptor(namespace string, registerer prometheus.Registerer) (APIInterceptor, error) {
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_ms",
			Help:      "duration of API requests in milliseconds",
			Buckets:   MillisecondsHTTPBuckets,
		},
		[]string{"route", "method"},
	)
	requestErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_error_count",
			Help:      "number of API requests that failed",
		},
		[]string{"route", "method", "code"},
	)

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(requestDuration),
		registerer.Register(requestErrors),
	)
	return &apiInterceptor{
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}, errs.Err
}

func (a *apiInterceptor) WrapHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := unknownRoute
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		duration := time.Since(start)
		a.requestDuration.WithLabelValues(route, r.Method).Observe(float64(duration) / float64(time.Millisecond))
		if sw.status >= http.StatusBadRequest {
			a.requestErrors.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the wrapped writer when it supports flushing.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
