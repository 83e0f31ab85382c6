// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewService returns a handler exposing every metric registered in
// [registry]. Requests to the handler are themselves instrumented in
// [registry].
func NewService(registry *prometheus.Registry) http.Handler {
	return promhttp.InstrumentMetricHandler(
		registry,
		promhttp.HandlerFor(
			registry,
			promhttp.HandlerOpts{},
		),
	)
}
