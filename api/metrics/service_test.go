// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestServiceExposesRegisteredMetrics(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "test",
		Name:      "average_rate",
		Help:      "help",
	})
	require.NoError(registry.Register(gauge))
	gauge.Set(20)

	handler := NewService(registry)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(err)
	require.Contains(string(body), "test_average_rate 20")
	require.Contains(string(body), "promhttp_metric_handler_requests_in_flight")
}
