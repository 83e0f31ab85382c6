// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rates

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/movingrate/movingrate/utils/wrappers"
)

const metricLabel = "metric"

type metrics struct {
	total          *prometheus.GaugeVec
	averageRate    *prometheus.GaugeVec
	windowSize     *prometheus.GaugeVec
	samples        *prometheus.CounterVec
	droppedSamples *prometheus.CounterVec
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		total: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "total",
				Help:      "sum of every sample ever observed",
			},
			[]string{metricLabel},
		),
		averageRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "average_rate",
				Help:      "average per second rate of the samples observed in the trailing window",
			},
			[]string{metricLabel},
		),
		windowSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "window_samples",
				Help:      "number of samples retained in the trailing window",
			},
			[]string{metricLabel},
		),
		samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "samples",
				Help:      "number of samples observed",
			},
			[]string{metricLabel},
		),
		droppedSamples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_samples",
				Help:      "number of samples dropped because the total would overflow",
			},
			[]string{metricLabel},
		),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.total),
		registerer.Register(m.averageRate),
		registerer.Register(m.windowSize),
		registerer.Register(m.samples),
		registerer.Register(m.droppedSamples),
	)
	return m, errs.Err
}

func (m *metrics) observe(name string, reading Reading) {
	m.total.WithLabelValues(name).Set(reading.Total)
	m.averageRate.WithLabelValues(name).Set(reading.AverageRate)
	m.windowSize.WithLabelValues(name).Set(float64(reading.WindowLen))
}
