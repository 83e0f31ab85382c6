// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rates

import (
	"context"
	stdmath "math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"

	"github.com/movingrate/movingrate/utils/logging"
	"github.com/movingrate/movingrate/utils/timer/mockable"
)

const testNamespace = "test"

var testConfig = Config{
	Interval:        10 * time.Second,
	MaxSize:         1000,
	ReportFrequency: time.Hour,
	Metrics:         []string{"bytes"},
}

type testManager struct {
	*Manager
	clock    *mockable.Clock
	registry *prometheus.Registry
	done     chan error
}

func newTestManager(t *testing.T, config Config) *testManager {
	require := require.New(t)

	clock := &mockable.Clock{}
	clock.Set(time.Unix(1_700_000_000, 0))

	registry := prometheus.NewRegistry()
	m, err := NewManager(logging.NoLog{}, testNamespace, registry, config, clock)
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Dispatch(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		m.Stop()
		<-done
	})

	return &testManager{
		Manager:  m,
		clock:    clock,
		registry: registry,
		done:     done,
	}
}

func gatherValue(t *testing.T, registry *prometheus.Registry, name string, metric string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if !hasLabel(m, metricLabel, metric) {
				continue
			}
			switch {
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			}
		}
	}
	require.FailNow(t, "metric not found", "%s{%s=%q}", name, metricLabel, metric)
	return 0
}

func hasLabel(m *dto.Metric, name string, value string) bool {
	for _, label := range m.GetLabel() {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

func TestNewManagerInvalidConfig(t *testing.T) {
	config := testConfig
	config.Interval = 0

	_, err := NewManager(logging.NoLog{}, testNamespace, prometheus.NewRegistry(), config, nil)
	require.ErrorIs(t, err, ErrNonPositiveInterval)
}

func TestNewManagerDuplicateRegistration(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	_, err := NewManager(logging.NoLog{}, testNamespace, registry, testConfig, nil)
	require.NoError(err)

	_, err = NewManager(logging.NoLog{}, testNamespace, registry, testConfig, nil)
	require.Error(err)
}

func TestManagerReportsPreregisteredMetrics(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)
	require.Empty(m.Snapshot())

	snapshot, err := m.ReportNow(context.Background())
	require.NoError(err)
	require.Equal(map[string]Reading{
		"bytes": {Timestamp: m.clock.Time()},
	}, snapshot)
}

func TestManagerAverages(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)
	ctx := context.Background()

	require.NoError(m.Observe("bytes", 100))
	snapshot, err := m.ReportNow(ctx)
	require.NoError(err)
	// No time has elapsed since the tracker was created.
	require.Equal(Reading{
		Total:     100,
		WindowLen: 1,
		Timestamp: m.clock.Time(),
	}, snapshot["bytes"])

	m.clock.Advance(5 * time.Second)
	snapshot, err = m.ReportNow(ctx)
	require.NoError(err)
	require.Equal(20.0, snapshot["bytes"].AverageRate)

	require.Equal(100.0, gatherValue(t, m.registry, "test_total", "bytes"))
	require.Equal(20.0, gatherValue(t, m.registry, "test_average_rate", "bytes"))
	require.Equal(1.0, gatherValue(t, m.registry, "test_window_samples", "bytes"))
	require.Equal(1.0, gatherValue(t, m.registry, "test_samples", "bytes"))

	m.clock.Advance(15 * time.Second)
	snapshot, err = m.ReportNow(ctx)
	require.NoError(err)
	require.Equal(Reading{
		Total:     100,
		Timestamp: m.clock.Time(),
	}, snapshot["bytes"])
}

func TestManagerTracksNewMetrics(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)

	for i := 0; i < 4; i++ {
		require.NoError(m.Observe("ops", 1))
	}
	_, err := m.ReportNow(context.Background())
	require.NoError(err)

	m.clock.Advance(2 * time.Second)
	snapshot, err := m.ReportNow(context.Background())
	require.NoError(err)
	require.Len(snapshot, 2)
	require.Equal(4.0, snapshot["ops"].Total)
	require.Equal(2.0, snapshot["ops"].AverageRate)
	require.Equal(4.0, gatherValue(t, m.registry, "test_samples", "ops"))
}

func TestManagerSizeBound(t *testing.T) {
	require := require.New(t)

	config := testConfig
	config.MaxSize = 2
	m := newTestManager(t, config)

	for i := 0; i < 5; i++ {
		require.NoError(m.Observe("bytes", 5))
	}
	snapshot, err := m.ReportNow(context.Background())
	require.NoError(err)
	require.Equal(25.0, snapshot["bytes"].Total)
	require.Equal(2, snapshot["bytes"].WindowLen)
}

func TestManagerObserveErrors(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)

	require.ErrorIs(m.Observe("", 1), ErrEmptyName)
	require.ErrorIs(m.Observe("bytes", stdmath.NaN()), ErrInvalidValue)
	require.ErrorIs(m.Observe("bytes", stdmath.Inf(1)), ErrInvalidValue)
}

func TestManagerDropsOverflowingSamples(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)

	require.NoError(m.Observe("bytes", 1.7e308))
	require.NoError(m.Observe("bytes", 1.7e308))
	require.NoError(m.Observe("bytes", -1.7e308))
	require.NoError(m.Observe("bytes", -1.7e308))
	require.NoError(m.Observe("bytes", -1.7e308))
	m.clock.Advance(5 * time.Second)
	snapshot, err := m.ReportNow(context.Background())
	require.NoError(err)

	reading := snapshot["bytes"]
	require.Equal(-1.7e308, reading.Total)
	require.Equal(3, reading.WindowLen)
	require.False(stdmath.IsInf(reading.AverageRate, 0))
	require.Equal(3.0, gatherValue(t, m.registry, "test_samples", "bytes"))
	require.Equal(2.0, gatherValue(t, m.registry, "test_dropped_samples", "bytes"))
}

func TestManagerStop(t *testing.T) {
	require := require.New(t)

	m := newTestManager(t, testConfig)
	m.Stop()
	require.NoError(<-m.done)
	// Let the cleanup observe a finished Dispatch as well.
	m.done <- nil

	require.ErrorIs(m.Observe("bytes", 1), ErrClosed)
	require.ErrorIs(m.Report(), ErrClosed)
	_, err := m.ReportNow(context.Background())
	require.ErrorIs(err, ErrClosed)

	// Stopping twice is a no-op.
	m.Stop()
}

func TestManagerDispatchStopsOnCancel(t *testing.T) {
	require := require.New(t)

	m, err := NewManager(logging.NoLog{}, testNamespace, prometheus.NewRegistry(), testConfig, nil)
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Dispatch(ctx)
	}()

	cancel()
	require.NoError(<-done)
	require.ErrorIs(m.Observe("bytes", 1), ErrClosed)
}

func TestManagerPeriodicReport(t *testing.T) {
	require := require.New(t)

	config := testConfig
	config.ReportFrequency = 10 * time.Millisecond
	m := newTestManager(t, config)

	require.NoError(m.Observe("bytes", 1))
	require.Eventually(func() bool {
		return m.Snapshot()["bytes"].Total == 1
	}, 5*time.Second, 5*time.Millisecond)
}

func TestConfigVerify(t *testing.T) {
	tests := map[string]struct {
		config      Config
		expectedErr error
	}{
		"default": {
			config: DefaultConfig,
		},
		"non-positive interval": {
			config: Config{
				Interval:        -time.Second,
				MaxSize:         1,
				ReportFrequency: time.Second,
			},
			expectedErr: ErrNonPositiveInterval,
		},
		"non-positive max size": {
			config: Config{
				Interval:        time.Second,
				ReportFrequency: time.Second,
			},
			expectedErr: ErrNonPositiveMaxSize,
		},
		"non-positive report frequency": {
			config: Config{
				Interval: time.Second,
				MaxSize:  1,
			},
			expectedErr: ErrNonPositiveReportFrequency,
		},
		"empty metric name": {
			config: Config{
				Interval:        time.Second,
				MaxSize:         1,
				ReportFrequency: time.Second,
				Metrics:         []string{""},
			},
			expectedErr: ErrEmptyName,
		},
		"duplicate metric": {
			config: Config{
				Interval:        time.Second,
				MaxSize:         1,
				ReportFrequency: time.Second,
				Metrics:         []string{"bytes", "bytes"},
			},
			expectedErr: ErrDuplicateMetric,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.config.Verify()
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
