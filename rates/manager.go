// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rates

import (
	"context"
	"errors"
	"fmt"
	stdmath "math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/movingrate/movingrate/utils/buffer"
	"github.com/movingrate/movingrate/utils/logging"
	"github.com/movingrate/movingrate/utils/math"
	"github.com/movingrate/movingrate/utils/timer/mockable"
)

const initialQueueSize = 256

var (
	ErrClosed       = errors.New("manager closed")
	ErrEmptyName    = errors.New("metric name is empty")
	ErrInvalidValue = errors.New("sample value must be finite")
)

// Reading is the most recently reported state of a metric.
type Reading struct {
	Total       float64   `json:"total"`
	AverageRate float64   `json:"averageRate"`
	WindowLen   int       `json:"windowLen"`
	Timestamp   time.Time `json:"timestamp"`
}

// event is either a sample for the named metric or, when [report] is
// non-nil, a request to evaluate every metric. [report] is closed once the
// request has been handled.
type event struct {
	name   string
	value  float64
	report chan struct{}
}

// Manager owns a set of named rate trackers.
//
// Trackers are not safe for concurrent use, so every tracker is only ever
// touched by the goroutine running Dispatch. Producers hand samples over
// through a queue and readers only see the published snapshot.
type Manager struct {
	log     logging.Logger
	config  Config
	metrics *metrics
	clock   *mockable.Clock

	events    *buffer.UnboundedBlockingDeque[event]
	closeOnce sync.Once
	closed    chan struct{}

	// Only accessed by the Dispatch goroutine.
	trackers map[string]*math.SlidingWindowRate[float64]

	snapshotLock sync.RWMutex
	snapshot     map[string]Reading
}

// NewManager returns a manager tracking the metrics listed in [config]. If
// [clock] is nil the wall clock is used.
func NewManager(
	log logging.Logger,
	namespace string,
	registerer prometheus.Registerer,
	config Config,
	clock *mockable.Clock,
) (*Manager, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("invalid rates config: %w", err)
	}
	metrics, err := newMetrics(namespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register rates metrics: %w", err)
	}
	if clock == nil {
		clock = &mockable.Clock{}
	}

	m := &Manager{
		log:      log,
		config:   config,
		metrics:  metrics,
		clock:    clock,
		events:   buffer.NewUnboundedBlockingDeque[event](initialQueueSize),
		closed:   make(chan struct{}),
		trackers: make(map[string]*math.SlidingWindowRate[float64], len(config.Metrics)),
		snapshot: make(map[string]Reading, len(config.Metrics)),
	}

	now := clock.Time()
	for _, name := range config.Metrics {
		m.trackers[name] = m.newTracker(now)
	}
	return m, nil
}

// Observe queues [value] as a sample of the metric [name]. The sample is
// timestamped when it is dispatched.
func (m *Manager) Observe(name string, value float64) error {
	switch {
	case name == "":
		return ErrEmptyName
	case stdmath.IsNaN(value) || stdmath.IsInf(value, 0):
		return fmt.Errorf("%w: %s=%f", ErrInvalidValue, name, value)
	}
	if !m.events.PushRight(event{name: name, value: value}) {
		return ErrClosed
	}
	return nil
}

// Report queues an evaluation of every metric without waiting for it.
func (m *Manager) Report() error {
	if !m.events.PushRight(event{report: make(chan struct{})}) {
		return ErrClosed
	}
	return nil
}

// ReportNow evaluates every metric once all previously observed samples have
// been dispatched, and returns the resulting snapshot.
func (m *Manager) ReportNow(ctx context.Context) (map[string]Reading, error) {
	done := make(chan struct{})
	if !m.events.PushRight(event{report: done}) {
		return nil, ErrClosed
	}

	select {
	case <-done:
		return m.Snapshot(), nil
	case <-m.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Snapshot returns the readings published by the most recent report.
func (m *Manager) Snapshot() map[string]Reading {
	m.snapshotLock.RLock()
	defer m.snapshotLock.RUnlock()

	return maps.Clone(m.snapshot)
}

// Dispatch handles queued events until [ctx] is cancelled or the manager is
// stopped. A report is queued every ReportFrequency.
func (m *Manager) Dispatch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go m.tick(ctx)

	m.log.Info("dispatching rate events",
		zap.Duration("interval", m.config.Interval),
		zap.Int("maxSize", m.config.MaxSize),
		zap.Duration("reportFrequency", m.config.ReportFrequency),
	)
	for {
		ev, ok := m.events.PopLeft()
		if !ok {
			m.log.Info("stopped dispatching rate events")
			return nil
		}
		if ev.report != nil {
			m.report()
			close(ev.report)
			continue
		}
		m.addSample(ev.name, ev.value)
	}
}

// Stop drops every queued event and causes Dispatch to return.
func (m *Manager) Stop() {
	m.closeOnce.Do(func() {
		m.events.Close()
		close(m.closed)
	})
}

func (m *Manager) tick(ctx context.Context) {
	ticker := time.NewTicker(m.config.ReportFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.Report(); err != nil {
				return
			}
		case <-m.closed:
			return
		case <-ctx.Done():
			m.Stop()
			return
		}
	}
}

func (m *Manager) newTracker(now time.Time) *math.SlidingWindowRate[float64] {
	return math.NewSlidingWindowRate[float64](m.config.Interval, m.config.MaxSize, now)
}

func (m *Manager) addSample(name string, value float64) {
	now := m.clock.Time()
	tracker, ok := m.trackers[name]
	if !ok {
		m.log.Debug("tracking new metric",
			zap.String("metric", name),
		)
		tracker = m.newTracker(now)
		m.trackers[name] = tracker
	}
	// A total that overflows can never be reported again.
	if total := tracker.Total() + value; stdmath.IsInf(total, 0) {
		m.log.Warn("dropping sample",
			zap.String("metric", name),
			zap.Float64("value", value),
			zap.Float64("total", tracker.Total()),
		)
		m.metrics.droppedSamples.WithLabelValues(name).Inc()
		return
	}
	tracker.AddSample(value, now)
	m.metrics.samples.WithLabelValues(name).Inc()
}

func (m *Manager) report() {
	now := m.clock.Time()
	names := maps.Keys(m.trackers)
	slices.Sort(names)

	snapshot := make(map[string]Reading, len(names))
	for _, name := range names {
		tracker := m.trackers[name]
		reading := Reading{
			AverageRate: tracker.Average(now),
			Total:       tracker.Total(),
			WindowLen:   tracker.Len(),
			Timestamp:   now,
		}
		snapshot[name] = reading
		m.metrics.observe(name, reading)

		m.log.Info("moving data",
			zap.String("metric", name),
			zap.Float64("total", reading.Total),
			zap.Float64("averageRate", reading.AverageRate),
			zap.Int("window", reading.WindowLen),
			zap.Duration("interval", m.config.Interval),
		)
	}

	m.snapshotLock.Lock()
	m.snapshot = snapshot
	m.snapshotLock.Unlock()
}
