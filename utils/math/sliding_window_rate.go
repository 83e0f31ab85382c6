// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"math"
	"time"

	"github.com/movingrate/movingrate/utils/buffer"
)

// DefaultMaxSize bounds the number of samples a SlidingWindowRate retains.
// At 16 bytes per sample this caps a window at roughly half a megabyte.
const DefaultMaxSize = math.MaxInt16

// Initial capacity of the sample buffer. The buffer grows on demand up to
// the configured max size.
const initialWindowSize = 16

var _ Rate[int64] = (*SlidingWindowRate[int64])(nil)

type sample[T Number] struct {
	timestamp time.Time
	value     T
}

// SlidingWindowRate reports the cumulative sum of the provided values along
// with their average rate over the trailing [interval].
//
// Memory is bounded by [maxSize] samples. Once the window is full, adding a
// sample evicts the oldest one and restarts the warm-up period: until a full
// interval has elapsed since the most recent size-triggered eviction (or since
// construction), the rate is normalized by the elapsed time rather than by the
// interval.
//
// SlidingWindowRate is not safe for concurrent use.
type SlidingWindowRate[T Number] struct {
	interval time.Duration
	maxSize  int

	total T
	// Sum of the values that have been removed from [window].
	// Invariant: total - evicted == sum of the values in [window]
	evicted T
	// Time of the most recent size-triggered eviction, or the construction
	// time if none has happened.
	lastEvictionTime time.Time

	window buffer.Deque[sample[T]]
}

// NewSlidingWindowRate returns an empty rate tracker. [interval] and [maxSize]
// must be positive.
func NewSlidingWindowRate[T Number](
	interval time.Duration,
	maxSize int,
	currentTime time.Time,
) *SlidingWindowRate[T] {
	return &SlidingWindowRate[T]{
		interval:         interval,
		maxSize:          maxSize,
		lastEvictionTime: currentTime,
		window:           buffer.NewUnboundedDeque[sample[T]](min(maxSize, initialWindowSize)),
	}
}

func (r *SlidingWindowRate[T]) AddSample(value T, currentTime time.Time) {
	r.total += value
	r.window.PushRight(sample[T]{
		timestamp: currentTime,
		value:     value,
	})

	for r.window.Len() > r.maxSize {
		r.evictOldest()
		// The eviction is attributed to the time of this call rather than to
		// the timestamp of the evicted sample.
		r.lastEvictionTime = currentTime
	}
}

func (r *SlidingWindowRate[T]) Total() T {
	return r.total
}

// Average expires every sample older than [interval] before [currentTime] and
// returns the per second rate of the remaining samples.
//
// Expiring samples does not restart the warm-up period.
func (r *SlidingWindowRate[T]) Average(currentTime time.Time) float64 {
	windowStart := currentTime.Add(-r.interval)
	for {
		oldest, ok := r.window.PeekLeft()
		if !ok || !oldest.timestamp.Before(windowStart) {
			break
		}
		r.evictOldest()
	}

	current := float64(r.total - r.evicted)
	if windowStart.After(r.lastEvictionTime) {
		return current / r.interval.Seconds()
	}

	// Still warming up. Report zero rather than dividing by a non-positive
	// elapsed time.
	elapsed := currentTime.Sub(r.lastEvictionTime)
	if elapsed <= 0 {
		return 0
	}
	return current / elapsed.Seconds()
}

// Len returns the number of samples currently retained.
func (r *SlidingWindowRate[T]) Len() int {
	return r.window.Len()
}

func (r *SlidingWindowRate[T]) Interval() time.Duration {
	return r.interval
}

func (r *SlidingWindowRate[T]) MaxSize() int {
	return r.maxSize
}

func (r *SlidingWindowRate[T]) evictOldest() {
	oldest, ok := r.window.PopLeft()
	if !ok {
		return
	}
	r.evicted += oldest.value
}
