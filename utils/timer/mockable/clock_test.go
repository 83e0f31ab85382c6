// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSet(t *testing.T) {
	require := require.New(t)

	clock := Clock{}
	clock.Set(time.Unix(1000000, 0))
	require.Equal(time.Unix(1000000, 0), clock.Time())
}

func TestClockZeroValueIsWallClock(t *testing.T) {
	clock := Clock{}
	require.WithinDuration(t, time.Now(), clock.Time(), time.Minute)
}

func TestClockAdvance(t *testing.T) {
	require := require.New(t)

	clock := Clock{}
	clock.Set(time.Unix(10, 0))
	clock.Advance(1500 * time.Millisecond)
	require.Equal(time.Unix(11, int64(500*time.Millisecond)), clock.Time())
}

func TestClockAdvanceUnfaked(t *testing.T) {
	clock := Clock{}
	before := time.Now()
	clock.Advance(time.Hour)
	require.False(t, clock.Time().Before(before.Add(time.Hour)))
}
