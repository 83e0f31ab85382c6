// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Number is any type that supports addition, subtraction and conversion to
// a float64.
type Number interface {
	constraints.Integer | constraints.Float
}

// Rate tracks the cumulative sum of the provided values and their average
// change per second over a trailing window.
//
// Implementations are not safe for concurrent use.
type Rate[T Number] interface {
	// AddSample records [value] as having been observed at [currentTime].
	AddSample(value T, currentTime time.Time)

	// Total returns the sum of every value ever added.
	Total() T

	// Average returns the per second rate of the values observed in the
	// trailing window ending at [currentTime].
	Average(currentTime time.Time) float64
}
