// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

// MillisecondsHTTPBuckets are latency buckets suited to API requests.
var MillisecondsHTTPBuckets = []float64{
	1,    // 1 ms
	10,   // 10 ms - instant
	100,  // 100 ms
	250,  // 250 ms - good
	500,  // 500 ms - not great
	1000, // 1 second - worrisome
	5000, // 5 seconds - bad
	// anything larger than 5 seconds will be bucketed together
}
