// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/logging"
)

type sample struct {
	name  string
	value float64
}

type recordingObserver struct {
	samples []sample
	err     error
}

func (r *recordingObserver) Observe(name string, value float64) error {
	if r.err != nil {
		return r.err
	}
	r.samples = append(r.samples, sample{name: name, value: value})
	return nil
}

func TestIngest(t *testing.T) {
	require := require.New(t)

	input := strings.Join([]string{
		"bytes 100",
		"",
		"# comment",
		"ops  2.5 ",
		"bytes",
		"bytes ten",
		"bytes 1 2",
		"bytes 3",
	}, "\n")

	o := &recordingObserver{}
	require.NoError(ingest(logging.NoLog{}, strings.NewReader(input), o))
	require.Equal([]sample{
		{name: "bytes", value: 100},
		{name: "ops", value: 2.5},
		{name: "bytes", value: 3},
	}, o.samples)
}

func TestIngestStopsWhenClosed(t *testing.T) {
	o := &recordingObserver{err: rates.ErrClosed}
	err := ingest(logging.NoLog{}, strings.NewReader("bytes 1\nbytes 2\n"), o)
	require.ErrorIs(t, err, rates.ErrClosed)
}

func TestParseLine(t *testing.T) {
	require := require.New(t)

	name, value, err := parseLine("bytes -4e3")
	require.NoError(err)
	require.Equal("bytes", name)
	require.Equal(-4000.0, value)

	_, _, err = parseLine("bytes")
	require.ErrorIs(err, errMalformedLine)

	_, _, err = parseLine("bytes x")
	require.ErrorIs(err, errMalformedLine)
}
