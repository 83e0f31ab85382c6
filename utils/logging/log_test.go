// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error {
	return nil
}

func TestLog(t *testing.T) {
	log := NewLogger("", NewWrappedCore(Info, Discard, Plain.ConsoleEncoder()))

	recovered := new(bool)
	panicFunc := func() {
		panic("DON'T PANIC!")
	}
	exitFunc := func() {
		*recovered = true
	}
	log.RecoverAndExit(panicFunc, exitFunc)

	require.True(t, *recovered)
}

func TestLogLevels(t *testing.T) {
	require := require.New(t)

	buf := &bufferCloser{}
	log := NewLogger("test", NewWrappedCore(Info, buf, JSON.ConsoleEncoder()))

	log.Debug("hidden")
	require.Zero(buf.Len())
	require.False(log.Enabled(Debug))

	log.Info("shown", zap.Int("answer", 42))
	require.Contains(buf.String(), `"msg":"shown"`)
	require.Contains(buf.String(), `"answer":42`)
	require.Contains(buf.String(), `"level":"info"`)
	require.Contains(buf.String(), `"logger":"test"`)

	buf.Reset()
	log.SetLevel(Debug)
	require.True(log.Enabled(Debug))
	log.Debug("now shown")
	require.Contains(buf.String(), "now shown")
}

func TestLogWith(t *testing.T) {
	require := require.New(t)

	buf := &bufferCloser{}
	log := NewLogger("", NewWrappedCore(Info, buf, JSON.ConsoleEncoder()))

	child := log.With(zap.String("metric", "bytes"))
	child.Info("child")
	require.Contains(buf.String(), `"metric":"bytes"`)

	buf.Reset()
	log.Info("parent")
	require.NotContains(buf.String(), "metric")
}

func TestLogFatalDoesNotExit(t *testing.T) {
	buf := &bufferCloser{}
	log := NewLogger("", NewWrappedCore(Info, buf, Plain.ConsoleEncoder()))

	log.Fatal("still running")
	require.Contains(t, buf.String(), "FATAL")
}

func TestNoLog(t *testing.T) {
	require := require.New(t)

	var log Logger = NoLog{}
	log.Info("dropped")
	require.False(log.Enabled(Fatal))

	exited := false
	log.RecoverAndExit(func() { panic("boom") }, func() { exited = true })
	require.True(exited)
}
