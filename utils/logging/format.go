// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Format modes available
const (
	Plain Format = iota
	Colors
	JSON
)

const termTimeFormat = "[01-02|15:04:05.000]"

var (
	errUnknownFormat = errors.New("unknown format")

	levelToColor = map[Level]string{
		Fatal: "\033[31m", // red
		Error: "\033[38;5;208m",
		Warn:  "\033[33m", // yellow
		Info:  "",
		Trace: "\033[95m", // light purple
		Debug: "\033[94m", // light blue
		Verbo: "\033[92m", // light green
	}

	defaultEncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    levelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	jsonEncoderConfig  zapcore.EncoderConfig
	termEncoderConfig  zapcore.EncoderConfig
	colorEncoderConfig zapcore.EncoderConfig
)

func init() {
	jsonEncoderConfig = defaultEncoderConfig
	jsonEncoderConfig.EncodeLevel = jsonLevelEncoder
	jsonEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	termEncoderConfig = defaultEncoderConfig
	termEncoderConfig.EncodeTime = termTimeEncoder
	termEncoderConfig.ConsoleSeparator = " "

	colorEncoderConfig = termEncoderConfig
	colorEncoderConfig.EncodeLevel = colorLevelEncoder
}

// Format of the logs written to a terminal.
type Format int

// ToFormat chooses a format mode. "auto" picks Colors if [fd] is a terminal
// and Plain otherwise.
func ToFormat(h string, fd uintptr) (Format, error) {
	switch strings.ToUpper(h) {
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "JSON":
		return JSON, nil
	case "AUTO":
		if !term.IsTerminal(int(fd)) {
			return Plain, nil
		}
		return Colors, nil
	default:
		return Plain, fmt.Errorf("%w: %q", errUnknownFormat, h)
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	switch f {
	case Plain:
		return []byte(`"PLAIN"`), nil
	case Colors:
		return []byte(`"COLORS"`), nil
	case JSON:
		return []byte(`"JSON"`), nil
	default:
		return nil, errUnknownFormat
	}
}

func (f Format) ConsoleEncoder() zapcore.Encoder {
	switch f {
	case Colors:
		return zapcore.NewConsoleEncoder(colorEncoderConfig)
	case JSON:
		return zapcore.NewJSONEncoder(jsonEncoderConfig)
	default:
		return zapcore.NewConsoleEncoder(termEncoderConfig)
	}
}

func (f Format) FileEncoder() zapcore.Encoder {
	switch f {
	case JSON:
		return zapcore.NewJSONEncoder(jsonEncoderConfig)
	default:
		return zapcore.NewConsoleEncoder(termEncoderConfig)
	}
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).String())
}

func jsonLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).LowerString())
}

func colorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	level := Level(l)
	color, ok := levelToColor[level]
	if !ok || color == "" {
		enc.AppendString(level.String())
		return
	}
	enc.AppendString(color + level.String() + "\033[0m")
}

func termTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(termTimeFormat))
}
