// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"

	"github.com/mitchellh/go-homedir"

	"github.com/movingrate/movingrate/utils/constants"
)

// DefaultLogDirectory is the default directory where logs are saved
var DefaultLogDirectory = fmt.Sprintf("~/.%s/logs", constants.AppName)

// RotatingWriterConfig configures the files that each logger writes to.
type RotatingWriterConfig struct {
	MaxSize   int    `json:"maxSize"` // in megabytes
	MaxFiles  int    `json:"maxFiles"`
	MaxAge    int    `json:"maxAge"` // in days
	Directory string `json:"directory"`
	Compress  bool   `json:"compress"`
}

// Config defines the configuration of a logger
type Config struct {
	RotatingWriterConfig
	DisableWriterDisplaying bool   `json:"disableWriterDisplaying"`
	LogLevel                Level  `json:"logLevel"`
	DisplayLevel            Level  `json:"displayLevel"`
	LogFormat               Format `json:"logFormat"`
	MsgPrefix               string `json:"-"`
	LoggerName              string `json:"-"`
}

// DefaultConfig returns a Config that writes Info and above to the terminal
// and to files under DefaultLogDirectory.
func DefaultConfig() (Config, error) {
	dir, err := homedir.Expand(DefaultLogDirectory)
	return Config{
		RotatingWriterConfig: RotatingWriterConfig{
			MaxSize:   8,
			MaxFiles:  7,
			Directory: dir,
		},
		LogLevel:     Info,
		DisplayLevel: Info,
		LogFormat:    Plain,
	}, err
}
