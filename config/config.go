// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/movingrate/movingrate/api/server"
	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/logging"
)

var (
	errEmptyNamespace     = errors.New("metrics namespace is empty")
	errNegativeRotation   = errors.New("log rotation values must be non-negative")
	errNonPositiveTimeout = errors.New("http timeouts must be positive")
)

// Config is everything the binary needs to run.
type Config struct {
	Rates            rates.Config   `json:"rates"`
	Logging          logging.Config `json:"logging"`
	HTTP             server.Config  `json:"http"`
	MetricsNamespace string         `json:"metricsNamespace"`
	StdinSamples     bool           `json:"stdinSamples"`
}

// GetConfig builds a Config from the values defined in [v]
func GetConfig(v *viper.Viper) (Config, error) {
	loggingConfig, err := getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}

	httpConfig, err := getHTTPConfig(v)
	if err != nil {
		return Config{}, err
	}

	ratesConfig := getRatesConfig(v)
	if err := ratesConfig.Verify(); err != nil {
		return Config{}, err
	}

	namespace := v.GetString(MetricsNamespaceKey)
	if namespace == "" {
		return Config{}, errEmptyNamespace
	}

	return Config{
		Rates:            ratesConfig,
		Logging:          loggingConfig,
		HTTP:             httpConfig,
		MetricsNamespace: namespace,
		StdinSamples:     v.GetBool(StdinSamplesKey),
	}, nil
}

func getRatesConfig(v *viper.Viper) rates.Config {
	return rates.Config{
		Interval:        v.GetDuration(RateIntervalKey),
		MaxSize:         v.GetInt(RateMaxSizeKey),
		ReportFrequency: v.GetDuration(ReportFrequencyKey),
		Metrics:         v.GetStringSlice(RateMetricsKey),
	}
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	dir, err := homedir.Expand(os.ExpandEnv(v.GetString(LogsDirKey)))
	if err != nil {
		return logging.Config{}, fmt.Errorf("couldn't expand %q: %w", LogsDirKey, err)
	}

	config := logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   v.GetInt(LogRotaterMaxSizeKey),
			MaxFiles:  v.GetInt(LogRotaterMaxFilesKey),
			MaxAge:    v.GetInt(LogRotaterMaxAgeKey),
			Directory: dir,
			Compress:  v.GetBool(LogRotaterCompressKey),
		},
		DisableWriterDisplaying: v.GetBool(LogDisableDisplayKey),
	}
	if config.MaxSize < 0 || config.MaxFiles < 0 || config.MaxAge < 0 {
		return logging.Config{}, errNegativeRotation
	}

	config.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return logging.Config{}, err
	}

	config.DisplayLevel = config.LogLevel
	if v.IsSet(LogDisplayLevelKey) && v.GetString(LogDisplayLevelKey) != "" {
		config.DisplayLevel, err = logging.ToLevel(v.GetString(LogDisplayLevelKey))
		if err != nil {
			return logging.Config{}, err
		}
	}
	if config.DisableWriterDisplaying {
		config.DisplayLevel = logging.Off
	}

	config.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey), os.Stdout.Fd())
	return config, err
}

func getHTTPConfig(v *viper.Viper) (server.Config, error) {
	config := server.Config{
		Host:              v.GetString(HTTPHostKey),
		Port:              uint16(v.GetUint(HTTPPortKey)),
		AllowedOrigins:    v.GetStringSlice(HTTPAllowedOriginsKey),
		ReadHeaderTimeout: v.GetDuration(HTTPReadHeaderTimeoutKey),
		ShutdownTimeout:   v.GetDuration(HTTPShutdownTimeoutKey),
	}
	if config.ReadHeaderTimeout <= 0 || config.ShutdownTimeout <= 0 {
		return server.Config{}, errNonPositiveTimeout
	}
	return config, nil
}
