// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/constants"
	"github.com/movingrate/movingrate/utils/logging"
)

const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 9650

	defaultReadHeaderTimeout = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// BuildFlagSet returns the complete set of flags for the binary
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(constants.AppName, pflag.ContinueOnError)

	// Config file
	fs.String(ConfigFileKey, "", "Specifies a config file")
	fs.String(ConfigFileTypeKey, "json", "Specifies the type of the config file. Should be one of {json, yaml, toml}")

	// Rates
	fs.Duration(RateIntervalKey, rates.DefaultConfig.Interval, "Length of the trailing window that rates are averaged over")
	fs.Int(RateMaxSizeKey, rates.DefaultConfig.MaxSize, "Maximum number of samples retained per metric")
	fs.Duration(ReportFrequencyKey, rates.DefaultConfig.ReportFrequency, "How often every metric is evaluated, exported and logged")
	fs.StringSlice(RateMetricsKey, nil, "Metrics to track from startup. Other metrics are tracked once their first sample arrives")

	// Logging
	fs.String(LogsDirKey, logging.DefaultLogDirectory, "Logging directory")
	fs.String(LogLevelKey, logging.Info.LowerString(), "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogDisplayLevelKey, "", "The log display level. If left blank, will inherit the value of log-level. Otherwise, should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogFormatKey, "auto", "The structure of log format. Defaults to 'auto' which formats terminal-like logs, when the output is a terminal. Otherwise, should be one of {auto, plain, colors, json}")
	fs.Int(LogRotaterMaxSizeKey, 8, "The maximum file size in megabytes of the log file before it gets rotated")
	fs.Int(LogRotaterMaxFilesKey, 7, "The maximum number of old log files to retain. 0 means retain all old log files")
	fs.Int(LogRotaterMaxAgeKey, 0, "The maximum number of days to retain old log files based on the timestamp encoded in their filename. 0 means retain all old log files")
	fs.Bool(LogRotaterCompressKey, false, "Enables the compression of rotated log files through gzip")
	fs.Bool(LogDisableDisplayKey, false, "Disables displaying logs in stdout")

	// HTTP APIs
	fs.String(HTTPHostKey, DefaultHTTPHost, "Address of the HTTP server. If the address is empty or a literal unspecified IP address, the server will bind on all available unicast and anycast IP addresses of the local system")
	fs.Uint16(HTTPPortKey, DefaultHTTPPort, "Port of the HTTP server. If the port is 0 a port number is automatically chosen")
	fs.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port. Defaults to * which allows all origins")
	fs.Duration(HTTPReadHeaderTimeoutKey, defaultReadHeaderTimeout, "Maximum duration to read request headers. The connection's read deadline is reset after reading the headers")
	fs.Duration(HTTPShutdownTimeoutKey, defaultShutdownTimeout, "Maximum duration to wait for existing connections to complete during shutdown")

	// Metrics
	fs.String(MetricsNamespaceKey, constants.DefaultNamespace, "Namespace of every exported prometheus metric")

	// Ingestion
	fs.Bool(StdinSamplesKey, false, "If true, read samples of the form '<metric> <value>' from stdin")

	return fs
}

// BuildViper returns the viper environment for the provided flag set, after
// parsing [args], binding environment variables and reading the config file.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(constants.EnvPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if filename := os.ExpandEnv(v.GetString(ConfigFileKey)); filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType(v.GetString(ConfigFileTypeKey))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %q: %w", filename, err)
		}
	}
	return v, nil
}
