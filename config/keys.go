// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey            = "config-file"
	ConfigFileTypeKey        = "config-file-type"
	RateIntervalKey          = "rate-interval"
	RateMaxSizeKey           = "rate-max-size"
	ReportFrequencyKey       = "report-frequency"
	RateMetricsKey           = "rate-metrics"
	LogsDirKey               = "log-dir"
	LogLevelKey              = "log-level"
	LogDisplayLevelKey       = "log-display-level"
	LogFormatKey             = "log-format"
	LogRotaterMaxSizeKey     = "log-rotater-max-size"
	LogRotaterMaxFilesKey    = "log-rotater-max-files"
	LogRotaterMaxAgeKey      = "log-rotater-max-age"
	LogRotaterCompressKey    = "log-rotater-compress"
	LogDisableDisplayKey     = "log-disable-display"
	HTTPHostKey              = "http-host"
	HTTPPortKey              = "http-port"
	HTTPAllowedOriginsKey    = "http-allowed-origins"
	HTTPReadHeaderTimeoutKey = "http-read-header-timeout"
	HTTPShutdownTimeoutKey   = "http-shutdown-timeout"
	MetricsNamespaceKey      = "metrics-namespace"
	StdinSamplesKey          = "stdin-samples"
)
