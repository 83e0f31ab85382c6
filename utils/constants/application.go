// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package constants

// Variables to be exported
var (
	// AppName is the name of this application
	AppName = "movingrate"

	// EnvPrefix is prepended to config keys when they are read from the
	// environment.
	EnvPrefix = "MOVINGRATE"

	// DefaultNamespace is the prometheus namespace used for every metric
	DefaultNamespace = AppName
)
