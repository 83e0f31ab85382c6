// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import "time"

type Config struct {
	Host              string        `json:"host"`
	Port              uint16        `json:"port"`
	AllowedOrigins    []string      `json:"allowedOrigins"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"`
}
