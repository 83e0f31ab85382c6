// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rates

import (
	"errors"
	"fmt"
	"time"

	"github.com/movingrate/movingrate/utils/math"
)

var (
	ErrNonPositiveInterval        = errors.New("interval must be positive")
	ErrNonPositiveMaxSize         = errors.New("max size must be positive")
	ErrNonPositiveReportFrequency = errors.New("report frequency must be positive")
	ErrDuplicateMetric            = errors.New("duplicate metric")

	DefaultConfig = Config{
		Interval:        2 * time.Minute,
		MaxSize:         math.DefaultMaxSize,
		ReportFrequency: 10 * time.Second,
	}
)

type Config struct {
	// Length of the trailing window that rates are averaged over.
	Interval time.Duration `json:"interval"`
	// Maximum number of samples retained per metric.
	MaxSize int `json:"maxSize"`
	// How often every metric is evaluated, exported and logged.
	ReportFrequency time.Duration `json:"reportFrequency"`
	// Metrics that are tracked from startup. Other metrics are tracked once
	// their first sample arrives.
	Metrics []string `json:"metrics"`
}

func (c Config) Verify() error {
	switch {
	case c.Interval <= 0:
		return fmt.Errorf("%w: %s", ErrNonPositiveInterval, c.Interval)
	case c.MaxSize <= 0:
		return fmt.Errorf("%w: %d", ErrNonPositiveMaxSize, c.MaxSize)
	case c.ReportFrequency <= 0:
		return fmt.Errorf("%w: %s", ErrNonPositiveReportFrequency, c.ReportFrequency)
	}

	seen := make(map[string]struct{}, len(c.Metrics))
	for _, name := range c.Metrics {
		if name == "" {
			return ErrEmptyName
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateMetric, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
