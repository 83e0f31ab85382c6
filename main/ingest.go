// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/logging"
)

var errMalformedLine = errors.New("expected '<metric> <value>'")

type observer interface {
	Observe(name string, value float64) error
}

// ingest observes every "<metric> <value>" line read from [r] until EOF or
// until [o] is closed. Malformed lines are skipped.
func ingest(log logging.Logger, r io.Reader, o observer) error {
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, err := parseLine(line)
		if err != nil {
			log.Warn("skipping sample",
				zap.Int("line", lineNum),
				zap.Error(err),
			)
			continue
		}

		err = o.Observe(name, value)
		switch {
		case errors.Is(err, rates.ErrClosed):
			return err
		case err != nil:
			log.Warn("dropping sample",
				zap.Int("line", lineNum),
				zap.Error(err),
			)
		}
	}
	return scanner.Err()
}

func parseLine(line string) (string, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("%w: %q", errMalformedLine, line)
	}
	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", errMalformedLine, err)
	}
	return fields[0], value, nil
}
