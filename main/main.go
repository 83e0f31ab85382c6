// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/movingrate/movingrate/api/metrics"
	"github.com/movingrate/movingrate/api/server"
	"github.com/movingrate/movingrate/config"
	"github.com/movingrate/movingrate/rates"
	"github.com/movingrate/movingrate/utils/logging"
	"github.com/movingrate/movingrate/utils/metric"
)

// main is the primary entry point to movingrate.
func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	cfg, err := config.GetConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		os.Exit(1)
	}

	logFactory := logging.NewFactory(cfg.Logging)

	log, err := logFactory.Make("main")
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't initialize log: %s\n", err)
		logFactory.Close()
		os.Exit(1)
	}

	exitCode := 0
	log.RecoverAndExit(func() {
		if err := run(log, logFactory, cfg); err != nil {
			log.Fatal("movingrate failed",
				zap.Error(err),
			)
			exitCode = 1
		}
	}, func() {
		exitCode = 1
	})

	logFactory.Close()
	os.Exit(exitCode)
}

func run(log logging.Logger, logFactory logging.Factory, cfg config.Config) error {
	ratesLog, err := logFactory.Make("rates")
	if err != nil {
		return err
	}
	httpLog, err := logFactory.Make("http")
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	manager, err := rates.NewManager(ratesLog, cfg.MetricsNamespace, registry, cfg.Rates, nil)
	if err != nil {
		return err
	}
	interceptor, err := metric.NewAPIInterceptor(cfg.MetricsNamespace+"_api", registry)
	if err != nil {
		return err
	}
	srv := server.New(httpLog, cfg.HTTP, manager, metrics.NewService(registry), interceptor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StdinSamples {
		// Reading stdin can't be interrupted, so the reader isn't waited on.
		go func() {
			if err := ingest(log, os.Stdin, manager); err != nil {
				log.Warn("stopped reading samples from stdin",
					zap.Error(err),
				)
			}
		}()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return manager.Dispatch(ctx)
	})
	g.Go(func() error {
		return srv.Dispatch(ctx)
	})

	log.Info("movingrate started",
		zap.Any("config", cfg),
	)
	err = g.Wait()
	log.Info("movingrate stopped")
	return err
}
