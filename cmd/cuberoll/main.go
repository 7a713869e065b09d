// Package main is the entry point for the cuberoll viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/app"
	"github.com/Faultbox/cuberoll/internal/config"
	"github.com/Faultbox/cuberoll/internal/logger"
	"github.com/Faultbox/cuberoll/internal/viewer"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cuberoll ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to set up animation", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Output.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := a.RunHeadless(ctx); err != nil {
			logger.Error("headless capture failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	v, err := viewer.New(a)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
