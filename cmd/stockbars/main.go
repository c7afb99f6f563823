// Package main is the entry point for the 3D stock bar chart viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/stockbars/internal/app"
	"github.com/Faultbox/stockbars/internal/config"
	"github.com/Faultbox/stockbars/internal/logger"
	"github.com/Faultbox/stockbars/internal/metrics"
)

func main() {
	os.Exit(run())
}

// viewer is the part of *app.App the entry point drives.
type viewer interface {
	Run(ctx context.Context) error
	Close()
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	logger.Setup(logger.FromConfig(cfg.Logging))
	defer logger.Sync()

	logger.Info("=== Stock Bars ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Listen != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Listen); err != nil {
				logger.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		return 1
	}
	return runViewer(ctx, a)
}

// runViewer runs v until it stops and always closes it.
func runViewer(ctx context.Context, v viewer) int {
	defer v.Close()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
