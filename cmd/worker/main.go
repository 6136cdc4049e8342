// Copyright (c) 2025 [StoreEase]
//
// This software is licensed under the PolyForm Noncommercial License 1.0.0
// See LICENSE file in the project root for full license terms.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/queue"
	"github.com/storeease/storeease/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("err", err.Error()))
		os.Exit(1)
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: telemetry.ParseLevel(cfg.LogLevel),
	})
	logger := slog.New(telemetry.NewTraceHandler(jsonHandler))
	slog.SetDefault(logger)

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		logger.Error("telemetry setup failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting in WORKER mode...")

	worker, err := queue.NewWorker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create worker", slog.String("err", err.Error()))
		os.Exit(1)
	}

	// Start worker in goroutine
	go func() {
		logger.Info("Starting Asynq worker...")
		if err := worker.Start(); err != nil {
			logger.Error("Worker error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	worker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownTelemetry(ctx); err != nil {
		logger.Error("Telemetry shutdown error", slog.String("err", err.Error()))
	}
	logger.Info("Worker exited properly")
}
