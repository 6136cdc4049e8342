package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/server"
	"github.com/storeease/storeease/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateAPI()
	}
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

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create app", slog.String("err", err.Error()))
		os.Exit(1)
	}

	// Server startup
	go func() {
		logger.Info("API server starting", slog.String("addr", app.Addr()))
		if err := app.ListenAndServe(); err != nil {
			logger.Error("Server error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", slog.String("err", err.Error()))
	}
	if err := shutdownTelemetry(ctx); err != nil {
		logger.Error("Telemetry shutdown error", slog.String("err", err.Error()))
	}

	logger.Info("API server exited properly")
}
