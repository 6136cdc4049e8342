package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/filestorage"
	"github.com/storeease/storeease/internal/queue/handlers"
	"github.com/storeease/storeease/internal/usecase"
)

// Worker represents a worker application with all its dependencies
type Worker struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	logger      *slog.Logger
}

// NewWorker creates a fully configured worker. Queued tasks only touch the
// asset host, so no database connection is opened.
func NewWorker(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Worker, error) {
	logger.Info("Initializing worker dependencies...")

	if cfg.Redis.Addr() == "" {
		return nil, fmt.Errorf("REDIS_HOST is required to run the worker")
	}

	as, err := filestorage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset store: %w", err)
	}

	uc := usecase.New(nil, nil, as, nil)

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.ErrorContext(ctx, "task failed",
					slog.String("type", task.Type()),
					slog.Int("retried", retried),
					slog.Int("max_retry", maxRetry),
					slog.String("err", err.Error()),
				)
			}),
		},
	)

	mux := asynq.NewServeMux()

	h := handlers.NewHandlers(uc)

	// Register task handlers - one line per job type
	mux.HandleFunc(config.TASK_ASSET_DELETE, h.HandleDeleteAsset)

	logger.Info("Worker registered handlers", slog.String("types", config.TASK_ASSET_DELETE))

	return &Worker{
		asynqServer: asynqServer,
		mux:         mux,
		logger:      logger,
	}, nil
}

// Start starts the worker server
func (w *Worker) Start() error {
	w.logger.Info("Worker started successfully")
	return w.asynqServer.Start(w.mux)
}

// Stop stops the worker server gracefully
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.asynqServer.Shutdown()
}
