package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/queue/handlers"
)

const assetDeleteMaxRetry = 8

// Client wraps asynq.Client for enqueuing tasks
type Client struct {
	client *asynq.Client
}

// NewClient creates a new queue client
func NewClient(redisAddr string, redisPassword string) *Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
	})

	return &Client{
		client: client,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueAssetDeletion schedules a retry for an asset the API could not
// delete inline.
func (c *Client) EnqueueAssetDeletion(ctx context.Context, assetID string) error {
	task, err := NewAssetDeleteTask(assetID)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(assetDeleteMaxRetry),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	slog.InfoContext(ctx, "[Queue] enqueued task",
		slog.String("id", info.ID),
		slog.String("queue", info.Queue),
		slog.String("asset_id", assetID),
	)
	return nil
}

func NewAssetDeleteTask(assetID string) (*asynq.Task, error) {
	b, err := json.Marshal(handlers.AssetPayload{AssetID: assetID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}
	return asynq.NewTask(config.TASK_ASSET_DELETE, b), nil
}
