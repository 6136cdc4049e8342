package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandleDeleteAsset retries the deletion of an asset whose inline cleanup
// failed. Malformed tasks are not retried.
func (h *Handlers) HandleDeleteAsset(ctx context.Context, task *asynq.Task) error {
	var payload AssetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.AssetID == "" {
		return fmt.Errorf("empty asset id: %w", asynq.SkipRetry)
	}

	slog.InfoContext(ctx, "[Queue] processing asset:delete", slog.String("asset_id", payload.AssetID))

	if err := h.usecase.ProcessAssetDeletion(ctx, payload.AssetID); err != nil {
		return err
	}
	return nil
}
