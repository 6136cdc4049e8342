package queue

import (
	"encoding/json"
	"testing"

	"github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/queue/handlers"
)

func TestNewAssetDeleteTask(t *testing.T) {
	task, err := NewAssetDeleteTask("store/a1")
	if err != nil {
		t.Fatalf("NewAssetDeleteTask: %v", err)
	}
	if task.Type() != config.TASK_ASSET_DELETE {
		t.Fatalf("type = %q, want %q", task.Type(), config.TASK_ASSET_DELETE)
	}
	var p handlers.AssetPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.AssetID != "store/a1" {
		t.Fatalf("asset id = %q", p.AssetID)
	}
}
