package handlers

import (
	"context"
)

// AssetDeleter is the usecase capability the worker needs.
type AssetDeleter interface {
	ProcessAssetDeletion(ctx context.Context, assetID string) error
}

type Handlers struct {
	usecase AssetDeleter
}

func NewHandlers(uc AssetDeleter) *Handlers {
	return &Handlers{
		usecase: uc,
	}
}

// AssetPayload is the body of an asset:delete task.
type AssetPayload struct {
	AssetID string `json:"asset_id"`
}
