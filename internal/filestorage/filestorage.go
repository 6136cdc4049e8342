package filestorage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	consts "github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/usecase"
)

// New returns the asset store selected by ASSET_PROVIDER.
func New(ctx context.Context, cfg consts.Config) (usecase.AssetStore, error) {
	switch cfg.AssetProvider {
	case consts.ASSET_PROVIDER_CLOUDINARY:
		return NewCloudinary(cfg.Cloudinary)
	case consts.ASSET_PROVIDER_MINIO:
		return NewMinIOStorage(cfg.MinIO)
	case consts.ASSET_PROVIDER_S3:
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown asset provider %q", cfg.AssetProvider)
	}
}

// objectKey places an upload under prefix with a random component so two
// files with the same name never overwrite each other.
func objectKey(prefix, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return path.Join(prefix, uuid.NewString()+"-"+base)
}

func deletedResult(id string) usecase.AssetDeleteResult {
	return usecase.AssetDeleteResult{Deleted: map[string]string{id: "deleted"}}
}
