package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	consts "github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/usecase"
)

func NewMinIOStorage(cfg consts.MinIOConfig) (*MinIOStorage, error) {
	m, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}
	return &MinIOStorage{
		client:     m,
		bucket:     cfg.Bucket,
		publicPath: cfg.PublicPath,
	}, nil
}

type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicPath string
}

func (f *MinIOStorage) Upload(ctx context.Context, name string, r io.Reader) (usecase.Asset, error) {
	key := objectKey(f.publicPath, name)
	_, err := f.client.PutObject(ctx, f.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: mime.TypeByExtension(path.Ext(name)),
	})
	if err != nil {
		return usecase.Asset{}, err
	}
	return usecase.Asset{
		URL: fmt.Sprintf("%s/%s/%s", f.client.EndpointURL(), f.bucket, key),
		ID:  key,
	}, nil
}

func (f *MinIOStorage) Delete(ctx context.Context, assetID string) (usecase.AssetDeleteResult, error) {
	if err := f.client.RemoveObject(ctx, f.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		return usecase.AssetDeleteResult{}, err
	}
	return deletedResult(assetID), nil
}
