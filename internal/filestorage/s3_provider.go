package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	consts "github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/usecase"
)

type S3Storage struct {
	client     *s3.Client
	bucket     string
	region     string
	publicPath string
}

func NewS3Storage(ctx context.Context, cfg consts.S3Config) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Storage{
		client:     s3.NewFromConfig(awsCfg),
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		publicPath: cfg.PublicPath,
	}, nil
}

func (f *S3Storage) Upload(ctx context.Context, name string, r io.Reader) (usecase.Asset, error) {
	var (
		key         = objectKey(f.publicPath, name)
		contentType = mime.TypeByExtension(path.Ext(name))
	)
	input := &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := f.client.PutObject(ctx, input); err != nil {
		return usecase.Asset{}, err
	}
	return usecase.Asset{
		URL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", f.bucket, f.region, key),
		ID:  key,
	}, nil
}

func (f *S3Storage) Delete(ctx context.Context, assetID string) (usecase.AssetDeleteResult, error) {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return usecase.AssetDeleteResult{}, err
	}
	return deletedResult(assetID), nil
}
