package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	consts "github.com/storeease/storeease/internal/config"
	"github.com/storeease/storeease/internal/usecase"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cfg consts.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: cfg.Folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, _ string, r io.Reader) (usecase.Asset, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return usecase.Asset{}, err
	}
	if res.Error.Message != "" {
		return usecase.Asset{}, errors.New(res.Error.Message)
	}
	return usecase.Asset{URL: res.SecureURL, ID: res.PublicID}, nil
}

// Delete removes the resource by public id. An id unknown to Cloudinary
// is reported as "not_found" in the result, not as an error.
func (c *Cloudinary) Delete(ctx context.Context, assetID string) (usecase.AssetDeleteResult, error) {
	res, err := c.cld.Admin.DeleteAssets(ctx, admin.DeleteAssetsParams{
		PublicIDs: []string{assetID},
	})
	if err != nil {
		return usecase.AssetDeleteResult{}, err
	}
	if res.Error.Message != "" {
		return usecase.AssetDeleteResult{}, errors.New(res.Error.Message)
	}
	return usecase.AssetDeleteResult{Deleted: res.Deleted}, nil
}
