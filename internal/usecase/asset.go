package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/dominantcolor"
	"golang.org/x/sync/errgroup"
)

const (
	assetCleanupConcurrency = 4
	assetCleanupTimeout     = 30 * time.Second
	maxUploadBytes          = 10 << 20
)

type Asset struct {
	URL string
	ID  string
	// DominantColor is a #RRGGBB hex, e.g. for a billboard background.
	DominantColor string
}

// AssetDeleteResult is the asset host's answer, keyed by asset id.
type AssetDeleteResult struct {
	Deleted map[string]string
}

// AssetCleanup summarises the asset deletions issued for a removed record.
type AssetCleanup struct {
	Requested int
	Deleted   int
	Failed    []string
}

func (u Usecase) UploadAsset(ctx context.Context, name string, r io.Reader) (Asset, error) {
	if _, err := PrincipalFrom(ctx); err != nil {
		return Asset{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Asset{}, validationError("file name is required")
	}

	b, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return Asset{}, err
	}
	if len(b) > maxUploadBytes {
		return Asset{}, validationError("file is larger than %d bytes", maxUploadBytes)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return Asset{}, validationError("file is not a png, jpeg or gif image")
	}

	a, err := u.assetStore.Upload(ctx, name, bytes.NewReader(b))
	if err != nil {
		return Asset{}, err
	}
	a.DominantColor = dominantcolor.Hex(dominantcolor.Find(img))
	return a, nil
}

// DeleteAsset removes an asset that is not attached to any record yet,
// e.g. an image removed from a form before it was submitted.
func (u Usecase) DeleteAsset(ctx context.Context, assetID string) (AssetDeleteResult, error) {
	if _, err := PrincipalFrom(ctx); err != nil {
		return AssetDeleteResult{}, err
	}
	if strings.TrimSpace(assetID) == "" {
		return AssetDeleteResult{}, validationError("image id is required")
	}
	return u.assetStore.Delete(ctx, assetID)
}

// ProcessAssetDeletion is run by the worker for queued deletions.
func (u Usecase) ProcessAssetDeletion(ctx context.Context, assetID string) error {
	res, err := u.assetStore.Delete(ctx, assetID)
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", assetID, err)
	}
	slog.InfoContext(ctx, "asset deleted", slog.String("asset_id", assetID), slog.Any("result", res.Deleted))
	return nil
}

// onAssetChanged deletes the previous asset of a record whose image was
// replaced. Failures are logged and queued; they never fail the caller.
func (u Usecase) onAssetChanged(ctx context.Context, oldID, newID string) AssetCleanup {
	if oldID == "" || oldID == newID {
		return AssetCleanup{}
	}
	return u.cleanupAssets(ctx, []string{oldID})
}

// cleanupAssets issues one deletion per id, waits for all of them and
// reports which ones failed. Failed ids are handed to the retry queue.
// The record is already gone, so the work outlives a cancelled request.
func (u Usecase) cleanupAssets(ctx context.Context, ids []string) AssetCleanup {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return AssetCleanup{}
	}

	ctx = context.WithoutCancel(ctx)
	deleteCtx, cancel := context.WithTimeout(ctx, assetCleanupTimeout)
	defer cancel()

	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(assetCleanupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			_, errs[i] = u.assetStore.Delete(deleteCtx, id)
			return nil
		})
	}
	_ = g.Wait()

	res := AssetCleanup{Requested: len(ids)}
	for i, err := range errs {
		if err == nil {
			res.Deleted++
			continue
		}
		res.Failed = append(res.Failed, ids[i])
		slog.WarnContext(ctx, "asset deletion failed",
			slog.String("asset_id", ids[i]),
			slog.String("err", err.Error()),
		)
		u.retryAssetDeletion(ctx, ids[i])
	}
	return res
}

func (u Usecase) retryAssetDeletion(ctx context.Context, assetID string) {
	if u.assetQueue == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := u.assetQueue.EnqueueAssetDeletion(ctx, assetID); err != nil {
		slog.ErrorContext(ctx, "enqueue asset deletion",
			slog.String("asset_id", assetID),
			slog.String("err", err.Error()),
		)
	}
}

// removedAssets returns the ids in prev that are absent from next.
func removedAssets(prev, next []Image) []string {
	keep := make(map[string]struct{}, len(next))
	for _, img := range next {
		keep[img.ImageID] = struct{}{}
	}
	var ids []string
	for _, img := range prev {
		if _, ok := keep[img.ImageID]; !ok {
			ids = append(ids, img.ImageID)
		}
	}
	return ids
}

func compactIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
