package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Billboard struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Label     string
	ImageURL  string
	ImageID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Billboard) Validate() error {
	if strings.TrimSpace(b.Label) == "" {
		return validationError("label is required")
	}
	if strings.TrimSpace(b.ImageURL) == "" {
		return validationError("image url is required")
	}
	return nil
}

func (u Usecase) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]Billboard, error) {
	return u.repo.ListBillboards(ctx, storeID)
}

func (u Usecase) GetBillboardByID(ctx context.Context, id uuid.UUID) (Billboard, error) {
	return u.repo.GetBillboardByID(ctx, id)
}

func (u Usecase) CreateBillboard(ctx context.Context, storeID uuid.UUID, b Billboard) (Billboard, error) {
	return withStore(ctx, u, storeID, b, func(st Store) (Billboard, error) {
		b.ID = uuid.Nil
		b.StoreID = st.ID
		return u.repo.CreateBillboard(ctx, b)
	})
}

// UpdateBillboard persists b and, when its image changed, deletes the
// previous asset. The asset deletion is best-effort.
func (u Usecase) UpdateBillboard(ctx context.Context, storeID uuid.UUID, b Billboard) (Billboard, error) {
	return withStore(ctx, u, storeID, b, func(st Store) (Billboard, error) {
		prev, err := u.repo.GetBillboardByID(ctx, b.ID)
		if err != nil {
			return Billboard{}, err
		}
		if err := inStore(prev.StoreID, st); err != nil {
			return Billboard{}, err
		}

		b.StoreID = st.ID
		updated, err := u.repo.UpdateBillboard(ctx, b)
		if err != nil {
			return Billboard{}, err
		}

		u.onAssetChanged(ctx, prev.ImageID, updated.ImageID)
		return updated, nil
	})
}

// DeleteBillboard removes the billboard and then its image. A billboard
// still used by a category is rejected with ErrHasDependents and keeps its
// image.
func (u Usecase) DeleteBillboard(ctx context.Context, storeID, id uuid.UUID) (AssetCleanup, error) {
	return withStore(ctx, u, storeID, nil, func(st Store) (AssetCleanup, error) {
		prev, err := u.repo.GetBillboardByID(ctx, id)
		if err != nil {
			return AssetCleanup{}, err
		}
		if err := inStore(prev.StoreID, st); err != nil {
			return AssetCleanup{}, err
		}

		if err := u.repo.DeleteBillboard(ctx, st.ID, id); err != nil {
			return AssetCleanup{}, err
		}
		return u.cleanupAssets(ctx, []string{prev.ImageID}), nil
	})
}
