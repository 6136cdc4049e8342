package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxPrice is the largest value of the numeric(10,2) price column.
var maxPrice = decimal.New(9999999999, -2)

type Product struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	CategoryID uuid.UUID
	SizeID     uuid.UUID
	ColorID    uuid.UUID
	Name       string
	Price      decimal.Decimal
	IsFeatured bool
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Images   []Image
	Category *Category
	Size     *Size
	Color    *Color
}

// Image is an uploaded picture owned by a product.
type Image struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	ImageURL  string
	ImageID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validationError("name is required")
	}
	if len(p.Images) == 0 {
		return validationError("images are required")
	}
	for _, img := range p.Images {
		if strings.TrimSpace(img.ImageURL) == "" {
			return validationError("image url is required")
		}
	}
	if !p.Price.IsPositive() {
		return validationError("price is required")
	}
	if p.Price.GreaterThan(maxPrice) {
		return validationError("price must not exceed %s", maxPrice.StringFixed(2))
	}
	if !p.Price.Equal(p.Price.Truncate(2)) {
		return validationError("price must have at most 2 decimal places")
	}
	if p.CategoryID == uuid.Nil {
		return validationError("category id is required")
	}
	if p.SizeID == uuid.Nil {
		return validationError("size id is required")
	}
	if p.ColorID == uuid.Nil {
		return validationError("color id is required")
	}
	return nil
}

type ListProductsOption struct {
	StoreID         uuid.UUID
	CategoryID      uuid.UUID
	SizeID          uuid.UUID
	ColorID         uuid.UUID
	IsFeatured      *bool
	IncludeArchived bool
}

func (u Usecase) ListProducts(ctx context.Context, opt ListProductsOption) ([]Product, error) {
	return u.repo.ListProducts(ctx, opt)
}

// GetProductByID returns the product with its images, category, size and
// color loaded.
func (u Usecase) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	return u.repo.GetProductByID(ctx, id)
}

func (u Usecase) CreateProduct(ctx context.Context, storeID uuid.UUID, p Product) (Product, error) {
	return withStore(ctx, u, storeID, p, func(st Store) (Product, error) {
		if err := u.checkProductRefs(ctx, st, p); err != nil {
			return Product{}, err
		}
		p.ID = uuid.Nil
		p.StoreID = st.ID
		return u.repo.CreateProduct(ctx, p)
	})
}

// UpdateProduct replaces the product fields and its image set. Images that
// are no longer part of the product are deleted from the asset store once the
// update is stored.
func (u Usecase) UpdateProduct(ctx context.Context, storeID uuid.UUID, p Product) (Product, error) {
	return withStore(ctx, u, storeID, p, func(st Store) (Product, error) {
		prev, err := u.repo.GetProductByID(ctx, p.ID)
		if err != nil {
			return Product{}, err
		}
		if err := inStore(prev.StoreID, st); err != nil {
			return Product{}, err
		}
		if err := u.checkProductRefs(ctx, st, p); err != nil {
			return Product{}, err
		}

		p.StoreID = st.ID
		updated, err := u.repo.UpdateProduct(ctx, p)
		if err != nil {
			return Product{}, err
		}

		u.cleanupAssets(ctx, removedAssets(prev.Images, updated.Images))
		return updated, nil
	})
}

// DeleteProduct removes the product with its images, then requests deletion
// of every image asset. The record is gone even when some asset deletions
// fail; the returned cleanup lists them.
func (u Usecase) DeleteProduct(ctx context.Context, storeID, id uuid.UUID) (AssetCleanup, error) {
	return withStore(ctx, u, storeID, nil, func(st Store) (AssetCleanup, error) {
		prev, err := u.repo.GetProductByID(ctx, id)
		if err != nil {
			return AssetCleanup{}, err
		}
		if err := inStore(prev.StoreID, st); err != nil {
			return AssetCleanup{}, err
		}

		if err := u.repo.DeleteProduct(ctx, st.ID, id); err != nil {
			return AssetCleanup{}, err
		}

		ids := make([]string, 0, len(prev.Images))
		for _, img := range prev.Images {
			ids = append(ids, img.ImageID)
		}
		return u.cleanupAssets(ctx, ids), nil
	})
}

// checkProductRefs rejects a category, size or color of another store.
func (u Usecase) checkProductRefs(ctx context.Context, st Store, p Product) error {
	c, err := u.repo.GetCategoryByID(ctx, p.CategoryID)
	if err := sameStore("category", st, c.StoreID, err); err != nil {
		return err
	}
	s, err := u.repo.GetSizeByID(ctx, p.SizeID)
	if err := sameStore("size", st, s.StoreID, err); err != nil {
		return err
	}
	co, err := u.repo.GetColorByID(ctx, p.ColorID)
	return sameStore("color", st, co.StoreID, err)
}
