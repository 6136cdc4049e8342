package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
)

func New(repo Repository, ip IdentityProvider, as AssetStore, aq AssetQueue) Usecase {
	return Usecase{
		repo:             repo,
		identityProvider: ip,
		assetStore:       as,
		assetQueue:       aq,
	}
}

type Repository interface {
	Health() map[string]string
	Close() error

	ListStores(context.Context, ListStoresOption) ([]Store, error)
	GetStoreByID(context.Context, uuid.UUID) (Store, error)
	CreateStore(context.Context, Store) (Store, error)
	UpdateStore(context.Context, Store) (Store, error)
	DeleteStore(context.Context, uuid.UUID) error

	ListBillboards(context.Context, uuid.UUID) ([]Billboard, error)
	GetBillboardByID(context.Context, uuid.UUID) (Billboard, error)
	CreateBillboard(context.Context, Billboard) (Billboard, error)
	UpdateBillboard(context.Context, Billboard) (Billboard, error)
	DeleteBillboard(context.Context, uuid.UUID, uuid.UUID) error

	ListCategories(context.Context, uuid.UUID) ([]Category, error)
	GetCategoryByID(context.Context, uuid.UUID) (Category, error)
	CreateCategory(context.Context, Category) (Category, error)
	UpdateCategory(context.Context, Category) (Category, error)
	DeleteCategory(context.Context, uuid.UUID, uuid.UUID) error

	ListSizes(context.Context, uuid.UUID) ([]Size, error)
	GetSizeByID(context.Context, uuid.UUID) (Size, error)
	CreateSize(context.Context, Size) (Size, error)
	UpdateSize(context.Context, Size) (Size, error)
	DeleteSize(context.Context, uuid.UUID, uuid.UUID) error

	ListColors(context.Context, uuid.UUID) ([]Color, error)
	GetColorByID(context.Context, uuid.UUID) (Color, error)
	CreateColor(context.Context, Color) (Color, error)
	UpdateColor(context.Context, Color) (Color, error)
	DeleteColor(context.Context, uuid.UUID, uuid.UUID) error

	ListProducts(context.Context, ListProductsOption) ([]Product, error)
	GetProductByID(context.Context, uuid.UUID) (Product, error)
	CreateProduct(context.Context, Product) (Product, error)
	// UpdateProduct replaces the scalar fields and the whole image set.
	UpdateProduct(context.Context, Product) (Product, error)
	DeleteProduct(context.Context, uuid.UUID, uuid.UUID) error
}

// IdentityProvider resolves a bearer token to a principal id.
type IdentityProvider interface {
	VerifyIDToken(context.Context, string) (string, error)
}

// AssetStore hosts uploaded images.
type AssetStore interface {
	Upload(ctx context.Context, name string, r io.Reader) (Asset, error)
	Delete(ctx context.Context, assetID string) (AssetDeleteResult, error)
}

// AssetQueue schedules asset deletions that failed inline.
type AssetQueue interface {
	EnqueueAssetDeletion(ctx context.Context, assetID string) error
}

type Usecase struct {
	repo             Repository
	identityProvider IdentityProvider
	assetStore       AssetStore
	assetQueue       AssetQueue
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}

// used by middleware
func (u Usecase) VerifyIDToken(ctx context.Context, token string) (string, error) {
	if u.identityProvider == nil {
		return "", ErrUnauthenticated
	}
	return u.identityProvider.VerifyIDToken(ctx, token)
}
