package usecase

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// memRepo is an in-memory Repository with the referential rules of the
// real schema.
type memRepo struct {
	mu         sync.Mutex
	stores     map[uuid.UUID]Store
	billboards map[uuid.UUID]Billboard
	categories map[uuid.UUID]Category
	sizes      map[uuid.UUID]Size
	colors     map[uuid.UUID]Color
	products   map[uuid.UUID]Product

	writes int
}

func newMemRepo() *memRepo {
	return &memRepo{
		stores:     map[uuid.UUID]Store{},
		billboards: map[uuid.UUID]Billboard{},
		categories: map[uuid.UUID]Category{},
		sizes:      map[uuid.UUID]Size{},
		colors:     map[uuid.UUID]Color{},
		products:   map[uuid.UUID]Product{},
	}
}

func (r *memRepo) Health() map[string]string { return map[string]string{"status": "up"} }
func (r *memRepo) Close() error              { return nil }

func (r *memRepo) ListStores(_ context.Context, opt ListStoresOption) ([]Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []Store
	for _, s := range r.stores {
		if s.UserID == opt.UserID {
			list = append(list, s)
		}
	}
	return list, nil
}

func (r *memRepo) GetStoreByID(_ context.Context, id uuid.UUID) (Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return Store{}, ErrNotFound
	}
	return s, nil
}

func (r *memRepo) CreateStore(_ context.Context, s Store) (Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	s.ID = uuid.New()
	r.stores[s.ID] = s
	return s, nil
}

func (r *memRepo) UpdateStore(_ context.Context, s Store) (Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.stores[s.ID] = s
	return s, nil
}

func (r *memRepo) DeleteStore(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	for _, b := range r.billboards {
		if b.StoreID == id {
			return ErrHasDependents
		}
	}
	delete(r.stores, id)
	return nil
}

func (r *memRepo) ListBillboards(_ context.Context, storeID uuid.UUID) ([]Billboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []Billboard
	for _, b := range r.billboards {
		if b.StoreID == storeID {
			list = append(list, b)
		}
	}
	return list, nil
}

func (r *memRepo) GetBillboardByID(_ context.Context, id uuid.UUID) (Billboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.billboards[id]
	if !ok {
		return Billboard{}, ErrNotFound
	}
	return b, nil
}

func (r *memRepo) CreateBillboard(_ context.Context, b Billboard) (Billboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	b.ID = uuid.New()
	r.billboards[b.ID] = b
	return b, nil
}

func (r *memRepo) UpdateBillboard(_ context.Context, b Billboard) (Billboard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	prev, ok := r.billboards[b.ID]
	if !ok || prev.StoreID != b.StoreID {
		return Billboard{}, ErrNotFound
	}
	r.billboards[b.ID] = b
	return b, nil
}

func (r *memRepo) DeleteBillboard(_ context.Context, storeID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	b, ok := r.billboards[id]
	if !ok || b.StoreID != storeID {
		return ErrNotFound
	}
	for _, c := range r.categories {
		if c.BillboardID == id {
			return ErrHasDependents
		}
	}
	delete(r.billboards, id)
	return nil
}

func (r *memRepo) ListCategories(_ context.Context, storeID uuid.UUID) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []Category
	for _, c := range r.categories {
		if c.StoreID == storeID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *memRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) CreateCategory(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.billboards[c.BillboardID]; !ok {
		return Category{}, errors.New("foreign key violation")
	}
	c.ID = uuid.New()
	r.categories[c.ID] = c
	return c, nil
}

func (r *memRepo) UpdateCategory(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	prev, ok := r.categories[c.ID]
	if !ok || prev.StoreID != c.StoreID {
		return Category{}, ErrNotFound
	}
	r.categories[c.ID] = c
	return c, nil
}

func (r *memRepo) DeleteCategory(_ context.Context, storeID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	c, ok := r.categories[id]
	if !ok || c.StoreID != storeID {
		return ErrNotFound
	}
	for _, p := range r.products {
		if p.CategoryID == id {
			return ErrHasDependents
		}
	}
	delete(r.categories, id)
	return nil
}

func (r *memRepo) ListSizes(context.Context, uuid.UUID) ([]Size, error) { return nil, nil }

func (r *memRepo) GetSizeByID(_ context.Context, id uuid.UUID) (Size, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sizes[id]
	if !ok {
		return Size{}, ErrNotFound
	}
	return s, nil
}

func (r *memRepo) CreateSize(_ context.Context, s Size) (Size, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	s.ID = uuid.New()
	r.sizes[s.ID] = s
	return s, nil
}

func (r *memRepo) UpdateSize(_ context.Context, s Size) (Size, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.sizes[s.ID] = s
	return s, nil
}

func (r *memRepo) DeleteSize(_ context.Context, _, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	delete(r.sizes, id)
	return nil
}

func (r *memRepo) ListColors(context.Context, uuid.UUID) ([]Color, error) { return nil, nil }

func (r *memRepo) GetColorByID(_ context.Context, id uuid.UUID) (Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colors[id]
	if !ok {
		return Color{}, ErrNotFound
	}
	return c, nil
}

func (r *memRepo) CreateColor(_ context.Context, c Color) (Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	c.ID = uuid.New()
	r.colors[c.ID] = c
	return c, nil
}

func (r *memRepo) UpdateColor(_ context.Context, c Color) (Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.colors[c.ID] = c
	return c, nil
}

func (r *memRepo) DeleteColor(_ context.Context, _, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	delete(r.colors, id)
	return nil
}

func (r *memRepo) ListProducts(_ context.Context, opt ListProductsOption) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []Product
	for _, p := range r.products {
		if p.StoreID == opt.StoreID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *memRepo) GetProductByID(_ context.Context, id uuid.UUID) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	p.Images = slices.Clone(p.Images)
	return p, nil
}

func (r *memRepo) CreateProduct(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	p.ID = uuid.New()
	p.Images = slices.Clone(p.Images)
	for i := range p.Images {
		p.Images[i].ID = uuid.New()
		p.Images[i].ProductID = p.ID
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *memRepo) UpdateProduct(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	prev, ok := r.products[p.ID]
	if !ok || prev.StoreID != p.StoreID {
		return Product{}, ErrNotFound
	}
	p.Images = slices.Clone(p.Images)
	r.products[p.ID] = p
	return p, nil
}

func (r *memRepo) DeleteProduct(_ context.Context, storeID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	p, ok := r.products[id]
	if !ok || p.StoreID != storeID {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// memAssets records deletions; ids listed in fail return an error.
type memAssets struct {
	mu      sync.Mutex
	deleted []string
	fail    map[string]bool
}

func (a *memAssets) Upload(_ context.Context, name string, r io.Reader) (Asset, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return Asset{}, err
	}
	return Asset{URL: "https://assets.test/" + name, ID: name}, nil
}

func (a *memAssets) Delete(ctx context.Context, id string) (AssetDeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return AssetDeleteResult{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, id)
	if a.fail[id] {
		return AssetDeleteResult{}, errors.New("asset host unavailable")
	}
	return AssetDeleteResult{Deleted: map[string]string{id: "deleted"}}, nil
}

func (a *memAssets) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := slices.Clone(a.deleted)
	slices.Sort(out)
	return out
}

type memQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *memQueue) EnqueueAssetDeletion(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, id)
	return nil
}
