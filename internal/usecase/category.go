package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	BillboardID uuid.UUID
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Billboard *Billboard
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validationError("name is required")
	}
	if c.BillboardID == uuid.Nil {
		return validationError("billboard id is required")
	}
	return nil
}

func (u Usecase) ListCategories(ctx context.Context, storeID uuid.UUID) ([]Category, error) {
	return u.repo.ListCategories(ctx, storeID)
}

func (u Usecase) GetCategoryByID(ctx context.Context, id uuid.UUID) (Category, error) {
	return u.repo.GetCategoryByID(ctx, id)
}

func (u Usecase) CreateCategory(ctx context.Context, storeID uuid.UUID, c Category) (Category, error) {
	return withStore(ctx, u, storeID, c, func(st Store) (Category, error) {
		if err := u.checkBillboard(ctx, st, c.BillboardID); err != nil {
			return Category{}, err
		}
		c.ID = uuid.Nil
		c.StoreID = st.ID
		return u.repo.CreateCategory(ctx, c)
	})
}

func (u Usecase) UpdateCategory(ctx context.Context, storeID uuid.UUID, c Category) (Category, error) {
	return withStore(ctx, u, storeID, c, func(st Store) (Category, error) {
		if err := u.checkBillboard(ctx, st, c.BillboardID); err != nil {
			return Category{}, err
		}
		c.StoreID = st.ID
		return u.repo.UpdateCategory(ctx, c)
	})
}

func (u Usecase) DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := withStore(ctx, u, storeID, nil, func(st Store) (struct{}, error) {
		return struct{}{}, u.repo.DeleteCategory(ctx, st.ID, id)
	})
	return err
}

func (u Usecase) checkBillboard(ctx context.Context, st Store, id uuid.UUID) error {
	b, err := u.repo.GetBillboardByID(ctx, id)
	return sameStore("billboard", st, b.StoreID, err)
}
