package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Size struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Name      string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Size) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(s.Value) == "" {
		return validationError("value is required")
	}
	return nil
}

func (u Usecase) ListSizes(ctx context.Context, storeID uuid.UUID) ([]Size, error) {
	return u.repo.ListSizes(ctx, storeID)
}

func (u Usecase) GetSizeByID(ctx context.Context, id uuid.UUID) (Size, error) {
	return u.repo.GetSizeByID(ctx, id)
}

func (u Usecase) CreateSize(ctx context.Context, storeID uuid.UUID, s Size) (Size, error) {
	return withStore(ctx, u, storeID, s, func(st Store) (Size, error) {
		s.ID = uuid.Nil
		s.StoreID = st.ID
		return u.repo.CreateSize(ctx, s)
	})
}

func (u Usecase) UpdateSize(ctx context.Context, storeID uuid.UUID, s Size) (Size, error) {
	return withStore(ctx, u, storeID, s, func(st Store) (Size, error) {
		s.StoreID = st.ID
		return u.repo.UpdateSize(ctx, s)
	})
}

func (u Usecase) DeleteSize(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := withStore(ctx, u, storeID, nil, func(st Store) (struct{}, error) {
		return struct{}{}, u.repo.DeleteSize(ctx, st.ID, id)
	})
	return err
}
