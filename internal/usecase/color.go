package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Color values are free-form, usually a hex code such as #ff0000.
type Color struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Name      string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Color) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(c.Value) == "" {
		return validationError("value is required")
	}
	return nil
}

func (u Usecase) ListColors(ctx context.Context, storeID uuid.UUID) ([]Color, error) {
	return u.repo.ListColors(ctx, storeID)
}

func (u Usecase) GetColorByID(ctx context.Context, id uuid.UUID) (Color, error) {
	return u.repo.GetColorByID(ctx, id)
}

func (u Usecase) CreateColor(ctx context.Context, storeID uuid.UUID, c Color) (Color, error) {
	return withStore(ctx, u, storeID, c, func(st Store) (Color, error) {
		c.ID = uuid.Nil
		c.StoreID = st.ID
		return u.repo.CreateColor(ctx, c)
	})
}

func (u Usecase) UpdateColor(ctx context.Context, storeID uuid.UUID, c Color) (Color, error) {
	return withStore(ctx, u, storeID, c, func(st Store) (Color, error) {
		c.StoreID = st.ID
		return u.repo.UpdateColor(ctx, c)
	})
}

func (u Usecase) DeleteColor(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := withStore(ctx, u, storeID, nil, func(st Store) (struct{}, error) {
		return struct{}{}, u.repo.DeleteColor(ctx, st.ID, id)
	})
	return err
}
