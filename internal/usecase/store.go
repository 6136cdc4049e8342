package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID        uuid.UUID
	Name      string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Store) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return validationError("name is required")
	}
	return nil
}

type ListStoresOption struct {
	UserID string
}

func (u Usecase) ListStores(ctx context.Context) ([]Store, error) {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return nil, err
	}
	return u.repo.ListStores(ctx, ListStoresOption{UserID: principal})
}

func (u Usecase) GetStoreByID(ctx context.Context, id uuid.UUID) (Store, error) {
	return u.Authorize(ctx, id)
}

func (u Usecase) CreateStore(ctx context.Context, s Store) (Store, error) {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return Store{}, err
	}
	if err := s.Validate(); err != nil {
		return Store{}, err
	}
	s.UserID = principal
	return u.repo.CreateStore(ctx, s)
}

func (u Usecase) UpdateStore(ctx context.Context, s Store) (Store, error) {
	return withStore(ctx, u, s.ID, s, func(st Store) (Store, error) {
		st.Name = s.Name
		return u.repo.UpdateStore(ctx, st)
	})
}

// DeleteStore fails with ErrHasDependents while the store still has
// billboards, categories, products, sizes or colors.
func (u Usecase) DeleteStore(ctx context.Context, id uuid.UUID) error {
	_, err := withStore(ctx, u, id, nil, func(st Store) (struct{}, error) {
		return struct{}{}, u.repo.DeleteStore(ctx, st.ID)
	})
	return err
}
