package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storeease/storeease/internal/config"
)

// WithPrincipal returns a context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, config.CTX_KEY_USER_ID, principal)
}

// PrincipalFrom returns the caller set by the auth middleware.
func PrincipalFrom(ctx context.Context) (string, error) {
	p, ok := ctx.Value(config.CTX_KEY_USER_ID).(string)
	if !ok || p == "" {
		return "", ErrUnauthenticated
	}
	return p, nil
}

// Authorize returns the store when the caller owns it. A missing store and a
// store owned by someone else both yield ErrForbidden so that callers cannot
// probe for store ids.
func (u Usecase) Authorize(ctx context.Context, storeID uuid.UUID) (Store, error) {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return Store{}, err
	}

	st, err := u.repo.GetStoreByID(ctx, storeID)
	if errors.Is(err, ErrNotFound) {
		return Store{}, ErrForbidden
	}
	if err != nil {
		return Store{}, err
	}
	if st.UserID != principal {
		return Store{}, ErrForbidden
	}
	return st, nil
}

type validatable interface {
	Validate() error
}

// withStore runs fn for a caller that owns storeID. The payload, when given,
// is validated after the caller is known and before the store is read, so a
// rejected request never reaches the repository's write path.
func withStore[T any](ctx context.Context, u Usecase, storeID uuid.UUID, payload validatable, fn func(Store) (T, error)) (T, error) {
	var zero T
	if _, err := PrincipalFrom(ctx); err != nil {
		return zero, err
	}
	if payload != nil {
		if err := payload.Validate(); err != nil {
			return zero, err
		}
	}
	st, err := u.Authorize(ctx, storeID)
	if err != nil {
		return zero, err
	}
	return fn(st)
}

// sameStore checks a record referenced by a write, e.g. the billboard of a
// category. A missing reference and one owned by another store are both
// rejected as invalid input.
func sameStore(field string, st Store, refStoreID uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) || (err == nil && refStoreID != st.ID) {
		return validationError("%s does not belong to this store", field)
	}
	return err
}

// inStore reports records of another store as missing.
func inStore(recordStoreID uuid.UUID, st Store) error {
	if recordStoreID != st.ID {
		return ErrNotFound
	}
	return nil
}
