package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Store struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func ConvertStoreFrom(st usecase.Store) Store {
	return Store{
		ID:        st.ID.String(),
		Name:      st.Name,
		UserID:    st.UserID,
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
		UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) ListStores(ctx echo.Context) error {
	stores, err := s.server.ListStores(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, "STORES_GET", err)
	}

	list := make([]Store, 0, len(stores))
	for _, st := range stores {
		list = append(list, ConvertStoreFrom(st))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

type StoreIDRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
}

func (s *Server) GetStoreByID(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "STORE_GET", err)
	}
	id, _ := uuid.Parse(req.StoreID)

	st, err := s.server.GetStoreByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "STORE_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertStoreFrom(st)})
}

type CreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) CreateStore(ctx echo.Context) error {
	var req CreateStoreRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "STORES_POST", err)
	}

	st, err := s.server.CreateStore(ctx.Request().Context(), usecase.Store{Name: req.Name})
	if err != nil {
		return s.fail(ctx, "STORES_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertStoreFrom(st)})
}

type UpdateStoreRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
}

func (s *Server) UpdateStore(ctx echo.Context) error {
	var req UpdateStoreRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "STORE_PATCH", err)
	}
	id, _ := uuid.Parse(req.StoreID)

	st, err := s.server.UpdateStore(ctx.Request().Context(), usecase.Store{ID: id, Name: req.Name})
	if err != nil {
		return s.fail(ctx, "STORE_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertStoreFrom(st)})
}

func (s *Server) DeleteStore(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "STORE_DELETE", err)
	}
	id, _ := uuid.Parse(req.StoreID)

	if err := s.server.DeleteStore(ctx.Request().Context(), id); err != nil {
		return s.fail(ctx, "STORE_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{Message: "Store deleted successfully"})
}

type IDRequest struct {
	ID string `json:"-" param:"id" validate:"required,uuid"`
}

// ScopedIDRequest addresses a record inside a store.
type ScopedIDRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
	ID      string `json:"-" param:"id" validate:"required,uuid"`
}

func (r ScopedIDRequest) ids() (storeID, id uuid.UUID) {
	storeID, _ = uuid.Parse(r.StoreID)
	id, _ = uuid.Parse(r.ID)
	return storeID, id
}

type Cleanup struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Failed    []string `json:"failed,omitempty"`
}

func ConvertCleanupFrom(c usecase.AssetCleanup) Cleanup {
	return Cleanup{Requested: c.Requested, Deleted: c.Deleted, Failed: c.Failed}
}
