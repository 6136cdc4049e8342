package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Size struct {
	ID        string `json:"id"`
	StoreID   string `json:"storeId"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func ConvertSizeFrom(v usecase.Size) Size {
	return Size{
		ID:        v.ID.String(),
		StoreID:   v.StoreID.String(),
		Name:      v.Name,
		Value:     v.Value,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) ListSizes(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "SIZES_GET", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	items, err := s.server.ListSizes(ctx.Request().Context(), storeID)
	if err != nil {
		return s.fail(ctx, "SIZES_GET", err)
	}

	list := make([]Size, 0, len(items))
	for _, v := range items {
		list = append(list, ConvertSizeFrom(v))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

func (s *Server) GetSizeByID(ctx echo.Context) error {
	var req IDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "SIZE_GET", err)
	}
	id, _ := uuid.Parse(req.ID)

	v, err := s.server.GetSizeByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "SIZE_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertSizeFrom(v)})
}

type CreateSizeRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

func (s *Server) CreateSize(ctx echo.Context) error {
	var req CreateSizeRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "SIZES_POST", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	v, err := s.server.CreateSize(ctx.Request().Context(), storeID, usecase.Size{
		Name:  req.Name,
		Value: req.Value,
	})
	if err != nil {
		return s.fail(ctx, "SIZES_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertSizeFrom(v)})
}

type UpdateSizeRequest struct {
	ScopedIDRequest
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func (s *Server) UpdateSize(ctx echo.Context) error {
	var req UpdateSizeRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "SIZE_PATCH", err)
	}
	storeID, id := req.ids()

	v, err := s.server.UpdateSize(ctx.Request().Context(), storeID, usecase.Size{
		ID:    id,
		Name:  req.Name,
		Value: req.Value,
	})
	if err != nil {
		return s.fail(ctx, "SIZE_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertSizeFrom(v)})
}

func (s *Server) DeleteSize(ctx echo.Context) error {
	var req ScopedIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "SIZE_DELETE", err)
	}
	storeID, id := req.ids()

	if err := s.server.DeleteSize(ctx.Request().Context(), storeID, id); err != nil {
		return s.fail(ctx, "SIZE_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{Message: "Size deleted successfully"})
}
