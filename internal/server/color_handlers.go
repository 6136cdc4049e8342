package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Color struct {
	ID        string `json:"id"`
	StoreID   string `json:"storeId"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func ConvertColorFrom(v usecase.Color) Color {
	return Color{
		ID:        v.ID.String(),
		StoreID:   v.StoreID.String(),
		Name:      v.Name,
		Value:     v.Value,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) ListColors(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "COLORS_GET", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	items, err := s.server.ListColors(ctx.Request().Context(), storeID)
	if err != nil {
		return s.fail(ctx, "COLORS_GET", err)
	}

	list := make([]Color, 0, len(items))
	for _, v := range items {
		list = append(list, ConvertColorFrom(v))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

func (s *Server) GetColorByID(ctx echo.Context) error {
	var req IDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "COLOR_GET", err)
	}
	id, _ := uuid.Parse(req.ID)

	v, err := s.server.GetColorByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "COLOR_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertColorFrom(v)})
}

type CreateColorRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

func (s *Server) CreateColor(ctx echo.Context) error {
	var req CreateColorRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "COLORS_POST", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	v, err := s.server.CreateColor(ctx.Request().Context(), storeID, usecase.Color{
		Name:  req.Name,
		Value: req.Value,
	})
	if err != nil {
		return s.fail(ctx, "COLORS_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertColorFrom(v)})
}

type UpdateColorRequest struct {
	ScopedIDRequest
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func (s *Server) UpdateColor(ctx echo.Context) error {
	var req UpdateColorRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "COLOR_PATCH", err)
	}
	storeID, id := req.ids()

	v, err := s.server.UpdateColor(ctx.Request().Context(), storeID, usecase.Color{
		ID:    id,
		Name:  req.Name,
		Value: req.Value,
	})
	if err != nil {
		return s.fail(ctx, "COLOR_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertColorFrom(v)})
}

func (s *Server) DeleteColor(ctx echo.Context) error {
	var req ScopedIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "COLOR_DELETE", err)
	}
	storeID, id := req.ids()

	if err := s.server.DeleteColor(ctx.Request().Context(), storeID, id); err != nil {
		return s.fail(ctx, "COLOR_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{Message: "Color deleted successfully"})
}
