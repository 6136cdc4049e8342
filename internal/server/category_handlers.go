package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Category struct {
	ID          string     `json:"id"`
	StoreID     string     `json:"storeId"`
	BillboardID string     `json:"billboardId"`
	Name        string     `json:"name"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	Billboard   *Billboard `json:"billboard,omitempty"`
}

func ConvertCategoryFrom(c usecase.Category) Category {
	cat := Category{
		ID:          c.ID.String(),
		StoreID:     c.StoreID.String(),
		BillboardID: c.BillboardID.String(),
		Name:        c.Name,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Billboard != nil {
		b := ConvertBillboardFrom(*c.Billboard)
		cat.Billboard = &b
	}
	return cat
}

func (s *Server) ListCategories(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "CATEGORIES_GET", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	categories, err := s.server.ListCategories(ctx.Request().Context(), storeID)
	if err != nil {
		return s.fail(ctx, "CATEGORIES_GET", err)
	}

	list := make([]Category, 0, len(categories))
	for _, c := range categories {
		list = append(list, ConvertCategoryFrom(c))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

func (s *Server) GetCategoryByID(ctx echo.Context) error {
	var req IDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "CATEGORY_GET", err)
	}
	id, _ := uuid.Parse(req.ID)

	c, err := s.server.GetCategoryByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "CATEGORY_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertCategoryFrom(c)})
}

type CreateCategoryRequest struct {
	StoreID     string `json:"-" param:"storeId" validate:"required,uuid"`
	Name        string `json:"name" validate:"required"`
	BillboardID string `json:"billboardId" validate:"required,uuid"`
}

func (s *Server) CreateCategory(ctx echo.Context) error {
	var req CreateCategoryRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "CATEGORIES_POST", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)
	billboardID, _ := uuid.Parse(req.BillboardID)

	c, err := s.server.CreateCategory(ctx.Request().Context(), storeID, usecase.Category{
		Name:        req.Name,
		BillboardID: billboardID,
	})
	if err != nil {
		return s.fail(ctx, "CATEGORIES_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertCategoryFrom(c)})
}

type UpdateCategoryRequest struct {
	ScopedIDRequest
	Name        string `json:"name" validate:"required"`
	BillboardID string `json:"billboardId" validate:"required,uuid"`
}

func (s *Server) UpdateCategory(ctx echo.Context) error {
	var req UpdateCategoryRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "CATEGORY_PATCH", err)
	}
	storeID, id := req.ids()
	billboardID, _ := uuid.Parse(req.BillboardID)

	c, err := s.server.UpdateCategory(ctx.Request().Context(), storeID, usecase.Category{
		ID:          id,
		Name:        req.Name,
		BillboardID: billboardID,
	})
	if err != nil {
		return s.fail(ctx, "CATEGORY_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertCategoryFrom(c)})
}

func (s *Server) DeleteCategory(ctx echo.Context) error {
	var req ScopedIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "CATEGORY_DELETE", err)
	}
	storeID, id := req.ids()

	if err := s.server.DeleteCategory(ctx.Request().Context(), storeID, id); err != nil {
		return s.fail(ctx, "CATEGORY_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{Message: "Category deleted successfully"})
}
