package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Billboard struct {
	ID        string `json:"id"`
	StoreID   string `json:"storeId"`
	Label     string `json:"label"`
	ImageURL  string `json:"imageUrl"`
	ImageID   string `json:"imageId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func ConvertBillboardFrom(b usecase.Billboard) Billboard {
	return Billboard{
		ID:        b.ID.String(),
		StoreID:   b.StoreID.String(),
		Label:     b.Label,
		ImageURL:  b.ImageURL,
		ImageID:   b.ImageID,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) ListBillboards(ctx echo.Context) error {
	var req StoreIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "BILLBOARDS_GET", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	billboards, err := s.server.ListBillboards(ctx.Request().Context(), storeID)
	if err != nil {
		return s.fail(ctx, "BILLBOARDS_GET", err)
	}

	list := make([]Billboard, 0, len(billboards))
	for _, b := range billboards {
		list = append(list, ConvertBillboardFrom(b))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

func (s *Server) GetBillboardByID(ctx echo.Context) error {
	var req IDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "BILLBOARD_GET", err)
	}
	id, _ := uuid.Parse(req.ID)

	b, err := s.server.GetBillboardByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "BILLBOARD_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertBillboardFrom(b)})
}

type CreateBillboardRequest struct {
	StoreID  string `json:"-" param:"storeId" validate:"required,uuid"`
	Label    string `json:"label" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
	ImageID  string `json:"imageId"`
}

func (s *Server) CreateBillboard(ctx echo.Context) error {
	var req CreateBillboardRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "BILLBOARDS_POST", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	b, err := s.server.CreateBillboard(ctx.Request().Context(), storeID, usecase.Billboard{
		Label:    req.Label,
		ImageURL: req.ImageURL,
		ImageID:  req.ImageID,
	})
	if err != nil {
		return s.fail(ctx, "BILLBOARDS_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertBillboardFrom(b)})
}

type UpdateBillboardRequest struct {
	ScopedIDRequest
	Label    string `json:"label" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
	ImageID  string `json:"imageId"`
}

func (s *Server) UpdateBillboard(ctx echo.Context) error {
	var req UpdateBillboardRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "BILLBOARD_PATCH", err)
	}
	storeID, id := req.ids()

	b, err := s.server.UpdateBillboard(ctx.Request().Context(), storeID, usecase.Billboard{
		ID:       id,
		Label:    req.Label,
		ImageURL: req.ImageURL,
		ImageID:  req.ImageID,
	})
	if err != nil {
		return s.fail(ctx, "BILLBOARD_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertBillboardFrom(b)})
}

func (s *Server) DeleteBillboard(ctx echo.Context) error {
	var req ScopedIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "BILLBOARD_DELETE", err)
	}
	storeID, id := req.ids()

	cleanup, err := s.server.DeleteBillboard(ctx.Request().Context(), storeID, id)
	if err != nil {
		return s.fail(ctx, "BILLBOARD_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{
		Data:    ConvertCleanupFrom(cleanup),
		Message: "Billboard deleted successfully",
	})
}
