package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

type Asset struct {
	ImageURL      string `json:"imageUrl"`
	ImageID       string `json:"imageId"`
	DominantColor string `json:"dominantColor,omitempty"`
}

type DeleteImageRequest struct {
	ImageID string `json:"imageId" validate:"required"`
}

// DeleteImage removes an uploaded image that is not attached to any
// record and returns the asset host's answer as is.
func (s *Server) DeleteImage(ctx echo.Context) error {
	var req DeleteImageRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "DELETE_IMAGE", err)
	}

	res, err := s.server.DeleteAsset(ctx.Request().Context(), req.ImageID)
	if err != nil {
		return s.fail(ctx, "DELETE_IMAGE", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: map[string]any{"deleted": res.Deleted}})
}

func (s *Server) UploadImage(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return s.fail(ctx, "UPLOAD_IMAGE", fmt.Errorf("%w: file is required", usecase.ErrValidation))
	}

	f, err := fh.Open()
	if err != nil {
		return s.fail(ctx, "UPLOAD_IMAGE", err)
	}
	defer f.Close()

	a, err := s.server.UploadAsset(ctx.Request().Context(), fh.Filename, f)
	if err != nil {
		return s.fail(ctx, "UPLOAD_IMAGE", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: Asset{
		ImageURL:      a.URL,
		ImageID:       a.ID,
		DominantColor: a.DominantColor,
	}})
}
