package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storeease/storeease/internal/usecase"
)

// dependentsHint tells the caller what blocks a delete, keyed by the
// entity part of the operation tag.
var dependentsHint = map[string]string{
	"STORE":     "Make sure you removed all products and categories first.",
	"BILLBOARD": "Make sure you removed all categories using this billboard first.",
	"CATEGORY":  "Make sure you removed all products using this category first.",
	"SIZE":      "Make sure you removed all products using this size first.",
	"COLOR":     "Make sure you removed all products using this color first.",
}

// bind decodes the request into req and validates its tags. Failures are
// reported as validation errors.
func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrValidation, err)
	}
	if err := s.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrValidation, err)
	}
	return nil
}

// fail maps an error kind to its status. Unclassified errors are logged
// under tag, e.g. "BILLBOARD_PATCH", and hidden from the caller.
func (s *Server) fail(ctx echo.Context, tag string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return ctx.JSON(http.StatusBadRequest, Res{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnauthenticated):
		return ctx.JSON(http.StatusUnauthorized, Res{Error: "Unauthenticated"})
	case errors.Is(err, usecase.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, Res{Error: "Unauthorized"})
	case errors.Is(err, usecase.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, Res{Error: "Not found"})
	case errors.Is(err, usecase.ErrHasDependents):
		entity, _, _ := strings.Cut(tag, "_")
		return ctx.JSON(http.StatusConflict, Res{
			Error:   usecase.ErrHasDependents.Error(),
			Message: dependentsHint[entity],
		})
	}

	s.logger.ErrorContext(ctx.Request().Context(), "["+tag+"]", slog.String("err", err.Error()))
	return ctx.JSON(http.StatusInternalServerError, Res{Error: "Internal error"})
}
