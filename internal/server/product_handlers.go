package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/storeease/storeease/internal/usecase"
)

type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	ImageURL  string `json:"imageUrl"`
	ImageID   string `json:"imageId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Product struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"storeId"`
	CategoryID string          `json:"categoryId"`
	SizeID     string          `json:"sizeId"`
	ColorID    string          `json:"colorId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsFeatured bool            `json:"isFeatured"`
	IsArchived bool            `json:"isArchived"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`

	Images   []Image   `json:"images"`
	Category *Category `json:"category,omitempty"`
	Size     *Size     `json:"size,omitempty"`
	Color    *Color    `json:"color,omitempty"`
}

func ConvertProductFrom(p usecase.Product) Product {
	prod := Product{
		ID:         p.ID.String(),
		StoreID:    p.StoreID.String(),
		CategoryID: p.CategoryID.String(),
		SizeID:     p.SizeID.String(),
		ColorID:    p.ColorID.String(),
		Name:       p.Name,
		Price:      p.Price,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
		Images:     make([]Image, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		prod.Images = append(prod.Images, Image{
			ID:        img.ID.String(),
			ProductID: img.ProductID.String(),
			ImageURL:  img.ImageURL,
			ImageID:   img.ImageID,
			CreatedAt: img.CreatedAt.Format(time.RFC3339),
			UpdatedAt: img.UpdatedAt.Format(time.RFC3339),
		})
	}
	if p.Category != nil {
		c := ConvertCategoryFrom(*p.Category)
		prod.Category = &c
	}
	if p.Size != nil {
		sz := ConvertSizeFrom(*p.Size)
		prod.Size = &sz
	}
	if p.Color != nil {
		co := ConvertColorFrom(*p.Color)
		prod.Color = &co
	}
	return prod
}

type ListProductsRequest struct {
	StoreID         string `json:"-" param:"storeId" validate:"required,uuid"`
	CategoryID      string `query:"categoryId" validate:"omitempty,uuid"`
	SizeID          string `query:"sizeId" validate:"omitempty,uuid"`
	ColorID         string `query:"colorId" validate:"omitempty,uuid"`
	IsFeatured      string `query:"isFeatured" validate:"omitempty,oneof=true false"`
	IncludeArchived bool   `query:"includeArchived"`
}

func (s *Server) ListProducts(ctx echo.Context) error {
	var req ListProductsRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "PRODUCTS_GET", err)
	}

	opt := usecase.ListProductsOption{IncludeArchived: req.IncludeArchived}
	opt.StoreID, _ = uuid.Parse(req.StoreID)
	if req.CategoryID != "" {
		opt.CategoryID, _ = uuid.Parse(req.CategoryID)
	}
	if req.SizeID != "" {
		opt.SizeID, _ = uuid.Parse(req.SizeID)
	}
	if req.ColorID != "" {
		opt.ColorID, _ = uuid.Parse(req.ColorID)
	}
	if req.IsFeatured != "" {
		featured, _ := strconv.ParseBool(req.IsFeatured)
		opt.IsFeatured = &featured
	}

	products, err := s.server.ListProducts(ctx.Request().Context(), opt)
	if err != nil {
		return s.fail(ctx, "PRODUCTS_GET", err)
	}

	list := make([]Product, 0, len(products))
	for _, p := range products {
		list = append(list, ConvertProductFrom(p))
	}

	return ctx.JSON(http.StatusOK, Res{Data: list, Meta: &Meta{Total: len(list)}})
}

func (s *Server) GetProductByID(ctx echo.Context) error {
	var req IDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "PRODUCT_GET", err)
	}
	id, _ := uuid.Parse(req.ID)

	p, err := s.server.GetProductByID(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, "PRODUCT_GET", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertProductFrom(p)})
}

type ProductImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	ImageID  string `json:"imageId"`
}

// ProductPayload is the body shared by product create and update. Price is
// checked by the usecase so that a zero price reads as missing.
type ProductPayload struct {
	Name       string                `json:"name" validate:"required"`
	Price      decimal.Decimal       `json:"price"`
	CategoryID string                `json:"categoryId" validate:"required,uuid"`
	SizeID     string                `json:"sizeId" validate:"required,uuid"`
	ColorID    string                `json:"colorId" validate:"required,uuid"`
	Images     []ProductImageRequest `json:"images" validate:"required,min=1,dive"`
	IsFeatured bool                  `json:"isFeatured"`
	IsArchived bool                  `json:"isArchived"`
}

func (r ProductPayload) product(id uuid.UUID) usecase.Product {
	p := usecase.Product{
		ID:         id,
		Name:       r.Name,
		Price:      r.Price,
		IsFeatured: r.IsFeatured,
		IsArchived: r.IsArchived,
		Images:     make([]usecase.Image, 0, len(r.Images)),
	}
	p.CategoryID, _ = uuid.Parse(r.CategoryID)
	p.SizeID, _ = uuid.Parse(r.SizeID)
	p.ColorID, _ = uuid.Parse(r.ColorID)
	for _, img := range r.Images {
		p.Images = append(p.Images, usecase.Image{ImageURL: img.ImageURL, ImageID: img.ImageID})
	}
	return p
}

type CreateProductRequest struct {
	StoreID string `json:"-" param:"storeId" validate:"required,uuid"`
	ProductPayload
}

func (s *Server) CreateProduct(ctx echo.Context) error {
	var req CreateProductRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "PRODUCTS_POST", err)
	}
	storeID, _ := uuid.Parse(req.StoreID)

	p, err := s.server.CreateProduct(ctx.Request().Context(), storeID, req.product(uuid.Nil))
	if err != nil {
		return s.fail(ctx, "PRODUCTS_POST", err)
	}

	return ctx.JSON(http.StatusCreated, Res{Data: ConvertProductFrom(p)})
}

type UpdateProductRequest struct {
	ScopedIDRequest
	ProductPayload
}

func (s *Server) UpdateProduct(ctx echo.Context) error {
	var req UpdateProductRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "PRODUCT_PATCH", err)
	}
	storeID, id := req.ids()

	p, err := s.server.UpdateProduct(ctx.Request().Context(), storeID, req.product(id))
	if err != nil {
		return s.fail(ctx, "PRODUCT_PATCH", err)
	}

	return ctx.JSON(http.StatusOK, Res{Data: ConvertProductFrom(p)})
}

func (s *Server) DeleteProduct(ctx echo.Context) error {
	var req ScopedIDRequest
	if err := s.bind(ctx, &req); err != nil {
		return s.fail(ctx, "PRODUCT_DELETE", err)
	}
	storeID, id := req.ids()

	cleanup, err := s.server.DeleteProduct(ctx.Request().Context(), storeID, id)
	if err != nil {
		return s.fail(ctx, "PRODUCT_DELETE", err)
	}

	return ctx.JSON(http.StatusOK, Res{
		Data:    ConvertCleanupFrom(cleanup),
		Message: "Product deleted successfully",
	})
}
