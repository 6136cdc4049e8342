package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Product struct {
	ID         uuid.UUID       `gorm:"column:id;primaryKey;type:uuid"`
	StoreID    uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	Store      *Store          `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category   *Category       `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	SizeID     uuid.UUID       `gorm:"column:size_id;type:uuid;not null;index"`
	Size       *Size           `gorm:"foreignKey:SizeID;references:ID;constraint:OnDelete:RESTRICT"`
	ColorID    uuid.UUID       `gorm:"column:color_id;type:uuid;not null;index"`
	Color      *Color          `gorm:"foreignKey:ColorID;references:ID;constraint:OnDelete:RESTRICT"`
	Name       string          `gorm:"column:name;type:varchar(255);not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	IsFeatured bool            `gorm:"column:is_featured;default:false"`
	IsArchived bool            `gorm:"column:is_archived;default:false"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`

	Images []Image `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Image struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	ImageURL  string    `gorm:"column:image_url;type:text;not null"`
	ImageID   string    `gorm:"column:image_id;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i Image) ConvertToUsecase() usecase.Image {
	return usecase.Image{
		ID:        i.ID,
		ProductID: i.ProductID,
		ImageURL:  i.ImageURL,
		ImageID:   i.ImageID,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (p Product) ConvertToUsecase() usecase.Product {
	up := usecase.Product{
		ID:         p.ID,
		StoreID:    p.StoreID,
		CategoryID: p.CategoryID,
		SizeID:     p.SizeID,
		ColorID:    p.ColorID,
		Name:       p.Name,
		Price:      p.Price,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Images:     make([]usecase.Image, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		up.Images = append(up.Images, img.ConvertToUsecase())
	}
	if p.Category != nil {
		c := p.Category.ConvertToUsecase()
		up.Category = &c
	}
	if p.Size != nil {
		s := p.Size.ConvertToUsecase()
		up.Size = &s
	}
	if p.Color != nil {
		c := p.Color.ConvertToUsecase()
		up.Color = &c
	}
	return up
}

func newImages(productID uuid.UUID, images []usecase.Image) []Image {
	rows := make([]Image, 0, len(images))
	for _, img := range images {
		rows = append(rows, Image{
			ProductID: productID,
			ImageURL:  img.ImageURL,
			ImageID:   img.ImageID,
		})
	}
	return rows
}

func withProductRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.created_at ASC")
		}).
		Preload("Category").
		Preload("Size").
		Preload("Color")
}

func productsKey(opt usecase.ListProductsOption) string {
	featured := "any"
	if opt.IsFeatured != nil {
		featured = fmt.Sprint(*opt.IsFeatured)
	}
	return fmt.Sprintf("store:%s:products:c=%s:s=%s:co=%s:f=%s:a=%t",
		opt.StoreID, opt.CategoryID, opt.SizeID, opt.ColorID, featured, opt.IncludeArchived)
}

func (s *service) ListProducts(ctx context.Context, opt usecase.ListProductsOption) ([]usecase.Product, error) {
	return cachedList(ctx, s.cache, productsKey(opt), func() ([]usecase.Product, error) {
		db := withProductRelations(s.db.WithContext(ctx)).
			Where("store_id = ?", opt.StoreID)

		if opt.CategoryID != uuid.Nil {
			db = db.Where("category_id = ?", opt.CategoryID)
		}
		if opt.SizeID != uuid.Nil {
			db = db.Where("size_id = ?", opt.SizeID)
		}
		if opt.ColorID != uuid.Nil {
			db = db.Where("color_id = ?", opt.ColorID)
		}
		if opt.IsFeatured != nil {
			db = db.Where("is_featured = ?", *opt.IsFeatured)
		}
		if !opt.IncludeArchived {
			db = db.Where("is_archived = ?", false)
		}

		var products []Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			return nil, translate(err)
		}

		list := make([]usecase.Product, 0, len(products))
		for _, p := range products {
			list = append(list, p.ConvertToUsecase())
		}
		return list, nil
	})
}

func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (usecase.Product, error) {
	var p Product
	err := withProductRelations(s.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&p).
		Error
	if err != nil {
		return usecase.Product{}, translate(err)
	}
	return p.ConvertToUsecase(), nil
}

func (s *service) CreateProduct(ctx context.Context, product usecase.Product) (usecase.Product, error) {
	p := Product{
		StoreID:    product.StoreID,
		CategoryID: product.CategoryID,
		SizeID:     product.SizeID,
		ColorID:    product.ColorID,
		Name:       product.Name,
		Price:      product.Price,
		IsFeatured: product.IsFeatured,
		IsArchived: product.IsArchived,
		Images:     newImages(uuid.Nil, product.Images),
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return usecase.Product{}, translate(err)
	}
	s.invalidate(ctx, p.StoreID)
	return s.GetProductByID(ctx, p.ID)
}

// UpdateProduct clears the image set and inserts the new one in the same
// transaction as the field update, so readers never see a product without
// images.
func (s *service) UpdateProduct(ctx context.Context, product usecase.Product) (usecase.Product, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Product{}).
			Where("id = ? AND store_id = ?", product.ID, product.StoreID).
			Updates(map[string]any{
				"name":        product.Name,
				"price":       product.Price,
				"category_id": product.CategoryID,
				"size_id":     product.SizeID,
				"color_id":    product.ColorID,
				"is_featured": product.IsFeatured,
				"is_archived": product.IsArchived,
			})
		if err := affected(res, translate); err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&Image{}).Error; err != nil {
			return translate(err)
		}

		images := newImages(product.ID, product.Images)
		if len(images) == 0 {
			return nil
		}
		return translate(tx.Create(&images).Error)
	})
	if err != nil {
		return usecase.Product{}, err
	}

	s.invalidate(ctx, product.StoreID)
	return s.GetProductByID(ctx, product.ID)
}

// DeleteProduct removes the product; its images go with it.
func (s *service) DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&Product{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}
