package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Category struct {
	ID          uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	StoreID     uuid.UUID  `gorm:"column:store_id;type:uuid;not null;index"`
	Store       *Store     `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	BillboardID uuid.UUID  `gorm:"column:billboard_id;type:uuid;not null;index"`
	Billboard   *Billboard `gorm:"foreignKey:BillboardID;references:ID;constraint:OnDelete:RESTRICT"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Category) ConvertToUsecase() usecase.Category {
	uc := usecase.Category{
		ID:          c.ID,
		StoreID:     c.StoreID,
		BillboardID: c.BillboardID,
		Name:        c.Name,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Billboard != nil {
		b := c.Billboard.ConvertToUsecase()
		uc.Billboard = &b
	}
	return uc
}

func (s *service) ListCategories(ctx context.Context, storeID uuid.UUID) ([]usecase.Category, error) {
	key := "store:" + storeID.String() + ":categories"
	return cachedList(ctx, s.cache, key, func() ([]usecase.Category, error) {
		var categories []Category
		err := s.db.WithContext(ctx).
			Preload("Billboard").
			Where("store_id = ?", storeID).
			Order("created_at DESC").
			Find(&categories).
			Error
		if err != nil {
			return nil, translate(err)
		}

		list := make([]usecase.Category, 0, len(categories))
		for _, c := range categories {
			list = append(list, c.ConvertToUsecase())
		}
		return list, nil
	})
}

func (s *service) GetCategoryByID(ctx context.Context, id uuid.UUID) (usecase.Category, error) {
	var c Category
	err := s.db.WithContext(ctx).
		Preload("Billboard").
		Where("id = ?", id).
		First(&c).
		Error
	if err != nil {
		return usecase.Category{}, translate(err)
	}
	return c.ConvertToUsecase(), nil
}

func (s *service) CreateCategory(ctx context.Context, category usecase.Category) (usecase.Category, error) {
	c := Category{
		StoreID:     category.StoreID,
		BillboardID: category.BillboardID,
		Name:        category.Name,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return usecase.Category{}, translate(err)
	}
	s.invalidate(ctx, c.StoreID)
	return c.ConvertToUsecase(), nil
}

func (s *service) UpdateCategory(ctx context.Context, category usecase.Category) (usecase.Category, error) {
	tx := s.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ? AND store_id = ?", category.ID, category.StoreID).
		Updates(map[string]any{
			"name":         category.Name,
			"billboard_id": category.BillboardID,
		})
	if err := affected(tx, translate); err != nil {
		return usecase.Category{}, err
	}
	s.invalidate(ctx, category.StoreID)
	return s.GetCategoryByID(ctx, category.ID)
}

// DeleteCategory fails with ErrHasDependents while a product uses it.
func (s *service) DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&Category{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}
