package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Color struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Store     *Store    `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Value     string    `gorm:"column:value;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Color) TableName() string {
	return "colors"
}

func (c *Color) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Color) ConvertToUsecase() usecase.Color {
	return usecase.Color{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Value:     c.Value,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (s *service) ListColors(ctx context.Context, storeID uuid.UUID) ([]usecase.Color, error) {
	key := "store:" + storeID.String() + ":colors"
	return cachedList(ctx, s.cache, key, func() ([]usecase.Color, error) {
		var rows []Color
		err := s.db.WithContext(ctx).
			Where("store_id = ?", storeID).
			Order("created_at DESC").
			Find(&rows).
			Error
		if err != nil {
			return nil, translate(err)
		}

		list := make([]usecase.Color, 0, len(rows))
		for _, row := range rows {
			list = append(list, row.ConvertToUsecase())
		}
		return list, nil
	})
}

func (s *service) GetColorByID(ctx context.Context, id uuid.UUID) (usecase.Color, error) {
	var row Color
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return usecase.Color{}, translate(err)
	}
	return row.ConvertToUsecase(), nil
}

func (s *service) CreateColor(ctx context.Context, color usecase.Color) (usecase.Color, error) {
	row := Color{
		StoreID: color.StoreID,
		Name:    color.Name,
		Value:   color.Value,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Color{}, translate(err)
	}
	s.invalidate(ctx, row.StoreID)
	return row.ConvertToUsecase(), nil
}

func (s *service) UpdateColor(ctx context.Context, color usecase.Color) (usecase.Color, error) {
	tx := s.db.WithContext(ctx).
		Model(&Color{}).
		Where("id = ? AND store_id = ?", color.ID, color.StoreID).
		Updates(map[string]any{
			"name":  color.Name,
			"value": color.Value,
		})
	if err := affected(tx, translate); err != nil {
		return usecase.Color{}, err
	}
	s.invalidate(ctx, color.StoreID)
	return s.GetColorByID(ctx, color.ID)
}

func (s *service) DeleteColor(ctx context.Context, storeID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&Color{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}
