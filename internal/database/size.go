package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Size struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Store     *Store    `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Value     string    `gorm:"column:value;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Size) TableName() string {
	return "sizes"
}

func (s *Size) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s Size) ConvertToUsecase() usecase.Size {
	return usecase.Size{
		ID:        s.ID,
		StoreID:   s.StoreID,
		Name:      s.Name,
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *service) ListSizes(ctx context.Context, storeID uuid.UUID) ([]usecase.Size, error) {
	key := "store:" + storeID.String() + ":sizes"
	return cachedList(ctx, s.cache, key, func() ([]usecase.Size, error) {
		var rows []Size
		err := s.db.WithContext(ctx).
			Where("store_id = ?", storeID).
			Order("created_at DESC").
			Find(&rows).
			Error
		if err != nil {
			return nil, translate(err)
		}

		list := make([]usecase.Size, 0, len(rows))
		for _, row := range rows {
			list = append(list, row.ConvertToUsecase())
		}
		return list, nil
	})
}

func (s *service) GetSizeByID(ctx context.Context, id uuid.UUID) (usecase.Size, error) {
	var row Size
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return usecase.Size{}, translate(err)
	}
	return row.ConvertToUsecase(), nil
}

func (s *service) CreateSize(ctx context.Context, size usecase.Size) (usecase.Size, error) {
	row := Size{
		StoreID: size.StoreID,
		Name:    size.Name,
		Value:   size.Value,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Size{}, translate(err)
	}
	s.invalidate(ctx, row.StoreID)
	return row.ConvertToUsecase(), nil
}

func (s *service) UpdateSize(ctx context.Context, size usecase.Size) (usecase.Size, error) {
	tx := s.db.WithContext(ctx).
		Model(&Size{}).
		Where("id = ? AND store_id = ?", size.ID, size.StoreID).
		Updates(map[string]any{
			"name":  size.Name,
			"value": size.Value,
		})
	if err := affected(tx, translate); err != nil {
		return usecase.Size{}, err
	}
	s.invalidate(ctx, size.StoreID)
	return s.GetSizeByID(ctx, size.ID)
}

func (s *service) DeleteSize(ctx context.Context, storeID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&Size{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}
