package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Billboard struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Store     *Store    `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:RESTRICT"`
	Label     string    `gorm:"column:label;type:varchar(255);not null"`
	ImageURL  string    `gorm:"column:image_url;type:text;not null"`
	ImageID   string    `gorm:"column:image_id;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Billboard) TableName() string {
	return "billboards"
}

func (b *Billboard) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Billboard) ConvertToUsecase() usecase.Billboard {
	return usecase.Billboard{
		ID:        b.ID,
		StoreID:   b.StoreID,
		Label:     b.Label,
		ImageURL:  b.ImageURL,
		ImageID:   b.ImageID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (s *service) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]usecase.Billboard, error) {
	key := "store:" + storeID.String() + ":billboards"
	return cachedList(ctx, s.cache, key, func() ([]usecase.Billboard, error) {
		var billboards []Billboard
		err := s.db.WithContext(ctx).
			Where("store_id = ?", storeID).
			Order("created_at DESC").
			Find(&billboards).
			Error
		if err != nil {
			return nil, translate(err)
		}

		list := make([]usecase.Billboard, 0, len(billboards))
		for _, b := range billboards {
			list = append(list, b.ConvertToUsecase())
		}
		return list, nil
	})
}

func (s *service) GetBillboardByID(ctx context.Context, id uuid.UUID) (usecase.Billboard, error) {
	var b Billboard
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return usecase.Billboard{}, translate(err)
	}
	return b.ConvertToUsecase(), nil
}

func (s *service) CreateBillboard(ctx context.Context, billboard usecase.Billboard) (usecase.Billboard, error) {
	b := Billboard{
		StoreID:  billboard.StoreID,
		Label:    billboard.Label,
		ImageURL: billboard.ImageURL,
		ImageID:  billboard.ImageID,
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return usecase.Billboard{}, translate(err)
	}
	s.invalidate(ctx, b.StoreID)
	return b.ConvertToUsecase(), nil
}

func (s *service) UpdateBillboard(ctx context.Context, billboard usecase.Billboard) (usecase.Billboard, error) {
	tx := s.db.WithContext(ctx).
		Model(&Billboard{}).
		Where("id = ? AND store_id = ?", billboard.ID, billboard.StoreID).
		Updates(map[string]any{
			"label":     billboard.Label,
			"image_url": billboard.ImageURL,
			"image_id":  billboard.ImageID,
		})
	if err := affected(tx, translate); err != nil {
		return usecase.Billboard{}, err
	}
	s.invalidate(ctx, billboard.StoreID)
	return s.GetBillboardByID(ctx, billboard.ID)
}

// DeleteBillboard fails with ErrHasDependents while a category uses it.
func (s *service) DeleteBillboard(ctx context.Context, storeID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&Billboard{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}
