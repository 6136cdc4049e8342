package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeease/storeease/internal/usecase"
)

type Store struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	UserID    string    `gorm:"column:user_id;type:varchar(255);not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Store) TableName() string {
	return "stores"
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s Store) ConvertToUsecase() usecase.Store {
	return usecase.Store{
		ID:        s.ID,
		Name:      s.Name,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *service) ListStores(ctx context.Context, opt usecase.ListStoresOption) ([]usecase.Store, error) {
	var stores []Store

	err := s.db.WithContext(ctx).
		Where("user_id = ?", opt.UserID).
		Order("created_at DESC").
		Find(&stores).
		Error
	if err != nil {
		return nil, translate(err)
	}

	list := make([]usecase.Store, 0, len(stores))
	for _, st := range stores {
		list = append(list, st.ConvertToUsecase())
	}
	return list, nil
}

func (s *service) GetStoreByID(ctx context.Context, id uuid.UUID) (usecase.Store, error) {
	var st Store
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error; err != nil {
		return usecase.Store{}, translate(err)
	}
	return st.ConvertToUsecase(), nil
}

func (s *service) CreateStore(ctx context.Context, store usecase.Store) (usecase.Store, error) {
	st := Store{
		Name:   store.Name,
		UserID: store.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return usecase.Store{}, translate(err)
	}
	return st.ConvertToUsecase(), nil
}

func (s *service) UpdateStore(ctx context.Context, store usecase.Store) (usecase.Store, error) {
	tx := s.db.WithContext(ctx).
		Model(&Store{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{"name": store.Name})
	if err := affected(tx, translate); err != nil {
		return usecase.Store{}, err
	}
	return s.GetStoreByID(ctx, store.ID)
}

func (s *service) DeleteStore(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Store{})
	if err := affected(tx, translateDelete); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}
