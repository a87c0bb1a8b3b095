package localstore

import (
	"context"
	"errors"
	"time"

	"admin-console/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps slots as rows of the local_slots table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Get(ctx context.Context, name string) ([]byte, error) {
	var slot models.LocalSlot
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return slot.Value, nil
}

func (s *GormStore) Put(ctx context.Context, name string, value []byte) error {
	slot := models.LocalSlot{
		Name:      name,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func (s *GormStore) Delete(ctx context.Context, name string) error {
	return s.DB.WithContext(ctx).Where("name = ?", name).Delete(&models.LocalSlot{}).Error
}
