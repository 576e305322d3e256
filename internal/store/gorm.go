package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mx-space/linkpage/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps blobs in the options table, one row per key.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Load(ctx context.Context, key string) ([]byte, error) {
	var opt models.OptionModel
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(opt.Value), nil
}

func (s *GormStore) Save(ctx context.Context, key string, value []byte) error {
	opt := models.OptionModel{Name: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&opt).Error
}
