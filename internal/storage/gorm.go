package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/quest_academy/internal/models"
)

// GormScope keeps entries in the session_state table.
type GormScope struct {
	DB *gorm.DB
}

func NewGormScope(ctx context.Context, db *gorm.DB) (*GormScope, error) {
	if err := db.WithContext(ctx).AutoMigrate(&models.StateEntry{}); err != nil {
		return nil, fmt.Errorf("migrate session_state: %w", err)
	}
	return &GormScope{DB: db}, nil
}

func (s *GormScope) Get(ctx context.Context, key string) (string, error) {
	var entry models.StateEntry
	if err := s.DB.WithContext(ctx).Where("state_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *GormScope) Set(ctx context.Context, key, value string) error {
	entry := models.StateEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormScope) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Where("state_key IN ?", keys).Delete(&models.StateEntry{}).Error
}
