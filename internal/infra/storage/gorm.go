package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scm/internal/domain/model"
	"scm/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgreSQL（GORM）上のKVストア。変更通知は持たない。
type GormStorage struct {
	db *gorm.DB
}

// DI
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// ドキュメントテーブルを作成
func (s *GormStorage) Migrate() error {
	return s.db.AutoMigrate(&model.Document{})
}

func (s *GormStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var doc model.Document

	err := s.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}
	return doc.Value, true, nil
}

// 同じキーは丸ごと上書き（upsert）
func (s *GormStorage) SetItem(ctx context.Context, key string, value string) error {
	doc := model.Document{Key: key, Value: value, UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}
	return nil
}

var _ repository.Storage = (*GormStorage)(nil)
