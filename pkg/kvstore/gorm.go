package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jlizarraga/healthybreads-backend/pkg/db"
	"github.com/jlizarraga/healthybreads-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records in the storage_records table.
type GormStore struct {
	conn *gorm.DB
}

// NewGormStore wraps the shared database client.
func NewGormStore(client *db.Client) (*GormStore, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &GormStore{conn: client.DB()}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.StorageRecord
	err := s.conn.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading record %q: %w", key, err)
	}
	return []byte(record.Value), nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := models.StorageRecord{Key: key, Value: string(value)}
	err := s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing record %q: %w", key, err)
	}
	return nil
}
