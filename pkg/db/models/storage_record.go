package models

import "time"

// StorageRecord is one whole-value JSON record under a fixed key. The catalog
// snapshot and the order ledger each live in exactly one row, overwritten
// wholesale on every write.
type StorageRecord struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageRecord) TableName() string {
	return "storage_records"
}
