package models

import "time"

// KVEntry is one persisted key-value pair.
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (e *KVEntry) TableName() string {
	return "kv_entries"
}
