// Package state provides the durable key-value slots the ledger persists
// into. Each slot holds one JSON blob under a stable key.
package state

import (
	"errors"

	"nestegg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSlotNotFound is returned by Load when no blob exists under the key.
var ErrSlotNotFound = errors.New("state: slot not found")

// Store reads and writes named blobs.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// gormStore persists slots in the state_slots table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the given database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Load(key string) ([]byte, error) {
	var slot models.StateSlot
	if err := s.db.First(&slot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot.Value, nil
}

func (s *gormStore) Save(key string, value []byte) error {
	slot := models.StateSlot{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}
