package models

import "time"

// StateSlot is a durable key-value slot holding a JSON blob. The ledger
// persists its investment and transaction collections into two slots keyed
// by collection name.
type StateSlot struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
