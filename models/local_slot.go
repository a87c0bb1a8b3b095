package models

import "time"

// LocalSlot is a named blob in the console's own database. Each slot is read
// and overwritten whole.
type LocalSlot struct {
	Name      string    `gorm:"primaryKey;size:191" json:"name"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LocalSlot) TableName() string {
	return "local_slots"
}
