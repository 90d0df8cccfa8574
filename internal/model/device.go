package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device represents a registered trackable vehicle
type Device struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	DeviceID    string    `json:"device_id" gorm:"uniqueIndex;not null;size:255"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	PhoneNumber string    `json:"phone_number,omitempty" gorm:"size:30"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns the primary key in code so inserts work on every driver
func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (Device) TableName() string {
	return "devices"
}
