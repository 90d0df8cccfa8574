package model

import "time"

// Location represents one persisted GPS observation for a device.
// ID is assigned by the store sequence and is strictly increasing; it is the
// authoritative recency ordering ("latest" means max ID), because client
// timestamps are subject to clock skew. Timestamp is still what display
// queries sort by.
type Location struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DeviceID     string    `json:"device_id" gorm:"index:idx_device_timestamp,priority:1;not null;size:255"`
	Latitude     float64   `json:"latitude" gorm:"not null"`
	Longitude    float64   `json:"longitude" gorm:"not null"`
	Speed        float64   `json:"speed" gorm:"default:0"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
	Altitude     *float64  `json:"altitude,omitempty"`
	Heading      *float64  `json:"heading,omitempty"`
	BatteryLevel *int      `json:"battery_level,omitempty"`
	Timestamp    time.Time `json:"timestamp" gorm:"index:idx_device_timestamp,priority:2,sort:desc;not null"`
}

func (Location) TableName() string {
	return "locations"
}

// LocationWithDevice is a Location joined with its device's display fields,
// returned by the latest-location queries.
type LocationWithDevice struct {
	Location    `gorm:"embedded"`
	VehicleName string `json:"vehicle_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
