package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/waseem96525/GPStrackingapp/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.Device{}, &model.Location{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func mustRegister(t *testing.T, devices *DeviceRepository, deviceID, name string) {
	t.Helper()
	err := devices.Create(&model.Device{DeviceID: deviceID, Name: name, PhoneNumber: "+15550001234"})
	if err != nil {
		t.Fatalf("register %s: %v", deviceID, err)
	}
}

func mustAppend(t *testing.T, locations *LocationRepository, deviceID string, lat, lon float64, ts time.Time) int64 {
	t.Helper()
	id, err := locations.Append(&model.Location{
		DeviceID:  deviceID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("append for %s: %v", deviceID, err)
	}
	return id
}
