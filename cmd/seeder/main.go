package main

import (
	"fmt"
	"log"
	"time"

	"github.com/waseem96525/GPStrackingapp/internal/config"
	"github.com/waseem96525/GPStrackingapp/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Create 5 demo vehicles
	log.Println("🌱 Seeding 5 vehicles...")

	for i := 1; i <= 5; i++ {
		deviceID := fmt.Sprintf("gps-%d", i)

		// Check if exists
		var existing model.Device
		if err := db.Where("device_id = ?", deviceID).First(&existing).Error; err == nil {
			continue
		}

		device := model.Device{
			DeviceID:    deviceID,
			Name:        fmt.Sprintf("Vehicle %d", i),
			PhoneNumber: fmt.Sprintf("+1555000%04d", i),
		}

		if err := db.Create(&device).Error; err != nil {
			log.Printf("❌ Failed to create vehicle %s: %v", deviceID, err)
			continue
		}
		log.Printf("✅ Created vehicle: %s (%s)", device.Name, deviceID)

		seedTrail(db, deviceID, i)
	}

	log.Println("🎉 Seeding completed!")
}

// seedTrail inserts a short location trail heading north-east from a base
// point, one ping per minute ending now.
func seedTrail(db *gorm.DB, deviceID string, offset int) {
	const points = 10
	baseLat := 37.7749 + float64(offset)*0.01
	baseLon := -122.4194 - float64(offset)*0.01

	now := time.Now().UTC()
	for i := 0; i < points; i++ {
		battery := 100 - i*3
		loc := model.Location{
			DeviceID:     deviceID,
			Latitude:     baseLat + float64(i)*0.001,
			Longitude:    baseLon + float64(i)*0.001,
			Speed:        float64(20 + i),
			BatteryLevel: &battery,
			Timestamp:    now.Add(-time.Duration(points-1-i) * time.Minute),
		}
		if err := db.Create(&loc).Error; err != nil {
			log.Printf("❌ Failed to create location for %s: %v", deviceID, err)
			return
		}
	}
	log.Printf("📍 Seeded %d locations for %s", points, deviceID)
}
