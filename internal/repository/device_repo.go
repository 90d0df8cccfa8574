package repository

import (
	"errors"
	"fmt"

	"github.com/waseem96525/GPStrackingapp/internal/model"
	"gorm.io/gorm"
)

// DeviceRepository handles database operations for Device
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Create registers a new device
func (r *DeviceRepository) Create(device *model.Device) error {
	var count int64
	if err := r.db.Model(&model.Device{}).
		Where("device_id = ?", device.DeviceID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if count > 0 {
		return ErrDeviceExists
	}

	if err := r.db.Create(device).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDeviceExists
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// FindByDeviceID finds a device by its opaque device_id
func (r *DeviceRepository) FindByDeviceID(deviceID string) (*model.Device, error) {
	var device model.Device
	err := r.db.Where("device_id = ?", deviceID).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &device, nil
}

// Exists reports whether a device_id is registered. Each call reads current
// database state; nothing is cached.
func (r *DeviceRepository) Exists(deviceID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Device{}).
		Where("device_id = ?", deviceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

// List returns all registered devices, newest first
func (r *DeviceRepository) List() ([]model.Device, error) {
	devices := []model.Device{}
	err := r.db.Order("created_at DESC").Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return devices, nil
}

// Delete removes a device and all of its location samples. The two deletes
// run in one transaction, locations first, so a concurrent reader never sees
// samples that outlive their device record.
func (r *DeviceRepository) Delete(deviceID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", deviceID).Delete(&model.Location{}).Error; err != nil {
			return err
		}

		res := tx.Where("device_id = ?", deviceID).Delete(&model.Device{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
