package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/waseem96525/GPStrackingapp/internal/model"
	"gorm.io/gorm"
)

// LocationRepository handles database operations for Location.
//
// Recency is decided by the autoincrement id, never by the client-influenced
// timestamp column: "latest sample for device D" is the row with the maximum
// id for D. Display ordering (LatestAll, History) sorts by timestamp for
// human readability. Both halves of that split are load-bearing.
type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Append persists one sample and returns the store-assigned id. The id comes
// from the table's sequence, so it is unique and strictly increasing under
// concurrent writers without any locking here.
func (r *LocationRepository) Append(loc *model.Location) (int64, error) {
	if err := r.db.Create(loc).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return loc.ID, nil
}

// Latest returns the max-id sample for a device, joined with the device name.
// ErrNotFound means the device has no samples; whether the device itself
// exists is the registry's business, not conflated here.
func (r *LocationRepository) Latest(deviceID string) (*model.LocationWithDevice, error) {
	var out model.LocationWithDevice
	err := r.db.Table("locations").
		Select("locations.*, devices.name AS vehicle_name").
		Joins("JOIN devices ON devices.device_id = locations.device_id").
		Where("locations.device_id = ?", deviceID).
		Order("locations.id DESC").
		Limit(1).
		Take(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &out, nil
}

// LatestAll returns exactly one sample per device that has at least one: the
// max-id row, joined with device name and phone number. Ordered by timestamp
// descending for display, tie-broken by device_id so repeated identical
// queries produce identical output.
func (r *LocationRepository) LatestAll() ([]model.LocationWithDevice, error) {
	rows := []model.LocationWithDevice{}
	subQuery := r.db.Table("locations").Select("MAX(id)").Group("device_id")
	err := r.db.Table("locations").
		Select("locations.*, devices.name AS vehicle_name, devices.phone_number").
		Joins("JOIN devices ON devices.device_id = locations.device_id").
		Where("locations.id IN (?)", subQuery).
		Order("locations.timestamp DESC").
		Order("locations.device_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return rows, nil
}

// History returns up to limit samples for a device with timestamp in
// [from, to], newest first. A zero from/to leaves that side unbounded.
// Non-positive limits are rejected, never silently unbounded.
func (r *LocationRepository) History(deviceID string, limit int, from, to time.Time) ([]model.Location, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidArgument)
	}

	query := r.db.Where("device_id = ?", deviceID)
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp <= ?", to)
	}

	locations := []model.Location{}
	err := query.
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return locations, nil
}

// DeleteAllFor removes every sample for a device. Idempotent: deleting for a
// device with no samples succeeds. Used by the registry's cascading delete.
func (r *LocationRepository) DeleteAllFor(deviceID string) error {
	err := r.db.Where("device_id = ?", deviceID).Delete(&model.Location{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
