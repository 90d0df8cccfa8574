package service

import (
	"fmt"
	"time"

	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/repository"
)

// DeviceRegistry is the slice of the device bookkeeping the ingestion path
// needs: a consistent, uncached view of which devices exist.
type DeviceRegistry interface {
	Exists(deviceID string) (bool, error)
	FindByDeviceID(deviceID string) (*model.Device, error)
}

// LocationStore is the persistence handle injected into the service.
type LocationStore interface {
	Append(loc *model.Location) (int64, error)
	Latest(deviceID string) (*model.LocationWithDevice, error)
	LatestAll() ([]model.LocationWithDevice, error)
	History(deviceID string, limit int, from, to time.Time) ([]model.Location, error)
	DeleteAllFor(deviceID string) error
}

// Broadcaster fans accepted samples out to connected observers. Publish must
// never block the caller; delivery failures stay with the observer.
type Broadcaster interface {
	Publish(event *model.WSEvent)
}

// TrackingService is the gatekeeper for accepting location pings and the
// query surface over stored samples.
type TrackingService struct {
	registry    DeviceRegistry
	store       LocationStore
	broadcaster Broadcaster
}

func NewTrackingService(registry DeviceRegistry, store LocationStore, broadcaster Broadcaster) *TrackingService {
	return &TrackingService{
		registry:    registry,
		store:       store,
		broadcaster: broadcaster,
	}
}

// SubmitLocation validates and accepts one ping: registry check, append,
// broadcast, in that order. The broadcast is fire-and-forget; a slow or gone
// observer never fails the submit.
//
// The existence check and the append are two separate statements. A device
// deleted in between can still get this one sample appended; see the cascade
// in DeviceRepository.Delete for the other half of that race.
func (s *TrackingService) SubmitLocation(req model.SubmitLocationRequest) (*model.Location, error) {
	if req.DeviceID == "" || req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: device_id, latitude, and longitude are required", repository.ErrInvalidArgument)
	}

	exists, err := s.registry.Exists(req.DeviceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownDevice
	}

	loc := &model.Location{
		DeviceID:     req.DeviceID,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Speed:        req.Speed,
		Accuracy:     req.Accuracy,
		Altitude:     req.Altitude,
		Heading:      req.Heading,
		BatteryLevel: req.BatteryLevel,
		Timestamp:    time.Now().UTC(),
	}

	if _, err := s.store.Append(loc); err != nil {
		return nil, err
	}

	s.broadcaster.Publish(&model.WSEvent{
		Type:    model.WSEventLocationUpdate,
		Payload: loc,
	})

	return loc, nil
}

// Latest returns the most recently accepted sample for a device.
func (s *TrackingService) Latest(deviceID string) (*model.LocationWithDevice, error) {
	return s.store.Latest(deviceID)
}

// LatestAll returns the most recently accepted sample for every device that
// has at least one.
func (s *TrackingService) LatestAll() ([]model.LocationWithDevice, error) {
	return s.store.LatestAll()
}

// History returns a bounded, optionally time-ranged slice of a device's past
// samples, newest first.
func (s *TrackingService) History(deviceID string, limit int, from, to time.Time) ([]model.Location, error) {
	return s.store.History(deviceID, limit, from, to)
}
