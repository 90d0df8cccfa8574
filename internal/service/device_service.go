package service

import (
	"github.com/waseem96525/GPStrackingapp/internal/model"
)

// DeviceStore is the registry-side persistence handle.
type DeviceStore interface {
	Create(device *model.Device) error
	FindByDeviceID(deviceID string) (*model.Device, error)
	List() ([]model.Device, error)
	Delete(deviceID string) error
}

// DeviceService handles device registration bookkeeping.
type DeviceService struct {
	devices DeviceStore
}

func NewDeviceService(devices DeviceStore) *DeviceService {
	return &DeviceService{devices: devices}
}

// Register creates a device record for a new physical device.
func (s *DeviceService) Register(req model.RegisterVehicleRequest) (*model.Device, error) {
	device := &model.Device{
		DeviceID:    req.DeviceID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.devices.Create(device); err != nil {
		return nil, err
	}
	return device, nil
}

// List returns all registered devices, newest first.
func (s *DeviceService) List() ([]model.Device, error) {
	return s.devices.List()
}

// Delete removes a device together with its location history. The store
// performs both deletes in one transaction, samples first.
func (s *DeviceService) Delete(deviceID string) error {
	return s.devices.Delete(deviceID)
}
