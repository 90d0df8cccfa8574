package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/repository"
)

// mockRegistry is an in-memory DeviceRegistry for testing.
type mockRegistry struct {
	devices map[string]*model.Device
	mu      sync.RWMutex
}

func newMockRegistry(deviceIDs ...string) *mockRegistry {
	m := &mockRegistry{devices: make(map[string]*model.Device)}
	for _, id := range deviceIDs {
		m.devices[id] = &model.Device{DeviceID: id, Name: "Vehicle " + id}
	}
	return m
}

func (m *mockRegistry) Exists(deviceID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.devices[deviceID]
	return ok, nil
}

func (m *mockRegistry) FindByDeviceID(deviceID string) (*model.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.devices[deviceID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

// mockStore is an in-memory LocationStore for testing.
type mockStore struct {
	appended   []*model.Location
	nextID     int64
	failAppend bool
	mu         sync.Mutex
}

func (m *mockStore) Append(loc *model.Location) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend {
		return 0, repository.ErrStoreUnavailable
	}
	m.nextID++
	loc.ID = m.nextID
	m.appended = append(m.appended, loc)
	return loc.ID, nil
}

func (m *mockStore) Latest(deviceID string) (*model.LocationWithDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.appended) - 1; i >= 0; i-- {
		if m.appended[i].DeviceID == deviceID {
			return &model.LocationWithDevice{Location: *m.appended[i]}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) LatestAll() ([]model.LocationWithDevice, error) {
	return nil, nil
}

func (m *mockStore) History(deviceID string, limit int, from, to time.Time) ([]model.Location, error) {
	if limit <= 0 {
		return nil, repository.ErrInvalidArgument
	}
	return nil, nil
}

func (m *mockStore) DeleteAllFor(deviceID string) error {
	return nil
}

// mockBroadcaster records published events.
type mockBroadcaster struct {
	events []*model.WSEvent
	mu     sync.Mutex
}

func (m *mockBroadcaster) Publish(event *model.WSEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockBroadcaster) published() []*model.WSEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

func floatPtr(v float64) *float64 { return &v }

func TestSubmitLocationRejectsMissingFields(t *testing.T) {
	store := &mockStore{}
	broadcaster := &mockBroadcaster{}
	svc := NewTrackingService(newMockRegistry("gps-1"), store, broadcaster)

	cases := []model.SubmitLocationRequest{
		{Latitude: floatPtr(37.0), Longitude: floatPtr(-122.0)},
		{DeviceID: "gps-1", Longitude: floatPtr(-122.0)},
		{DeviceID: "gps-1", Latitude: floatPtr(37.0)},
	}
	for i, req := range cases {
		if _, err := svc.SubmitLocation(req); !errors.Is(err, repository.ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}

	if len(store.appended) != 0 {
		t.Fatalf("expected no samples stored, got %d", len(store.appended))
	}
	if len(broadcaster.published()) != 0 {
		t.Fatalf("expected no broadcasts, got %d", len(broadcaster.published()))
	}
}

func TestSubmitLocationAcceptsZeroCoordinates(t *testing.T) {
	store := &mockStore{}
	svc := NewTrackingService(newMockRegistry("gps-1"), store, &mockBroadcaster{})

	// 0 is a present coordinate, and no range validation is performed.
	req := model.SubmitLocationRequest{
		DeviceID:  "gps-1",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(999.0),
	}
	loc, err := svc.SubmitLocation(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if loc.Latitude != 0 || loc.Longitude != 999.0 {
		t.Fatalf("expected coordinates stored as-is, got (%f, %f)", loc.Latitude, loc.Longitude)
	}
}

func TestSubmitLocationUnknownDevice(t *testing.T) {
	store := &mockStore{}
	broadcaster := &mockBroadcaster{}
	svc := NewTrackingService(newMockRegistry(), store, broadcaster)

	req := model.SubmitLocationRequest{
		DeviceID:  "ghost",
		Latitude:  floatPtr(37.0),
		Longitude: floatPtr(-122.0),
	}
	if _, err := svc.SubmitLocation(req); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("expected ErrUnknownDevice, got %v", err)
	}

	if len(store.appended) != 0 {
		t.Fatal("rejected submit must not store a sample")
	}
	if len(broadcaster.published()) != 0 {
		t.Fatal("rejected submit must not broadcast")
	}
}

func TestSubmitLocationPersistsThenBroadcasts(t *testing.T) {
	store := &mockStore{}
	broadcaster := &mockBroadcaster{}
	svc := NewTrackingService(newMockRegistry("gps-1"), store, broadcaster)

	battery := 87
	req := model.SubmitLocationRequest{
		DeviceID:     "gps-1",
		Latitude:     floatPtr(37.7749),
		Longitude:    floatPtr(-122.4194),
		Speed:        12.5,
		Accuracy:     floatPtr(4.2),
		BatteryLevel: &battery,
	}

	before := time.Now().UTC()
	loc, err := svc.SubmitLocation(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if loc.ID != 1 {
		t.Fatalf("expected first sample id 1, got %d", loc.ID)
	}
	if loc.DeviceID != "gps-1" || loc.Latitude != 37.7749 || loc.Speed != 12.5 {
		t.Fatalf("sample fields not carried through: %+v", loc)
	}
	if loc.BatteryLevel == nil || *loc.BatteryLevel != 87 {
		t.Fatalf("battery level not carried through: %+v", loc.BatteryLevel)
	}
	if loc.Timestamp.Before(before) || loc.Timestamp.After(time.Now().UTC()) {
		t.Fatalf("expected server-assigned timestamp, got %v", loc.Timestamp)
	}

	events := broadcaster.published()
	if len(events) != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", len(events))
	}
	if events[0].Type != model.WSEventLocationUpdate {
		t.Fatalf("expected %s event, got %s", model.WSEventLocationUpdate, events[0].Type)
	}
	if events[0].Payload != loc {
		t.Fatal("broadcast payload must be the persisted sample")
	}
}

func TestSubmitLocationStoreFailureNoBroadcast(t *testing.T) {
	store := &mockStore{failAppend: true}
	broadcaster := &mockBroadcaster{}
	svc := NewTrackingService(newMockRegistry("gps-1"), store, broadcaster)

	req := model.SubmitLocationRequest{
		DeviceID:  "gps-1",
		Latitude:  floatPtr(37.0),
		Longitude: floatPtr(-122.0),
	}
	if _, err := svc.SubmitLocation(req); !errors.Is(err, repository.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(broadcaster.published()) != 0 {
		t.Fatal("failed append must not broadcast")
	}
}

func TestLatestRecencyFollowsAcceptanceOrder(t *testing.T) {
	store := &mockStore{}
	svc := NewTrackingService(newMockRegistry("gps-1"), store, &mockBroadcaster{})

	for _, coords := range [][2]float64{{37.0, -122.0}, {37.1, -122.1}, {37.2, -122.2}} {
		req := model.SubmitLocationRequest{
			DeviceID:  "gps-1",
			Latitude:  floatPtr(coords[0]),
			Longitude: floatPtr(coords[1]),
		}
		if _, err := svc.SubmitLocation(req); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	latest, err := svc.Latest("gps-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != 3 || latest.Latitude != 37.2 {
		t.Fatalf("expected the last accepted sample, got id %d (%f)", latest.ID, latest.Latitude)
	}
}
