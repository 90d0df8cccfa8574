package model

// ========== Vehicle DTOs ==========

type RegisterVehicleRequest struct {
	DeviceID    string `json:"device_id" binding:"required,max=255"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	PhoneNumber string `json:"phone_number" binding:"max=30"`
}

type RegisterVehicleResponse struct {
	Success   bool   `json:"success"`
	VehicleID string `json:"vehicle_id"`
	DeviceID  string `json:"device_id"`
}

// ========== Location DTOs ==========

// SubmitLocationRequest carries one GPS ping. Latitude/Longitude are pointers
// so that 0 is a valid present coordinate; no range validation is performed.
type SubmitLocationRequest struct {
	DeviceID     string   `json:"device_id" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	Speed        float64  `json:"speed"`
	Accuracy     *float64 `json:"accuracy"`
	Altitude     *float64 `json:"altitude"`
	Heading      *float64 `json:"heading"`
	BatteryLevel *int     `json:"battery_level"`
}

type SubmitLocationResponse struct {
	Success     bool  `json:"success"`
	LocationID  int64 `json:"location_id"`
	Broadcasted bool  `json:"broadcasted"`
}

type HistoryRequest struct {
	Limit int    `form:"limit,default=100"`
	From  string `form:"from"` // RFC3339, optional
	To    string `form:"to"`   // RFC3339, optional
}

// ========== WebSocket Event DTOs ==========

type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocket event types
const (
	WSEventLocationUpdate = "location_update"
)

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
